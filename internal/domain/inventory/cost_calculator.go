package inventory

import "github.com/shopspring/decimal"

// CostoPromedioPonderado recalcula el costo unitario de un insumo tras una compra.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Si el stock resultante no es positivo (stock previo negativo o cero) se toma el costo de entrada.
func CostoPromedioPonderado(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	if stockActual.LessThanOrEqual(decimal.Zero) {
		return costoEntrada
	}
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return costoEntrada
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.DivRound(sum, 4)
}

// PuedeDescontar indica si hay stock suficiente para una salida.
func PuedeDescontar(stock, cantidad decimal.Decimal) bool {
	return stock.GreaterThanOrEqual(cantidad)
}
