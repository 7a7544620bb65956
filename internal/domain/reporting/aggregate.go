// Package reporting agrega ventas en memoria para los tableros: buckets diarios
// en la zona del restaurante y rankings top-N de productos y clientes.
package reporting

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/pkg/timeutil"
)

// Venta pedido entregado, tal como lo devuelve el repositorio.
type Venta struct {
	PedidoID      string
	ClienteID     string
	ClienteNombre string
	Total         decimal.Decimal
	Fecha         time.Time // UTC
}

// ItemVendido línea vendida de un pedido entregado.
type ItemVendido struct {
	ProductoID string
	Nombre     string
	Cantidad   decimal.Decimal
	Total      decimal.Decimal
}

// VentaDiaria bucket de un día de calendario local.
type VentaDiaria struct {
	Fecha   string
	Pedidos int
	Total   decimal.Decimal
}

// ProductoRank acumulado de un producto en el período.
type ProductoRank struct {
	ProductoID string
	Nombre     string
	Cantidad   decimal.Decimal
	Total      decimal.Decimal
}

// ClienteRank acumulado de un cliente en el período.
type ClienteRank struct {
	ClienteID string
	Nombre    string
	Pedidos   int
	Total     decimal.Decimal
}

// GroupByDay agrupa por fecha local e incluye los días sin ventas entre from y to.
// to es exclusivo (fin de rango UTC devuelto por timeutil.LocalDateRange).
func GroupByDay(ventas []Venta, from, to time.Time, loc *time.Location) []VentaDiaria {
	last := to.Add(-time.Nanosecond)
	keys := timeutil.DaysBetween(from, last, loc)
	buckets := make(map[string]*VentaDiaria, len(keys))
	out := make([]VentaDiaria, len(keys))
	for i, k := range keys {
		out[i] = VentaDiaria{Fecha: k, Total: decimal.Zero}
		buckets[k] = &out[i]
	}
	for _, v := range ventas {
		b, ok := buckets[timeutil.DayKey(v.Fecha, loc)]
		if !ok {
			continue
		}
		b.Pedidos++
		b.Total = b.Total.Add(v.Total)
	}
	return out
}

// TopProductos ordena por ingreso desc, luego cantidad desc, luego nombre.
func TopProductos(items []ItemVendido, n int) []ProductoRank {
	acc := map[string]*ProductoRank{}
	for _, it := range items {
		r, ok := acc[it.ProductoID]
		if !ok {
			r = &ProductoRank{ProductoID: it.ProductoID, Nombre: it.Nombre}
			acc[it.ProductoID] = r
		}
		r.Cantidad = r.Cantidad.Add(it.Cantidad)
		r.Total = r.Total.Add(it.Total)
	}
	list := make([]ProductoRank, 0, len(acc))
	for _, r := range acc {
		list = append(list, *r)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		if !a.Cantidad.Equal(b.Cantidad) {
			return a.Cantidad.GreaterThan(b.Cantidad)
		}
		return a.Nombre < b.Nombre
	})
	return limit(list, n)
}

// TopClientes ignora pedidos sin cliente; ordena por total desc, luego pedidos desc.
func TopClientes(ventas []Venta, n int) []ClienteRank {
	acc := map[string]*ClienteRank{}
	for _, v := range ventas {
		if v.ClienteID == "" {
			continue
		}
		r, ok := acc[v.ClienteID]
		if !ok {
			r = &ClienteRank{ClienteID: v.ClienteID, Nombre: v.ClienteNombre}
			acc[v.ClienteID] = r
		}
		r.Pedidos++
		r.Total = r.Total.Add(v.Total)
	}
	list := make([]ClienteRank, 0, len(acc))
	for _, r := range acc {
		list = append(list, *r)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		if a.Pedidos != b.Pedidos {
			return a.Pedidos > b.Pedidos
		}
		return a.Nombre < b.Nombre
	})
	return limit(list, n)
}

// Totales suma y cuenta de un conjunto de ventas.
func Totales(ventas []Venta) (decimal.Decimal, int) {
	total := decimal.Zero
	for _, v := range ventas {
		total = total.Add(v.Total)
	}
	return total, len(ventas)
}

// TicketPromedio total / pedidos redondeado a 2 decimales; 0 si no hay pedidos.
func TicketPromedio(total decimal.Decimal, pedidos int) decimal.Decimal {
	if pedidos == 0 {
		return decimal.Zero
	}
	return total.DivRound(decimal.NewFromInt(int64(pedidos)), 2)
}

func limit[T any](list []T, n int) []T {
	if n > 0 && len(list) > n {
		return list[:n]
	}
	return list
}
