package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/application/tenant"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/inventory"
	"github.com/jhoicas/restaurante-api/pkg/money"
	"github.com/jhoicas/restaurante-api/pkg/timeutil"
)

// MovimientoUseCase registra movimientos de insumos de forma transaccional
// (compra, merma, ajuste, produccion) con bloqueo de fila (SELECT FOR UPDATE).
type MovimientoUseCase struct {
	txRunner ports.TxRunner
	tenants  *tenant.Resolver
	log      zerolog.Logger
}

// NewMovimientoUseCase construye el caso de uso.
func NewMovimientoUseCase(txRunner ports.TxRunner, tenants *tenant.Resolver, log zerolog.Logger) *MovimientoUseCase {
	return &MovimientoUseCase{txRunner: txRunner, tenants: tenants, log: log}
}

// MovimientoInput entrada para registrar un movimiento manual.
// Cantidad es positiva salvo en ajuste, donde el signo indica entrada o salida.
type MovimientoInput struct {
	RestaurantID  string
	UserID        string
	InsumoID      string
	Tipo          string
	Cantidad      decimal.Decimal
	CostoUnitario *decimal.Decimal
	ProveedorID   string
	ACredito      bool
	Nota          string
	Fecha         time.Time
}

func (in MovimientoInput) validate() error {
	if in.InsumoID == "" {
		return domain.ErrInvalidInput
	}
	switch in.Tipo {
	case entity.MovimientoCompra:
		if !in.Cantidad.GreaterThan(decimal.Zero) || in.CostoUnitario == nil || in.CostoUnitario.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if in.ACredito && in.ProveedorID == "" {
			return domain.ErrInvalidInput
		}
	case entity.MovimientoMerma:
		if !in.Cantidad.GreaterThan(decimal.Zero) || strings.TrimSpace(in.Nota) == "" {
			return domain.ErrInvalidInput
		}
	case entity.MovimientoAjuste:
		if in.Cantidad.IsZero() {
			return domain.ErrInvalidInput
		}
	case entity.MovimientoProduccion:
		if !in.Cantidad.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// Registrar valida, abre la transacción y aplica el movimiento. Una compra a
// crédito genera su cuenta por pagar; una de contado, el egreso en el libro.
func (uc *MovimientoUseCase) Registrar(ctx context.Context, in MovimientoInput) (*dto.MovimientoResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	info, err := uc.tenants.Get(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	fecha := timeutil.ToUTC(in.Fecha)
	if fecha.IsZero() {
		fecha = now
	}

	var res *dto.MovimientoResponse
	err = uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		ins, err := repos.Insumos.GetForUpdate(ctx, in.InsumoID)
		if err != nil {
			return err
		}
		if ins == nil || ins.RestaurantID != in.RestaurantID {
			return domain.ErrNotFound
		}
		if !ins.Activo {
			return domain.ErrConflict
		}
		switch in.Tipo {
		case entity.MovimientoCompra:
			res, err = uc.compra(ctx, repos, info, ins, in, fecha)
		default:
			cantidad := in.Cantidad
			if in.Tipo != entity.MovimientoAjuste {
				cantidad = cantidad.Neg()
			}
			var mov *entity.MovimientoInsumo
			mov, err = aplicarSalidaOAjuste(ctx, repos, info.Currency, ins, in.Tipo, cantidad, fecha, in.UserID, "", in.Nota)
			if mov != nil {
				res = toMovimientoResponse(mov)
			}
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("restaurant_id", in.RestaurantID).
		Str("insumo_id", in.InsumoID).
		Str("tipo", in.Tipo).
		Str("cantidad", in.Cantidad.String()).
		Msg("movimiento de insumo registrado")
	return res, nil
}

// compra: promedio ponderado, suma stock, refresca costo del proveedor y genera
// la cuenta por pagar o el egreso de contado.
func (uc *MovimientoUseCase) compra(
	ctx context.Context,
	repos ports.TxRepos,
	info *tenant.Info,
	ins *entity.Insumo,
	in MovimientoInput,
	fecha time.Time,
) (*dto.MovimientoResponse, error) {
	var prov *entity.Proveedor
	if in.ProveedorID != "" {
		p, err := repos.Proveedores.GetByID(ctx, in.ProveedorID)
		if err != nil {
			return nil, err
		}
		if p == nil || p.RestaurantID != in.RestaurantID {
			return nil, domain.ErrNotFound
		}
		prov = p
	}

	costoEntrada := *in.CostoUnitario
	nuevoCosto := inventory.CostoPromedioPonderado(ins.Stock, ins.CostoUnitario, in.Cantidad, costoEntrada)
	nuevoStock := ins.Stock.Add(in.Cantidad)
	if err := repos.Insumos.UpdateStockAndCost(ctx, ins.ID, nuevoStock, nuevoCosto); err != nil {
		return nil, err
	}
	total := money.Round(in.Cantidad.Mul(costoEntrada), info.Currency)
	mov := &entity.MovimientoInsumo{
		ID:            uuid.New().String(),
		RestaurantID:  in.RestaurantID,
		InsumoID:      ins.ID,
		Tipo:          entity.MovimientoCompra,
		Cantidad:      in.Cantidad,
		CostoUnitario: costoEntrada,
		CostoTotal:    total,
		StockAnterior: ins.Stock,
		StockNuevo:    nuevoStock,
		ProveedorID:   in.ProveedorID,
		Nota:          in.Nota,
		Fecha:         fecha,
		CreadoPor:     in.UserID,
	}
	if err := repos.Movimientos.Create(ctx, mov); err != nil {
		return nil, err
	}
	res := toMovimientoResponse(mov)

	if prov != nil {
		if err := repos.Proveedores.UpdateCostoInsumo(ctx, prov.ID, ins.ID, costoEntrada); err != nil {
			return nil, err
		}
	}
	if !total.GreaterThan(decimal.Zero) {
		return res, nil
	}

	if in.ACredito {
		emision := timeutil.StartOfDay(fecha, info.Loc)
		cuenta := &entity.CuentaPorPagar{
			ID:               uuid.New().String(),
			RestaurantID:     in.RestaurantID,
			ProveedorID:      prov.ID,
			MovimientoID:     mov.ID,
			Concepto:         fmt.Sprintf("Compra de %s %s de %s", in.Cantidad.String(), ins.Unidad, ins.Nombre),
			Monto:            total,
			Saldo:            total,
			FechaEmision:     emision.UTC(),
			FechaVencimiento: emision.AddDate(0, 0, prov.DiasCredito).UTC(),
			Estado:           entity.CuentaPendiente,
			CreatedAt:        time.Now().UTC(),
			UpdatedAt:        time.Now().UTC(),
		}
		if err := repos.Cuentas.Create(ctx, cuenta); err != nil {
			return nil, err
		}
		res.CuentaID = cuenta.ID
		return res, nil
	}

	return res, repos.Ledger.Create(ctx, &entity.LedgerEntry{
		ID:           uuid.New().String(),
		RestaurantID: in.RestaurantID,
		Tipo:         entity.LedgerEgreso,
		Origen:       entity.OrigenCompraContado,
		ReferenciaID: mov.ID,
		Monto:        total,
		Descripcion:  "Compra de contado: " + ins.Nombre,
		Fecha:        fecha,
	})
}

// aplicarSalidaOAjuste descuenta (cantidad negativa) o suma stock sin tocar el costo promedio.
// El stock nunca queda negativo.
func aplicarSalidaOAjuste(
	ctx context.Context,
	repos ports.TxRepos,
	currency string,
	ins *entity.Insumo,
	tipo string,
	cantidad decimal.Decimal,
	fecha time.Time,
	userID, pedidoID, nota string,
) (*entity.MovimientoInsumo, error) {
	if cantidad.IsNegative() && !inventory.PuedeDescontar(ins.Stock, cantidad.Neg()) {
		return nil, fmt.Errorf("%w: %s (disponible %s, requerido %s)",
			domain.ErrInsufficientStock, ins.Nombre, ins.Stock.String(), cantidad.Neg().String())
	}
	nuevoStock := ins.Stock.Add(cantidad)
	if err := repos.Insumos.UpdateStockAndCost(ctx, ins.ID, nuevoStock, ins.CostoUnitario); err != nil {
		return nil, err
	}
	mov := &entity.MovimientoInsumo{
		ID:            uuid.New().String(),
		RestaurantID:  ins.RestaurantID,
		InsumoID:      ins.ID,
		Tipo:          tipo,
		Cantidad:      cantidad,
		CostoUnitario: ins.CostoUnitario,
		CostoTotal:    money.Round(cantidad.Abs().Mul(ins.CostoUnitario), currency),
		StockAnterior: ins.Stock,
		StockNuevo:    nuevoStock,
		PedidoID:      pedidoID,
		Nota:          nota,
		Fecha:         fecha,
		CreadoPor:     userID,
	}
	if err := repos.Movimientos.Create(ctx, mov); err != nil {
		return nil, err
	}
	ins.Stock = nuevoStock
	return mov, nil
}

// ConsumirEnTx descuenta insumos por producción de un pedido usando los repositorios
// del caller (misma transacción). consumo: insumoID → cantidad total requerida.
// Los insumos se bloquean en orden de ID para evitar deadlocks entre pedidos concurrentes.
// Si falta stock de cualquiera retorna ErrInsufficientStock y el caller hace rollback.
func (uc *MovimientoUseCase) ConsumirEnTx(
	ctx context.Context,
	repos ports.TxRepos,
	restaurantID, currency, userID, pedidoID string,
	consumo map[string]decimal.Decimal,
	now time.Time,
) error {
	ids := make([]string, 0, len(consumo))
	for id := range consumo {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		cant := consumo[id]
		if !cant.GreaterThan(decimal.Zero) {
			continue
		}
		ins, err := repos.Insumos.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if ins == nil || ins.RestaurantID != restaurantID {
			return domain.ErrNotFound
		}
		if _, err := aplicarSalidaOAjuste(ctx, repos, currency, ins, entity.MovimientoProduccion,
			cant.Neg(), now, userID, pedidoID, ""); err != nil {
			return err
		}
	}
	return nil
}
