// Package payables contiene los casos de uso de cuentas por pagar a proveedores:
// alta manual, abonos, anulación y el barrido de vencidas.
package payables

import (
	"context"
	"errors"
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
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/pkg/money"
	"github.com/jhoicas/restaurante-api/pkg/timeutil"
)

// días de "próximas a vencer" en el resumen
const ventanaProximas = 7

// Métodos de pago admitidos.
var metodosPago = map[string]bool{"efectivo": true, "transferencia": true, "tarjeta": true}

// UseCase cuentas por pagar.
type UseCase struct {
	txRunner       ports.TxRunner
	repo           repository.CuentaPorPagarRepository
	proveedorRepo  repository.ProveedorRepository
	restaurantRepo repository.RestaurantRepository
	tenants        *tenant.Resolver
	log            zerolog.Logger
	now            func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ports.TxRunner,
	repo repository.CuentaPorPagarRepository,
	proveedorRepo repository.ProveedorRepository,
	restaurantRepo repository.RestaurantRepository,
	tenants *tenant.Resolver,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		txRunner:       txRunner,
		repo:           repo,
		proveedorRepo:  proveedorRepo,
		restaurantRepo: restaurantRepo,
		tenants:        tenants,
		log:            log,
		now:            time.Now,
	}
}

// WithClock reemplaza el reloj usado para "hoy" (tests y CLI).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Create registra una cuenta manual. Fechas vacías: emisión hoy y vencimiento
// según los días de crédito del proveedor.
func (uc *UseCase) Create(ctx context.Context, restaurantID string, in dto.CreateCuentaRequest) (*dto.CuentaResponse, error) {
	if strings.TrimSpace(in.Concepto) == "" {
		return nil, domain.ErrInvalidInput
	}
	info, err := uc.tenants.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	monto := money.Round(in.Monto, info.Currency)
	if !monto.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	prov, err := uc.proveedorRepo.GetByID(ctx, in.ProveedorID)
	if err != nil {
		return nil, err
	}
	if prov == nil || prov.RestaurantID != restaurantID {
		return nil, domain.ErrNotFound
	}

	emision := timeutil.StartOfDay(uc.now(), info.Loc)
	if in.FechaEmision != "" {
		if emision, err = timeutil.ParseLocalDate(in.FechaEmision, info.Loc); err != nil {
			return nil, errors.Join(domain.ErrInvalidInput, err)
		}
	}
	vencimiento := emision.AddDate(0, 0, prov.DiasCredito)
	if in.FechaVencimiento != "" {
		if vencimiento, err = timeutil.ParseLocalDate(in.FechaVencimiento, info.Loc); err != nil {
			return nil, errors.Join(domain.ErrInvalidInput, err)
		}
	}
	if vencimiento.Before(emision) {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now().UTC()
	c := &entity.CuentaPorPagar{
		ID:               uuid.New().String(),
		RestaurantID:     restaurantID,
		ProveedorID:      prov.ID,
		ProveedorNombre:  prov.Nombre,
		Concepto:         strings.TrimSpace(in.Concepto),
		Monto:            monto,
		Saldo:            monto,
		FechaEmision:     emision.UTC(),
		FechaVencimiento: vencimiento.UTC(),
		Estado:           entity.CuentaPendiente,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCuentaResponse(c), nil
}

// RegistrarPago abona a la cuenta dentro de una transacción con bloqueo de fila.
// El abono no puede superar el saldo; genera el egreso en el libro financiero.
func (uc *UseCase) RegistrarPago(ctx context.Context, restaurantID, userID, cuentaID string, in dto.RegistrarPagoRequest) (*dto.CuentaResponse, error) {
	metodo := in.Metodo
	if metodo == "" {
		metodo = "efectivo"
	}
	if !metodosPago[metodo] {
		return nil, domain.ErrInvalidInput
	}
	info, err := uc.tenants.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	// el abono se valida ya redondeado a la moneda: 0,4 COP es un pago de 0
	monto := money.Round(in.Monto, info.Currency)
	if !monto.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now().UTC()
	hoy, _ := timeutil.DayRange(now, info.Loc)

	var cuenta *entity.CuentaPorPagar
	err = uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		c, err := repos.Cuentas.GetForUpdate(ctx, cuentaID)
		if err != nil {
			return err
		}
		if c == nil || c.RestaurantID != restaurantID {
			return domain.ErrNotFound
		}
		if !c.Abierta() {
			return domain.ErrConflict
		}
		if monto.GreaterThan(c.Saldo) {
			return domain.ErrOverpayment
		}
		pago := &entity.PagoCuenta{
			ID:         uuid.New().String(),
			CuentaID:   c.ID,
			Monto:      monto,
			Metodo:     metodo,
			Referencia: in.Referencia,
			Fecha:      now,
			CreadoPor:  userID,
		}
		if err := repos.Cuentas.CreatePago(ctx, pago); err != nil {
			return err
		}
		c.Saldo = c.Saldo.Sub(monto)
		switch {
		case c.Saldo.IsZero():
			c.Estado = entity.CuentaPagada
		case c.FechaVencimiento.Before(hoy):
			c.Estado = entity.CuentaVencida
		default:
			c.Estado = entity.CuentaParcial
		}
		c.UpdatedAt = now
		if err := repos.Cuentas.Update(ctx, c); err != nil {
			return err
		}
		if err := repos.Ledger.Create(ctx, &entity.LedgerEntry{
			ID:           uuid.New().String(),
			RestaurantID: restaurantID,
			Tipo:         entity.LedgerEgreso,
			Origen:       entity.OrigenPagoProveedor,
			ReferenciaID: pago.ID,
			Monto:        monto,
			Descripcion:  "Pago a proveedor: " + c.Concepto,
			Fecha:        now,
		}); err != nil {
			return err
		}
		if c.Pagos, err = repos.Cuentas.ListPagos(ctx, c.ID); err != nil {
			return err
		}
		cuenta = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("restaurant_id", restaurantID).
		Str("cuenta_id", cuentaID).
		Str("monto", monto.String()).
		Str("estado", cuenta.Estado).
		Msg("pago a proveedor registrado")
	return toCuentaResponse(cuenta), nil
}

// Anular solo es posible si la cuenta no tiene abonos.
func (uc *UseCase) Anular(ctx context.Context, restaurantID, cuentaID string) (*dto.CuentaResponse, error) {
	var cuenta *entity.CuentaPorPagar
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		c, err := repos.Cuentas.GetForUpdate(ctx, cuentaID)
		if err != nil {
			return err
		}
		if c == nil || c.RestaurantID != restaurantID {
			return domain.ErrNotFound
		}
		if !c.Abierta() {
			return domain.ErrConflict
		}
		n, err := repos.Cuentas.CountPagos(ctx, c.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrConflict
		}
		c.Estado = entity.CuentaAnulada
		c.Saldo = decimal.Zero
		c.UpdatedAt = uc.now().UTC()
		cuenta = c
		return repos.Cuentas.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return toCuentaResponse(cuenta), nil
}

// MarcarVencidas pasa a vencida toda cuenta pendiente o parcial cuyo vencimiento
// es anterior al "hoy" local del restaurante. Devuelve cuántas cambiaron.
func (uc *UseCase) MarcarVencidas(ctx context.Context, restaurantID string) (int, error) {
	info, err := uc.tenants.Get(ctx, restaurantID)
	if err != nil {
		return 0, err
	}
	hoy, _ := timeutil.DayRange(uc.now(), info.Loc)
	n, err := uc.repo.MarkOverdue(ctx, restaurantID, hoy)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		uc.log.Info().Str("restaurant_id", restaurantID).Int("marcadas", n).Msg("cuentas por pagar vencidas")
	}
	return n, nil
}

// MarcarVencidasTodos ejecuta el barrido para cada restaurante. Un fallo en uno
// no detiene a los demás; los errores se devuelven unidos.
func (uc *UseCase) MarcarVencidasTodos(ctx context.Context) (int, error) {
	ids, err := uc.restaurantRepo.ListIDs(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	var errs []error
	for _, id := range ids {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		n, err := uc.MarcarVencidas(ctx, id)
		if err != nil {
			uc.log.Error().Err(err).Str("restaurant_id", id).Msg("barrido de vencidas falló")
			errs = append(errs, err)
			continue
		}
		total += n
	}
	return total, errors.Join(errs...)
}

// GetByID cuenta con sus pagos.
func (uc *UseCase) GetByID(ctx context.Context, restaurantID, id string) (*dto.CuentaResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.RestaurantID != restaurantID {
		return nil, domain.ErrNotFound
	}
	if c.Pagos, err = uc.repo.ListPagos(ctx, id); err != nil {
		return nil, err
	}
	return toCuentaResponse(c), nil
}

// ListInput filtros del listado; VenceHasta es una fecha local inclusive.
type ListInput struct {
	Estado      string
	ProveedorID string
	VenceHasta  string
	Limit       int
	Offset      int
}

// List lista cuentas ordenadas por vencimiento.
func (uc *UseCase) List(ctx context.Context, restaurantID string, in ListInput) (*dto.CuentaListResponse, error) {
	switch in.Estado {
	case "", entity.CuentaPendiente, entity.CuentaParcial, entity.CuentaPagada, entity.CuentaVencida, entity.CuentaAnulada:
	default:
		return nil, domain.ErrInvalidInput
	}
	f := repository.CuentaFilter{Estado: in.Estado, ProveedorID: in.ProveedorID, Limit: in.Limit, Offset: in.Offset}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if in.VenceHasta != "" {
		info, err := uc.tenants.Get(ctx, restaurantID)
		if err != nil {
			return nil, err
		}
		d, err := timeutil.ParseLocalDate(in.VenceHasta, info.Loc)
		if err != nil {
			return nil, errors.Join(domain.ErrInvalidInput, err)
		}
		hasta := d.AddDate(0, 0, 1).UTC()
		f.VenceHasta = &hasta
	}
	list, err := uc.repo.List(ctx, restaurantID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CuentaResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCuentaResponse(c))
	}
	return &dto.CuentaListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

// Resumen total pendiente, vencido y lo que vence en los próximos 7 días.
func (uc *UseCase) Resumen(ctx context.Context, restaurantID string) (*dto.CuentasResumenResponse, error) {
	info, err := uc.tenants.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	hoy := timeutil.StartOfDay(uc.now(), info.Loc)
	r, err := uc.repo.Resumen(ctx, restaurantID, hoy.UTC(), hoy.AddDate(0, 0, ventanaProximas).UTC())
	if err != nil {
		return nil, err
	}
	return &dto.CuentasResumenResponse{
		TotalPendiente:          r.TotalPendiente,
		TotalVencido:            r.TotalVencido,
		CuentasVencidas:         r.CuentasVencidas,
		ProximasAVencer:         r.ProximasAVencer,
		TotalPendienteFormatted: info.Money.Format(r.TotalPendiente),
		TotalVencidoFormatted:   info.Money.Format(r.TotalVencido),
	}, nil
}

func toCuentaResponse(c *entity.CuentaPorPagar) *dto.CuentaResponse {
	res := &dto.CuentaResponse{
		ID:               c.ID,
		ProveedorID:      c.ProveedorID,
		ProveedorNombre:  c.ProveedorNombre,
		MovimientoID:     c.MovimientoID,
		Concepto:         c.Concepto,
		Monto:            c.Monto,
		Saldo:            c.Saldo,
		FechaEmision:     c.FechaEmision,
		FechaVencimiento: c.FechaVencimiento,
		Estado:           c.Estado,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	for _, p := range c.Pagos {
		res.Pagos = append(res.Pagos, dto.PagoResponse{
			ID:         p.ID,
			Monto:      p.Monto,
			Metodo:     p.Metodo,
			Referencia: p.Referencia,
			Fecha:      p.Fecha,
			CreadoPor:  p.CreadoPor,
		})
	}
	return res
}
