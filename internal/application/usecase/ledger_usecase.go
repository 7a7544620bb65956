package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/tenant"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/pkg/timeutil"
)

// LedgerUseCase consulta el libro de movimientos financieros. Las entradas
// solo se crean desde pedidos, compras y pagos a proveedores.
type LedgerUseCase struct {
	repo    repository.LedgerRepository
	tenants *tenant.Resolver
	now     func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(repo repository.LedgerRepository, tenants *tenant.Resolver) *LedgerUseCase {
	return &LedgerUseCase{repo: repo, tenants: tenants, now: time.Now}
}

// List movimientos entre desde y hasta (fechas locales inclusive) con totales del período.
func (uc *LedgerUseCase) List(ctx context.Context, restaurantID, desde, hasta, tipo string, limit, offset int) (*dto.LedgerListResponse, error) {
	if tipo != "" && tipo != entity.LedgerIngreso && tipo != entity.LedgerEgreso {
		return nil, domain.ErrInvalidInput
	}
	info, err := uc.tenants.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	from, to, err := timeutil.LocalDateRange(desde, hasta, uc.now(), info.Loc)
	if err != nil {
		return nil, errors.Join(domain.ErrInvalidInput, err)
	}
	limit, offset = normalizePage(limit, offset)
	list, err := uc.repo.List(ctx, restaurantID, from, to, tipo, limit, offset)
	if err != nil {
		return nil, err
	}
	ing, egr, err := uc.repo.Totales(ctx, restaurantID, from, to)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LedgerEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.LedgerEntryResponse{
			ID:           e.ID,
			Tipo:         e.Tipo,
			Origen:       e.Origen,
			ReferenciaID: e.ReferenciaID,
			Monto:        e.Monto,
			Descripcion:  e.Descripcion,
			Fecha:        e.Fecha,
		})
	}
	return &dto.LedgerListResponse{
		Items:    items,
		Ingresos: ing,
		Egresos:  egr,
		Neto:     ing.Sub(egr),
		Desde:    timeutil.DayKey(from, info.Loc),
		Hasta:    timeutil.DayKey(to.Add(-time.Nanosecond), info.Loc),
	}, nil
}
