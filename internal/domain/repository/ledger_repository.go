package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// LedgerRepository libro de movimientos financieros (solo inserción y lectura).
type LedgerRepository interface {
	Create(ctx context.Context, e *entity.LedgerEntry) error
	List(ctx context.Context, restaurantID string, from, to time.Time, tipo string, limit, offset int) ([]*entity.LedgerEntry, error)
	Totales(ctx context.Context, restaurantID string, from, to time.Time) (ingresos, egresos decimal.Decimal, err error)
}
