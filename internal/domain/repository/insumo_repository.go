package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// InsumoFilter filtros del listado de insumos.
type InsumoFilter struct {
	Search           string
	Categoria        string
	SoloBajoStock    bool
	IncluirInactivos bool
	Limit            int
	Offset           int
}

// InsumoRepository define el puerto de persistencia para Insumo.
// Stock y costo solo se modifican con UpdateStockAndCost dentro de una transacción.
type InsumoRepository interface {
	Create(ctx context.Context, insumo *entity.Insumo) error
	GetByID(ctx context.Context, id string) (*entity.Insumo, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Insumo, error)
	Update(ctx context.Context, insumo *entity.Insumo) error
	UpdateStockAndCost(ctx context.Context, id string, stock, costo decimal.Decimal) error
	SetActivo(ctx context.Context, id string, activo bool) error
	List(ctx context.Context, restaurantID string, f InsumoFilter) ([]*entity.Insumo, error)
	ListBajoStock(ctx context.Context, restaurantID string) ([]*entity.Insumo, error)
	CountBajoStock(ctx context.Context, restaurantID string) (int, error)
}

// MovimientoInsumoRepository persiste el kardex de insumos.
type MovimientoInsumoRepository interface {
	Create(ctx context.Context, m *entity.MovimientoInsumo) error
	ListByInsumo(ctx context.Context, insumoID string, from, to *time.Time, limit, offset int) ([]*entity.MovimientoInsumo, error)
}
