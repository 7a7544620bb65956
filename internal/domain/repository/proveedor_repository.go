package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// ProveedorRepository define el puerto de persistencia para Proveedor y su relación con insumos.
type ProveedorRepository interface {
	Create(ctx context.Context, p *entity.Proveedor) error
	GetByID(ctx context.Context, id string) (*entity.Proveedor, error)
	Update(ctx context.Context, p *entity.Proveedor) error
	SetActivo(ctx context.Context, id string, activo bool) error
	List(ctx context.Context, restaurantID string, soloActivos bool, limit, offset int) ([]*entity.Proveedor, error)

	UpsertInsumo(ctx context.Context, rel *entity.ProveedorInsumo) error
	UpdateCostoInsumo(ctx context.Context, proveedorID, insumoID string, costo decimal.Decimal) error
	SetInsumoActivo(ctx context.Context, proveedorID, insumoID string, activo bool) (bool, error)
	ListInsumos(ctx context.Context, proveedorID string) ([]*entity.ProveedorInsumo, error)
	ListProveedoresDeInsumo(ctx context.Context, insumoID string) ([]*entity.ProveedorInsumo, error)
}
