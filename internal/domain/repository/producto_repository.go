package repository

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// ProductoRepository define el puerto de persistencia para la carta y sus recetas.
type ProductoRepository interface {
	Create(ctx context.Context, p *entity.Producto) error
	GetByID(ctx context.Context, id string) (*entity.Producto, error)
	GetByIDs(ctx context.Context, restaurantID string, ids []string) ([]*entity.Producto, error)
	Update(ctx context.Context, p *entity.Producto) error
	List(ctx context.Context, restaurantID, categoria string, soloActivos bool, limit, offset int) ([]*entity.Producto, error)

	SetReceta(ctx context.Context, productoID string, items []entity.RecetaItem) error
	GetReceta(ctx context.Context, productoID string) ([]entity.RecetaItem, error)
}
