package repository

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// RestaurantRepository define el puerto de persistencia para Restaurant (DIP).
type RestaurantRepository interface {
	Create(ctx context.Context, r *entity.Restaurant) error
	GetByID(ctx context.Context, id string) (*entity.Restaurant, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Restaurant, error)
	ListIDs(ctx context.Context) ([]string, error)
}
