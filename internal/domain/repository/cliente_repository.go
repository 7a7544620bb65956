package repository

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// ClienteRepository define el puerto de persistencia para clientes (CRM).
type ClienteRepository interface {
	Create(ctx context.Context, c *entity.Cliente) error
	GetByID(ctx context.Context, id string) (*entity.Cliente, error)
	Update(ctx context.Context, c *entity.Cliente) error
	List(ctx context.Context, restaurantID, search string, limit, offset int) ([]*entity.Cliente, error)
	Stats(ctx context.Context, clienteID string) (*entity.ClienteStats, error)
}
