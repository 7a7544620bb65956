package repository

import (
	"context"
	"time"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// PedidoFilter filtros del listado de pedidos. From/To ya vienen en UTC.
type PedidoFilter struct {
	Estados   []string
	ClienteID string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// PedidoRepository define el puerto de persistencia para pedidos.
type PedidoRepository interface {
	Create(ctx context.Context, p *entity.Pedido) error
	NextNumero(ctx context.Context, restaurantID string) (int, error)
	GetByID(ctx context.Context, id string) (*entity.Pedido, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Pedido, error)
	UpdateEstado(ctx context.Context, id, estado string, at time.Time) error
	AddHistorial(ctx context.Context, h *entity.PedidoEstadoCambio) error
	List(ctx context.Context, restaurantID string, f PedidoFilter) ([]*entity.Pedido, error)
	// ListCola pedidos en los estados dados con sus ítems, el más antiguo primero y sin tope.
	ListCola(ctx context.Context, restaurantID string, estados []string) ([]*entity.Pedido, error)
	CountAbiertos(ctx context.Context, restaurantID string) (int, error)

	// IsTransitionAllowed consulta la tabla pedido_transiciones en una sola query.
	IsTransitionAllowed(ctx context.Context, desde, hasta string) (bool, error)
}
