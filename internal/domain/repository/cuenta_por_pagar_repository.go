package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// CuentaFilter filtros del listado de cuentas por pagar.
type CuentaFilter struct {
	Estado      string
	ProveedorID string
	VenceHasta  *time.Time
	Limit       int
	Offset      int
}

// CuentasResumen agregados de cartera por pagar.
type CuentasResumen struct {
	TotalPendiente  decimal.Decimal
	TotalVencido    decimal.Decimal
	CuentasVencidas int
	ProximasAVencer decimal.Decimal
}

// CuentaPorPagarRepository define el puerto de persistencia para cuentas por pagar y sus pagos.
type CuentaPorPagarRepository interface {
	Create(ctx context.Context, c *entity.CuentaPorPagar) error
	GetByID(ctx context.Context, id string) (*entity.CuentaPorPagar, error)
	GetForUpdate(ctx context.Context, id string) (*entity.CuentaPorPagar, error)
	Update(ctx context.Context, c *entity.CuentaPorPagar) error
	List(ctx context.Context, restaurantID string, f CuentaFilter) ([]*entity.CuentaPorPagar, error)

	CreatePago(ctx context.Context, p *entity.PagoCuenta) error
	ListPagos(ctx context.Context, cuentaID string) ([]entity.PagoCuenta, error)
	CountPagos(ctx context.Context, cuentaID string) (int, error)

	// MarkOverdue pasa a vencida las cuentas pendientes/parciales con vencimiento anterior a hoy.
	MarkOverdue(ctx context.Context, restaurantID string, hoy time.Time) (int, error)
	// Resumen calcula totales; proximas delimita la ventana de "por vencer" [hoy, proximas).
	Resumen(ctx context.Context, restaurantID string, hoy, proximas time.Time) (*CuentasResumen, error)
}
