package repository

import (
	"context"
	"time"

	"github.com/jhoicas/restaurante-api/internal/domain/reporting"
)

// ReportRepository consultas read-only sobre pedidos entregados. Devuelve filas
// crudas; la agregación por día y los rankings se hacen en la aplicación.
type ReportRepository interface {
	Ventas(ctx context.Context, restaurantID string, from, to time.Time) ([]reporting.Venta, error)
	ItemsVendidos(ctx context.Context, restaurantID string, from, to time.Time) ([]reporting.ItemVendido, error)
}
