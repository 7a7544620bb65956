package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/restaurante-api/internal/domain/reporting"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para tableros y reportes de ventas.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Ventas pedidos entregados creados en [from, to). Una venta se fecha por la
// creación del pedido, no por la entrega.
func (r *ReportRepo) Ventas(ctx context.Context, restaurantID string, from, to time.Time) ([]reporting.Venta, error) {
	const query = `
	SELECT
	    p.id,
	    COALESCE(p.cliente_id::TEXT, '')  AS cliente_id,
	    COALESCE(c.nombre, '')            AS cliente_nombre,
	    p.total,
	    p.created_at
	FROM pedidos p
	LEFT JOIN clientes c ON c.id = p.cliente_id
	WHERE p.restaurant_id = $1
	  AND p.estado = 'entregado'
	  AND p.created_at >= $2
	  AND p.created_at <  $3
	ORDER BY p.created_at`

	rows, err := r.q.Query(ctx, query, restaurantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("report.Ventas: %w", err)
	}
	defer rows.Close()

	var out []reporting.Venta
	for rows.Next() {
		var v reporting.Venta
		if err := rows.Scan(&v.PedidoID, &v.ClienteID, &v.ClienteNombre, &v.Total, &v.Fecha); err != nil {
			return nil, fmt.Errorf("report.Ventas scan: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ItemsVendidos líneas de los pedidos entregados creados en [from, to).
func (r *ReportRepo) ItemsVendidos(ctx context.Context, restaurantID string, from, to time.Time) ([]reporting.ItemVendido, error) {
	const query = `
	SELECT
	    d.producto_id,
	    d.nombre,
	    d.cantidad,
	    d.total
	FROM pedidos p
	JOIN pedido_items d ON d.pedido_id = p.id
	WHERE p.restaurant_id = $1
	  AND p.estado = 'entregado'
	  AND p.created_at >= $2
	  AND p.created_at <  $3`

	rows, err := r.q.Query(ctx, query, restaurantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("report.ItemsVendidos: %w", err)
	}
	defer rows.Close()

	var out []reporting.ItemVendido
	for rows.Next() {
		var it reporting.ItemVendido
		if err := rows.Scan(&it.ProductoID, &it.Nombre, &it.Cantidad, &it.Total); err != nil {
			return nil, fmt.Errorf("report.ItemsVendidos scan: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
