package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

var _ repository.MovimientoInsumoRepository = (*MovimientoInsumoRepo)(nil)

// MovimientoInsumoRepo kardex de insumos sobre PostgreSQL (usable con pool o tx).
type MovimientoInsumoRepo struct {
	q Querier
}

// NewMovimientoInsumoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoInsumoRepository(q Querier) *MovimientoInsumoRepo {
	return &MovimientoInsumoRepo{q: q}
}

// Create persiste un movimiento de insumo.
func (r *MovimientoInsumoRepo) Create(ctx context.Context, m *entity.MovimientoInsumo) error {
	query := `
		INSERT INTO movimientos_insumo (id, restaurant_id, insumo_id, tipo, cantidad, costo_unitario, costo_total,
			stock_anterior, stock_nuevo, proveedor_id, pedido_id, nota, fecha, creado_por)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.RestaurantID, m.InsumoID, m.Tipo, m.Cantidad, m.CostoUnitario, m.CostoTotal,
		m.StockAnterior, m.StockNuevo, nullString(m.ProveedorID), nullString(m.PedidoID), m.Nota,
		m.Fecha, nullString(m.CreadoPor),
	)
	if err != nil {
		return fmt.Errorf("create movimiento insumo: %w", err)
	}
	return nil
}

// ListByInsumo lista movimientos de un insumo en [from, to), más recientes primero.
func (r *MovimientoInsumoRepo) ListByInsumo(ctx context.Context, insumoID string, from, to *time.Time, limit, offset int) ([]*entity.MovimientoInsumo, error) {
	query := `
		SELECT id, restaurant_id, insumo_id, tipo, cantidad, costo_unitario, costo_total,
			stock_anterior, stock_nuevo, proveedor_id, pedido_id, nota, fecha, creado_por
		FROM movimientos_insumo WHERE insumo_id = $1`
	args := []any{insumoID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND fecha >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND fecha < $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY fecha DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos insumo: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovimientoInsumo
	for rows.Next() {
		var m entity.MovimientoInsumo
		var proveedorID, pedidoID, creadoPor *string
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.InsumoID, &m.Tipo, &m.Cantidad, &m.CostoUnitario,
			&m.CostoTotal, &m.StockAnterior, &m.StockNuevo, &proveedorID, &pedidoID, &m.Nota, &m.Fecha,
			&creadoPor); err != nil {
			return nil, fmt.Errorf("scan movimiento insumo: %w", err)
		}
		m.ProveedorID, m.PedidoID, m.CreadoPor = deref(proveedorID), deref(pedidoID), deref(creadoPor)
		list = append(list, &m)
	}
	return list, rows.Err()
}
