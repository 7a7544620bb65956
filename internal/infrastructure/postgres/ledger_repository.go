package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo libro de movimientos financieros. Solo inserta y lee.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create inserta una línea del libro.
func (r *LedgerRepo) Create(ctx context.Context, e *entity.LedgerEntry) error {
	query := `
		INSERT INTO movimientos_financieros (id, restaurant_id, tipo, origen, referencia_id, monto, descripcion, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, e.ID, e.RestaurantID, e.Tipo, e.Origen, e.ReferenciaID, e.Monto, e.Descripcion, e.Fecha)
	if err != nil {
		return fmt.Errorf("insert movimiento financiero: %w", err)
	}
	return nil
}

// List movimientos en [from, to), más recientes primero. tipo vacío = ambos.
func (r *LedgerRepo) List(ctx context.Context, restaurantID string, from, to time.Time, tipo string, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, restaurant_id, tipo, origen, referencia_id, monto, descripcion, fecha
		FROM movimientos_financieros
		WHERE restaurant_id = $1 AND fecha >= $2 AND fecha < $3`
	args := []any{restaurantID, from, to}
	pos := 4
	if tipo != "" {
		query += fmt.Sprintf(" AND tipo = $%d", pos)
		args = append(args, tipo)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY fecha DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos financieros: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(&e.ID, &e.RestaurantID, &e.Tipo, &e.Origen, &e.ReferenciaID, &e.Monto,
			&e.Descripcion, &e.Fecha); err != nil {
			return nil, fmt.Errorf("scan movimiento financiero: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Totales suma ingresos y egresos en [from, to).
func (r *LedgerRepo) Totales(ctx context.Context, restaurantID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(monto) FILTER (WHERE tipo = 'ingreso'), 0),
			COALESCE(SUM(monto) FILTER (WHERE tipo = 'egreso'), 0)
		FROM movimientos_financieros
		WHERE restaurant_id = $1 AND fecha >= $2 AND fecha < $3`
	var ingresos, egresos decimal.Decimal
	if err := r.q.QueryRow(ctx, query, restaurantID, from, to).Scan(&ingresos, &egresos); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("totales movimientos financieros: %w", err)
	}
	return ingresos, egresos, nil
}
