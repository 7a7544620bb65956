package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

var _ repository.InsumoRepository = (*InsumoRepo)(nil)

// InsumoRepo implementación del puerto InsumoRepository (usable con pool o tx).
type InsumoRepo struct {
	q Querier
}

// NewInsumoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInsumoRepository(q Querier) *InsumoRepo {
	return &InsumoRepo{q: q}
}

const insumoColumns = `id, restaurant_id, nombre, unidad, categoria, stock, stock_minimo, costo_unitario, activo, created_at, updated_at`

// Create persiste un insumo. Nombre repetido en el restaurante: ErrDuplicate.
func (r *InsumoRepo) Create(ctx context.Context, x *entity.Insumo) error {
	query := `
		INSERT INTO insumos (` + insumoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		x.ID, x.RestaurantID, x.Nombre, x.Unidad, x.Categoria, x.Stock, x.StockMinimo,
		x.CostoUnitario, x.Activo, x.CreatedAt, x.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert insumo: %w", err)
	}
	return nil
}

func scanInsumo(row pgxScanner) (*entity.Insumo, error) {
	var x entity.Insumo
	err := row.Scan(&x.ID, &x.RestaurantID, &x.Nombre, &x.Unidad, &x.Categoria, &x.Stock,
		&x.StockMinimo, &x.CostoUnitario, &x.Activo, &x.CreatedAt, &x.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &x, nil
}

func (r *InsumoRepo) getOne(ctx context.Context, query, id string) (*entity.Insumo, error) {
	x, err := scanInsumo(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get insumo: %w", err)
	}
	return x, nil
}

// GetByID obtiene un insumo por ID.
func (r *InsumoRepo) GetByID(ctx context.Context, id string) (*entity.Insumo, error) {
	return r.getOne(ctx, `SELECT `+insumoColumns+` FROM insumos WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT … FOR UPDATE).
func (r *InsumoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Insumo, error) {
	return r.getOne(ctx, `SELECT `+insumoColumns+` FROM insumos WHERE id = $1 FOR UPDATE`, id)
}

// Update actualiza datos descriptivos. No toca stock ni costo.
func (r *InsumoRepo) Update(ctx context.Context, x *entity.Insumo) error {
	query := `
		UPDATE insumos SET nombre = $2, unidad = $3, categoria = $4, stock_minimo = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, x.ID, x.Nombre, x.Unidad, x.Categoria, x.StockMinimo, x.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update insumo: %w", err)
	}
	return nil
}

// UpdateStockAndCost usado solo por el motor de movimientos, dentro de la tx.
func (r *InsumoRepo) UpdateStockAndCost(ctx context.Context, id string, stock, costo decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE insumos SET stock = $2, costo_unitario = $3, updated_at = now() WHERE id = $1`,
		id, stock, costo,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update insumo stock: %w", err)
	}
	return nil
}

// SetActivo activa o desactiva el insumo.
func (r *InsumoRepo) SetActivo(ctx context.Context, id string, activo bool) error {
	_, err := r.q.Exec(ctx, `UPDATE insumos SET activo = $2, updated_at = now() WHERE id = $1`, id, activo)
	if err != nil {
		return fmt.Errorf("set insumo activo: %w", err)
	}
	return nil
}

// List lista insumos del restaurante con filtros. Limit 0 = sin límite.
func (r *InsumoRepo) List(ctx context.Context, restaurantID string, f repository.InsumoFilter) ([]*entity.Insumo, error) {
	query := `SELECT ` + insumoColumns + ` FROM insumos WHERE restaurant_id = $1`
	args := []any{restaurantID}
	pos := 2
	if !f.IncluirInactivos {
		query += " AND activo"
	}
	if f.Search != "" {
		query += fmt.Sprintf(` AND nombre ILIKE $%d ESCAPE '\'`, pos)
		args = append(args, ContainsPattern(f.Search))
		pos++
	}
	if f.Categoria != "" {
		query += fmt.Sprintf(" AND categoria = $%d", pos)
		args = append(args, f.Categoria)
		pos++
	}
	if f.SoloBajoStock {
		query += " AND activo AND stock <= stock_minimo"
	}
	query += " ORDER BY nombre"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list insumos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Insumo
	for rows.Next() {
		x, err := scanInsumo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan insumo: %w", err)
		}
		list = append(list, x)
	}
	return list, rows.Err()
}

// ListBajoStock insumos activos con stock <= stock mínimo.
func (r *InsumoRepo) ListBajoStock(ctx context.Context, restaurantID string) ([]*entity.Insumo, error) {
	return r.List(ctx, restaurantID, repository.InsumoFilter{SoloBajoStock: true})
}

// CountBajoStock para el dashboard.
func (r *InsumoRepo) CountBajoStock(ctx context.Context, restaurantID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM insumos WHERE restaurant_id = $1 AND activo AND stock <= stock_minimo`,
		restaurantID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count insumos bajo stock: %w", err)
	}
	return n, nil
}
