package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo carta y recetas sobre PostgreSQL (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

const productoColumns = `id, restaurant_id, nombre, categoria, precio, tasa_impuesto, activo, created_at, updated_at`

// Create persiste un producto. La receta se guarda aparte con SetReceta.
func (r *ProductoRepo) Create(ctx context.Context, p *entity.Producto) error {
	query := `
		INSERT INTO productos (` + productoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.RestaurantID, p.Nombre, p.Categoria, p.Precio, p.TasaImpuesto, p.Activo, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

func scanProducto(row pgxScanner) (*entity.Producto, error) {
	var p entity.Producto
	err := row.Scan(&p.ID, &p.RestaurantID, &p.Nombre, &p.Categoria, &p.Precio, &p.TasaImpuesto, &p.Activo,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductoRepo) queryList(ctx context.Context, query string, args ...any) ([]*entity.Producto, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetByID obtiene un producto por ID (sin receta).
func (r *ProductoRepo) GetByID(ctx context.Context, id string) (*entity.Producto, error) {
	p, err := scanProducto(r.q.QueryRow(ctx, `SELECT `+productoColumns+` FROM productos WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// GetByIDs productos del restaurante cuyo ID está en ids. Los ausentes simplemente no vienen.
func (r *ProductoRepo) GetByIDs(ctx context.Context, restaurantID string, ids []string) ([]*entity.Producto, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.queryList(ctx,
		`SELECT `+productoColumns+` FROM productos WHERE restaurant_id = $1 AND id = ANY($2::uuid[])`,
		restaurantID, ids,
	)
}

// Update actualiza precio, tasa y estado del producto.
func (r *ProductoRepo) Update(ctx context.Context, p *entity.Producto) error {
	query := `
		UPDATE productos SET nombre = $2, categoria = $3, precio = $4, tasa_impuesto = $5, activo = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, p.ID, p.Nombre, p.Categoria, p.Precio, p.TasaImpuesto, p.Activo, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// List carta del restaurante, opcionalmente filtrada por categoría.
func (r *ProductoRepo) List(ctx context.Context, restaurantID, categoria string, soloActivos bool, limit, offset int) ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE restaurant_id = $1`
	args := []any{restaurantID}
	pos := 2
	if categoria != "" {
		query += fmt.Sprintf(" AND categoria = $%d", pos)
		args = append(args, categoria)
		pos++
	}
	if soloActivos {
		query += " AND activo"
	}
	query += fmt.Sprintf(" ORDER BY nombre LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.queryList(ctx, query, args...)
}

// SetReceta reemplaza la receta completa. Llamar dentro de una transacción.
func (r *ProductoRepo) SetReceta(ctx context.Context, productoID string, items []entity.RecetaItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM recetas WHERE producto_id = $1`, productoID); err != nil {
		return fmt.Errorf("delete receta: %w", err)
	}
	for _, it := range items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO recetas (producto_id, insumo_id, cantidad) VALUES ($1, $2, $3)`,
			productoID, it.InsumoID, it.Cantidad,
		)
		if err != nil {
			return fmt.Errorf("insert receta item: %w", err)
		}
	}
	return nil
}

// GetReceta ítems de la receta con el nombre del insumo.
func (r *ProductoRepo) GetReceta(ctx context.Context, productoID string) ([]entity.RecetaItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT re.producto_id, re.insumo_id, i.nombre, re.cantidad
		FROM recetas re
		JOIN insumos i ON i.id = re.insumo_id
		WHERE re.producto_id = $1
		ORDER BY i.nombre`, productoID)
	if err != nil {
		return nil, fmt.Errorf("get receta: %w", err)
	}
	defer rows.Close()
	var list []entity.RecetaItem
	for rows.Next() {
		var it entity.RecetaItem
		if err := rows.Scan(&it.ProductoID, &it.InsumoID, &it.InsumoNombre, &it.Cantidad); err != nil {
			return nil, fmt.Errorf("scan receta item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
