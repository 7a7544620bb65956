package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

// ProveedorRepo implementación del puerto ProveedorRepository (usable con pool o tx).
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

const proveedorColumns = `id, restaurant_id, nombre, nit, contacto, telefono, email, direccion, dias_credito, activo, created_at, updated_at`

// Create persiste un proveedor. NIT repetido en el restaurante: ErrDuplicate.
func (r *ProveedorRepo) Create(ctx context.Context, p *entity.Proveedor) error {
	query := `
		INSERT INTO proveedores (` + proveedorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.RestaurantID, p.Nombre, p.NIT, p.Contacto, p.Telefono, p.Email, p.Direccion,
		p.DiasCredito, p.Activo, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

func scanProveedor(row pgxScanner) (*entity.Proveedor, error) {
	var p entity.Proveedor
	err := row.Scan(&p.ID, &p.RestaurantID, &p.Nombre, &p.NIT, &p.Contacto, &p.Telefono, &p.Email,
		&p.Direccion, &p.DiasCredito, &p.Activo, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID obtiene un proveedor por ID.
func (r *ProveedorRepo) GetByID(ctx context.Context, id string) (*entity.Proveedor, error) {
	p, err := scanProveedor(r.q.QueryRow(ctx, `SELECT `+proveedorColumns+` FROM proveedores WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return p, nil
}

// Update actualiza datos de contacto y plazo de crédito.
func (r *ProveedorRepo) Update(ctx context.Context, p *entity.Proveedor) error {
	query := `
		UPDATE proveedores SET nombre = $2, nit = $3, contacto = $4, telefono = $5, email = $6,
			direccion = $7, dias_credito = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Nombre, p.NIT, p.Contacto, p.Telefono, p.Email, p.Direccion, p.DiasCredito, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update proveedor: %w", err)
	}
	return nil
}

// SetActivo activa o desactiva el proveedor.
func (r *ProveedorRepo) SetActivo(ctx context.Context, id string, activo bool) error {
	_, err := r.q.Exec(ctx, `UPDATE proveedores SET activo = $2, updated_at = now() WHERE id = $1`, id, activo)
	if err != nil {
		return fmt.Errorf("set proveedor activo: %w", err)
	}
	return nil
}

// List lista proveedores del restaurante ordenados por nombre.
func (r *ProveedorRepo) List(ctx context.Context, restaurantID string, soloActivos bool, limit, offset int) ([]*entity.Proveedor, error) {
	query := `SELECT ` + proveedorColumns + ` FROM proveedores WHERE restaurant_id = $1`
	if soloActivos {
		query += " AND activo"
	}
	query += " ORDER BY nombre LIMIT $2 OFFSET $3"
	rows, err := r.q.Query(ctx, query, restaurantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Proveedor
	for rows.Next() {
		p, err := scanProveedor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpsertInsumo crea o reemplaza la relación proveedor-insumo.
func (r *ProveedorRepo) UpsertInsumo(ctx context.Context, rel *entity.ProveedorInsumo) error {
	query := `
		INSERT INTO proveedor_insumos (proveedor_id, insumo_id, costo, activo, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (proveedor_id, insumo_id)
		DO UPDATE SET costo = EXCLUDED.costo, activo = EXCLUDED.activo, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, rel.ProveedorID, rel.InsumoID, rel.Costo, rel.Activo, rel.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert proveedor insumo: %w", err)
	}
	return nil
}

// UpdateCostoInsumo registra el último costo de compra; crea la relación si no existía.
func (r *ProveedorRepo) UpdateCostoInsumo(ctx context.Context, proveedorID, insumoID string, costo decimal.Decimal) error {
	query := `
		INSERT INTO proveedor_insumos (proveedor_id, insumo_id, costo, activo, updated_at)
		VALUES ($1, $2, $3, true, now())
		ON CONFLICT (proveedor_id, insumo_id)
		DO UPDATE SET costo = EXCLUDED.costo, updated_at = now()`
	_, err := r.q.Exec(ctx, query, proveedorID, insumoID, costo)
	if err != nil {
		return fmt.Errorf("update costo proveedor insumo: %w", err)
	}
	return nil
}

// SetInsumoActivo devuelve false si la relación no existe.
func (r *ProveedorRepo) SetInsumoActivo(ctx context.Context, proveedorID, insumoID string, activo bool) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE proveedor_insumos SET activo = $3, updated_at = now() WHERE proveedor_id = $1 AND insumo_id = $2`,
		proveedorID, insumoID, activo,
	)
	if err != nil {
		return false, fmt.Errorf("set proveedor insumo activo: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

const proveedorInsumoSelect = `
	SELECT pi.proveedor_id, pi.insumo_id, pi.costo, pi.activo, pi.updated_at, p.nombre, i.nombre, i.unidad
	FROM proveedor_insumos pi
	JOIN proveedores p ON p.id = pi.proveedor_id
	JOIN insumos i ON i.id = pi.insumo_id`

func (r *ProveedorRepo) listRel(ctx context.Context, where string, arg string) ([]*entity.ProveedorInsumo, error) {
	rows, err := r.q.Query(ctx, proveedorInsumoSelect+" WHERE pi.activo AND "+where+" ORDER BY pi.costo, i.nombre", arg)
	if err != nil {
		return nil, fmt.Errorf("list proveedor insumos: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProveedorInsumo
	for rows.Next() {
		var rel entity.ProveedorInsumo
		if err := rows.Scan(&rel.ProveedorID, &rel.InsumoID, &rel.Costo, &rel.Activo, &rel.UpdatedAt,
			&rel.ProveedorNombre, &rel.InsumoNombre, &rel.InsumoUnidad); err != nil {
			return nil, fmt.Errorf("scan proveedor insumo: %w", err)
		}
		list = append(list, &rel)
	}
	return list, rows.Err()
}

// ListInsumos insumos activos que suministra el proveedor, del más barato al más caro.
func (r *ProveedorRepo) ListInsumos(ctx context.Context, proveedorID string) ([]*entity.ProveedorInsumo, error) {
	return r.listRel(ctx, "pi.proveedor_id = $1", proveedorID)
}

// ListProveedoresDeInsumo proveedores activos de un insumo, del más barato al más caro.
func (r *ProveedorRepo) ListProveedoresDeInsumo(ctx context.Context, insumoID string) ([]*entity.ProveedorInsumo, error) {
	return r.listRel(ctx, "pi.insumo_id = $1", insumoID)
}
