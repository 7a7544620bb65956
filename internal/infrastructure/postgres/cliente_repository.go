package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación del puerto ClienteRepository sobre PostgreSQL.
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador de persistencia para clientes.
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteColumns = `id, restaurant_id, nombre, documento, email, telefono, direccion, notas, created_at, updated_at`

// Create persiste un cliente. Documento repetido en el restaurante: ErrDuplicate.
func (r *ClienteRepo) Create(ctx context.Context, c *entity.Cliente) error {
	query := `
		INSERT INTO clientes (` + clienteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.RestaurantID, c.Nombre, nullString(c.Documento), c.Email, c.Telefono, c.Direccion, c.Notas,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

func scanCliente(row pgxScanner) (*entity.Cliente, error) {
	var c entity.Cliente
	var documento *string
	err := row.Scan(&c.ID, &c.RestaurantID, &c.Nombre, &documento, &c.Email, &c.Telefono, &c.Direccion,
		&c.Notas, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Documento = deref(documento)
	return &c, nil
}

// GetByID obtiene un cliente por ID.
func (r *ClienteRepo) GetByID(ctx context.Context, id string) (*entity.Cliente, error) {
	c, err := scanCliente(r.q.QueryRow(ctx, `SELECT `+clienteColumns+` FROM clientes WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

// Update actualiza los datos del cliente.
func (r *ClienteRepo) Update(ctx context.Context, c *entity.Cliente) error {
	query := `
		UPDATE clientes SET nombre = $2, documento = $3, email = $4, telefono = $5, direccion = $6, notas = $7,
			updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Nombre, nullString(c.Documento), c.Email, c.Telefono, c.Direccion, c.Notas, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// List busca por nombre (sin distinguir mayúsculas), documento o teléfono.
func (r *ClienteRepo) List(ctx context.Context, restaurantID, search string, limit, offset int) ([]*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE restaurant_id = $1`
	args := []any{restaurantID}
	pos := 2
	if search != "" {
		query += fmt.Sprintf(` AND (nombre ILIKE $%d ESCAPE '\' OR documento LIKE $%d ESCAPE '\' OR telefono LIKE $%d ESCAPE '\')`, pos, pos, pos)
		args = append(args, ContainsPattern(search))
		pos++
	}
	query += fmt.Sprintf(" ORDER BY nombre LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Stats acumulados sobre los pedidos entregados del cliente.
func (r *ClienteRepo) Stats(ctx context.Context, clienteID string) (*entity.ClienteStats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(total), 0), MAX(created_at)
		FROM pedidos WHERE cliente_id = $1 AND estado = 'entregado'`
	st := &entity.ClienteStats{ClienteID: clienteID}
	var ultimo *time.Time
	if err := r.q.QueryRow(ctx, query, clienteID).Scan(&st.Pedidos, &st.TotalGastado, &ultimo); err != nil {
		return nil, fmt.Errorf("stats cliente: %w", err)
	}
	st.UltimoPedido = ultimo
	return st, nil
}
