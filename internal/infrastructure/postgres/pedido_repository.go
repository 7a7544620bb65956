package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

// PedidoRepo pedidos, ítems e historial de estados sobre PostgreSQL (usable con pool o tx).
type PedidoRepo struct {
	q Querier
}

// NewPedidoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPedidoRepository(q Querier) *PedidoRepo {
	return &PedidoRepo{q: q}
}

const pedidoSelect = `
	SELECT p.id, p.restaurant_id, p.numero, p.tipo, p.mesa, p.cliente_id, COALESCE(c.nombre, ''), p.estado,
		p.subtotal, p.impuestos, p.descuento, p.total, p.metodo_pago, p.notas, p.creado_por,
		p.created_at, p.updated_at
	FROM pedidos p
	LEFT JOIN clientes c ON c.id = p.cliente_id`

// NextNumero reserva el siguiente consecutivo del restaurante. La fila de
// pedido_numeros queda bloqueada hasta el fin de la transacción.
func (r *PedidoRepo) NextNumero(ctx context.Context, restaurantID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		INSERT INTO pedido_numeros (restaurant_id, ultimo) VALUES ($1, 1)
		ON CONFLICT (restaurant_id) DO UPDATE SET ultimo = pedido_numeros.ultimo + 1
		RETURNING ultimo`, restaurantID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next numero pedido: %w", err)
	}
	return n, nil
}

// Create inserta el pedido y sus ítems. Llamar dentro de una transacción.
func (r *PedidoRepo) Create(ctx context.Context, p *entity.Pedido) error {
	query := `
		INSERT INTO pedidos (id, restaurant_id, numero, tipo, mesa, cliente_id, estado, subtotal, impuestos,
			descuento, total, metodo_pago, notas, creado_por, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.RestaurantID, p.Numero, p.Tipo, p.Mesa, nullString(p.ClienteID), p.Estado, p.Subtotal,
		p.Impuestos, p.Descuento, p.Total, p.MetodoPago, p.Notas, nullString(p.CreadoPor), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pedido: %w", err)
	}
	for _, it := range p.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO pedido_items (id, pedido_id, producto_id, nombre, cantidad, precio_unitario, tasa_impuesto,
				base, impuesto, total, notas)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			it.ID, p.ID, it.ProductoID, it.Nombre, it.Cantidad, it.PrecioUnitario, it.TasaImpuesto,
			it.Base, it.Impuesto, it.Total, it.Notas,
		)
		if err != nil {
			return fmt.Errorf("insert pedido item: %w", err)
		}
	}
	return nil
}

func scanPedido(row pgxScanner) (*entity.Pedido, error) {
	var p entity.Pedido
	var clienteID, creadoPor *string
	err := row.Scan(&p.ID, &p.RestaurantID, &p.Numero, &p.Tipo, &p.Mesa, &clienteID, &p.ClienteNombre,
		&p.Estado, &p.Subtotal, &p.Impuestos, &p.Descuento, &p.Total, &p.MetodoPago, &p.Notas, &creadoPor,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.ClienteID, p.CreadoPor = deref(clienteID), deref(creadoPor)
	return &p, nil
}

func (r *PedidoRepo) getOne(ctx context.Context, query, id string) (*entity.Pedido, error) {
	p, err := scanPedido(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	if p.Items, err = r.items(ctx, id); err != nil {
		return nil, err
	}
	if p.Historial, err = r.historial(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID pedido con ítems e historial.
func (r *PedidoRepo) GetByID(ctx context.Context, id string) (*entity.Pedido, error) {
	return r.getOne(ctx, pedidoSelect+` WHERE p.id = $1`, id)
}

// GetForUpdate como GetByID pero bloqueando la fila del pedido.
func (r *PedidoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Pedido, error) {
	return r.getOne(ctx, pedidoSelect+` WHERE p.id = $1 FOR UPDATE OF p`, id)
}

func (r *PedidoRepo) items(ctx context.Context, pedidoID string) ([]entity.PedidoItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, pedido_id, producto_id, nombre, cantidad, precio_unitario, tasa_impuesto, base, impuesto, total, notas
		FROM pedido_items WHERE pedido_id = $1 ORDER BY nombre`, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("list pedido items: %w", err)
	}
	defer rows.Close()
	var list []entity.PedidoItem
	for rows.Next() {
		var it entity.PedidoItem
		if err := rows.Scan(&it.ID, &it.PedidoID, &it.ProductoID, &it.Nombre, &it.Cantidad, &it.PrecioUnitario,
			&it.TasaImpuesto, &it.Base, &it.Impuesto, &it.Total, &it.Notas); err != nil {
			return nil, fmt.Errorf("scan pedido item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func (r *PedidoRepo) historial(ctx context.Context, pedidoID string) ([]entity.PedidoEstadoCambio, error) {
	rows, err := r.q.Query(ctx, `
		SELECT pedido_id, estado_desde, estado_hasta, usuario_id, fecha
		FROM pedido_estado_historial WHERE pedido_id = $1 ORDER BY id`, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("list pedido historial: %w", err)
	}
	defer rows.Close()
	var list []entity.PedidoEstadoCambio
	for rows.Next() {
		var h entity.PedidoEstadoCambio
		var desde, usuario *string
		if err := rows.Scan(&h.PedidoID, &desde, &h.EstadoHasta, &usuario, &h.Fecha); err != nil {
			return nil, fmt.Errorf("scan pedido historial: %w", err)
		}
		h.EstadoDesde, h.UsuarioID = deref(desde), deref(usuario)
		list = append(list, h)
	}
	return list, rows.Err()
}

// UpdateEstado cambia el estado; la validación de la transición ya se hizo.
func (r *PedidoRepo) UpdateEstado(ctx context.Context, id, estado string, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE pedidos SET estado = $2, updated_at = $3 WHERE id = $1`, id, estado, at)
	if err != nil {
		return fmt.Errorf("update estado pedido: %w", err)
	}
	return nil
}

// AddHistorial registra un cambio de estado. EstadoDesde vacío = creación.
func (r *PedidoRepo) AddHistorial(ctx context.Context, h *entity.PedidoEstadoCambio) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO pedido_estado_historial (pedido_id, estado_desde, estado_hasta, usuario_id, fecha)
		VALUES ($1, $2, $3, $4, $5)`,
		h.PedidoID, nullString(h.EstadoDesde), h.EstadoHasta, nullString(h.UsuarioID), h.Fecha,
	)
	if err != nil {
		return fmt.Errorf("insert pedido historial: %w", err)
	}
	return nil
}

// List pedidos sin ítems, del número más alto al más bajo.
func (r *PedidoRepo) List(ctx context.Context, restaurantID string, f repository.PedidoFilter) ([]*entity.Pedido, error) {
	query := pedidoSelect + ` WHERE p.restaurant_id = $1`
	args := []any{restaurantID}
	pos := 2
	if len(f.Estados) > 0 {
		query += fmt.Sprintf(" AND p.estado = ANY($%d)", pos)
		args = append(args, f.Estados)
		pos++
	}
	if f.ClienteID != "" {
		query += fmt.Sprintf(" AND p.cliente_id = $%d", pos)
		args = append(args, f.ClienteID)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND p.created_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND p.created_at < $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY p.numero DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pedido
	for rows.Next() {
		p, err := scanPedido(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListCola pedidos abiertos de la cocina por orden de llegada. Los ítems se
// cargan en una sola consulta para todo el lote.
func (r *PedidoRepo) ListCola(ctx context.Context, restaurantID string, estados []string) ([]*entity.Pedido, error) {
	rows, err := r.q.Query(ctx, pedidoSelect+`
		WHERE p.restaurant_id = $1 AND p.estado = ANY($2)
		ORDER BY p.created_at ASC, p.numero ASC`, restaurantID, estados)
	if err != nil {
		return nil, fmt.Errorf("list cola pedidos: %w", err)
	}
	var list []*entity.Pedido
	byID := make(map[string]*entity.Pedido)
	ids := make([]string, 0)
	for rows.Next() {
		p, err := scanPedido(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		list = append(list, p)
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cola pedidos: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}

	itemRows, err := r.q.Query(ctx, `
		SELECT id, pedido_id, producto_id, nombre, cantidad, precio_unitario, tasa_impuesto, base, impuesto, total, notas
		FROM pedido_items WHERE pedido_id = ANY($1) ORDER BY pedido_id, nombre`, ids)
	if err != nil {
		return nil, fmt.Errorf("list cola items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var it entity.PedidoItem
		if err := itemRows.Scan(&it.ID, &it.PedidoID, &it.ProductoID, &it.Nombre, &it.Cantidad, &it.PrecioUnitario,
			&it.TasaImpuesto, &it.Base, &it.Impuesto, &it.Total, &it.Notas); err != nil {
			return nil, fmt.Errorf("scan pedido item: %w", err)
		}
		if p := byID[it.PedidoID]; p != nil {
			p.Items = append(p.Items, it)
		}
	}
	return list, itemRows.Err()
}

// CountAbiertos pedidos que aún no terminan (ni entregados ni cancelados).
func (r *PedidoRepo) CountAbiertos(ctx context.Context, restaurantID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT count(*) FROM pedidos
		WHERE restaurant_id = $1 AND estado NOT IN ('entregado', 'cancelado')`, restaurantID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pedidos abiertos: %w", err)
	}
	return n, nil
}

// IsTransitionAllowed consulta pedido_transiciones.
func (r *PedidoRepo) IsTransitionAllowed(ctx context.Context, desde, hasta string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM pedido_transiciones WHERE estado_desde = $1 AND estado_hasta = $2)`,
		desde, hasta,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check transicion pedido: %w", err)
	}
	return ok, nil
}
