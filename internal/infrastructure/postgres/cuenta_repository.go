package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

var _ repository.CuentaPorPagarRepository = (*CuentaPorPagarRepo)(nil)

// CuentaPorPagarRepo cuentas por pagar y sus pagos sobre PostgreSQL.
type CuentaPorPagarRepo struct {
	q Querier
}

// NewCuentaPorPagarRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCuentaPorPagarRepository(q Querier) *CuentaPorPagarRepo {
	return &CuentaPorPagarRepo{q: q}
}

const cuentaSelect = `
	SELECT c.id, c.restaurant_id, c.proveedor_id, p.nombre, c.movimiento_id, c.concepto, c.monto, c.saldo,
		c.fecha_emision, c.fecha_vencimiento, c.estado, c.created_at, c.updated_at
	FROM cuentas_por_pagar c
	JOIN proveedores p ON p.id = c.proveedor_id`

// Create persiste una cuenta por pagar.
func (r *CuentaPorPagarRepo) Create(ctx context.Context, c *entity.CuentaPorPagar) error {
	query := `
		INSERT INTO cuentas_por_pagar (id, restaurant_id, proveedor_id, movimiento_id, concepto, monto, saldo,
			fecha_emision, fecha_vencimiento, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.RestaurantID, c.ProveedorID, nullString(c.MovimientoID), c.Concepto, c.Monto, c.Saldo,
		c.FechaEmision, c.FechaVencimiento, c.Estado, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cuenta por pagar: %w", err)
	}
	return nil
}

func scanCuenta(row pgxScanner) (*entity.CuentaPorPagar, error) {
	var c entity.CuentaPorPagar
	var movimientoID *string
	err := row.Scan(&c.ID, &c.RestaurantID, &c.ProveedorID, &c.ProveedorNombre, &movimientoID, &c.Concepto,
		&c.Monto, &c.Saldo, &c.FechaEmision, &c.FechaVencimiento, &c.Estado, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.MovimientoID = deref(movimientoID)
	return &c, nil
}

func (r *CuentaPorPagarRepo) getOne(ctx context.Context, query, id string) (*entity.CuentaPorPagar, error) {
	c, err := scanCuenta(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cuenta por pagar: %w", err)
	}
	return c, nil
}

// GetByID obtiene una cuenta con el nombre del proveedor. No carga pagos.
func (r *CuentaPorPagarRepo) GetByID(ctx context.Context, id string) (*entity.CuentaPorPagar, error) {
	return r.getOne(ctx, cuentaSelect+` WHERE c.id = $1`, id)
}

// GetForUpdate bloquea solo la fila de la cuenta.
func (r *CuentaPorPagarRepo) GetForUpdate(ctx context.Context, id string) (*entity.CuentaPorPagar, error) {
	return r.getOne(ctx, cuentaSelect+` WHERE c.id = $1 FOR UPDATE OF c`, id)
}

// Update persiste saldo y estado.
func (r *CuentaPorPagarRepo) Update(ctx context.Context, c *entity.CuentaPorPagar) error {
	_, err := r.q.Exec(ctx,
		`UPDATE cuentas_por_pagar SET saldo = $2, estado = $3, updated_at = $4 WHERE id = $1`,
		c.ID, c.Saldo, c.Estado, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cuenta por pagar: %w", err)
	}
	return nil
}

// List filtra por estado, proveedor y vencimiento (< VenceHasta); ordena por vencimiento.
func (r *CuentaPorPagarRepo) List(ctx context.Context, restaurantID string, f repository.CuentaFilter) ([]*entity.CuentaPorPagar, error) {
	query := cuentaSelect + ` WHERE c.restaurant_id = $1`
	args := []any{restaurantID}
	pos := 2
	if f.Estado != "" {
		query += fmt.Sprintf(" AND c.estado = $%d", pos)
		args = append(args, f.Estado)
		pos++
	}
	if f.ProveedorID != "" {
		query += fmt.Sprintf(" AND c.proveedor_id = $%d", pos)
		args = append(args, f.ProveedorID)
		pos++
	}
	if f.VenceHasta != nil {
		query += fmt.Sprintf(" AND c.fecha_vencimiento < $%d", pos)
		args = append(args, *f.VenceHasta)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY c.fecha_vencimiento LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cuentas por pagar: %w", err)
	}
	defer rows.Close()
	var list []*entity.CuentaPorPagar
	for rows.Next() {
		c, err := scanCuenta(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cuenta por pagar: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// CreatePago persiste un abono.
func (r *CuentaPorPagarRepo) CreatePago(ctx context.Context, p *entity.PagoCuenta) error {
	query := `
		INSERT INTO pagos_cuenta (id, cuenta_id, monto, metodo, referencia, fecha, creado_por)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, p.ID, p.CuentaID, p.Monto, p.Metodo, p.Referencia, p.Fecha, nullString(p.CreadoPor))
	if err != nil {
		return fmt.Errorf("insert pago cuenta: %w", err)
	}
	return nil
}

// ListPagos abonos de la cuenta en orden cronológico.
func (r *CuentaPorPagarRepo) ListPagos(ctx context.Context, cuentaID string) ([]entity.PagoCuenta, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, cuenta_id, monto, metodo, referencia, fecha, creado_por
		FROM pagos_cuenta WHERE cuenta_id = $1 ORDER BY fecha`, cuentaID)
	if err != nil {
		return nil, fmt.Errorf("list pagos cuenta: %w", err)
	}
	defer rows.Close()
	var list []entity.PagoCuenta
	for rows.Next() {
		var p entity.PagoCuenta
		var creadoPor *string
		if err := rows.Scan(&p.ID, &p.CuentaID, &p.Monto, &p.Metodo, &p.Referencia, &p.Fecha, &creadoPor); err != nil {
			return nil, fmt.Errorf("scan pago cuenta: %w", err)
		}
		p.CreadoPor = deref(creadoPor)
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountPagos cantidad de abonos registrados.
func (r *CuentaPorPagarRepo) CountPagos(ctx context.Context, cuentaID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM pagos_cuenta WHERE cuenta_id = $1`, cuentaID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pagos cuenta: %w", err)
	}
	return n, nil
}

// MarkOverdue pasa a vencida las cuentas pendientes o parciales con vencimiento anterior a hoy.
func (r *CuentaPorPagarRepo) MarkOverdue(ctx context.Context, restaurantID string, hoy time.Time) (int, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE cuentas_por_pagar SET estado = 'vencida', updated_at = now()
		WHERE restaurant_id = $1 AND estado IN ('pendiente', 'parcial') AND fecha_vencimiento < $2`,
		restaurantID, hoy,
	)
	if err != nil {
		return 0, fmt.Errorf("mark cuentas vencidas: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// Resumen totales de las cuentas abiertas. Una cuenta con vencimiento anterior a hoy
// cuenta como vencida aunque el barrido aún no la haya marcado.
func (r *CuentaPorPagarRepo) Resumen(ctx context.Context, restaurantID string, hoy, proximas time.Time) (*repository.CuentasResumen, error) {
	query := `
		SELECT
			COALESCE(SUM(saldo), 0),
			COALESCE(SUM(saldo) FILTER (WHERE estado = 'vencida' OR fecha_vencimiento < $2), 0),
			COUNT(*) FILTER (WHERE estado = 'vencida' OR fecha_vencimiento < $2),
			COALESCE(SUM(saldo) FILTER (WHERE estado <> 'vencida' AND fecha_vencimiento >= $2 AND fecha_vencimiento < $3), 0)
		FROM cuentas_por_pagar
		WHERE restaurant_id = $1 AND estado IN ('pendiente', 'parcial', 'vencida')`
	var res repository.CuentasResumen
	err := r.q.QueryRow(ctx, query, restaurantID, hoy, proximas).Scan(
		&res.TotalPendiente, &res.TotalVencido, &res.CuentasVencidas, &res.ProximasAVencer,
	)
	if err != nil {
		return nil, fmt.Errorf("resumen cuentas por pagar: %w", err)
	}
	return &res, nil
}
