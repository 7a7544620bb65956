package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// Asegura que RestaurantRepo implementa repository.RestaurantRepository.
var _ repository.RestaurantRepository = (*RestaurantRepo)(nil)

// RestaurantRepo implementación del puerto RestaurantRepository sobre PostgreSQL.
type RestaurantRepo struct {
	q Querier
}

// NewRestaurantRepository construye el adaptador de persistencia para restaurantes.
func NewRestaurantRepository(q Querier) *RestaurantRepo {
	return &RestaurantRepo{q: q}
}

const restaurantColumns = `id, name, nit, address, phone, timezone, currency, tax_included, created_at, updated_at`

// Create persiste un nuevo restaurante.
func (r *RestaurantRepo) Create(ctx context.Context, x *entity.Restaurant) error {
	query := `
		INSERT INTO restaurants (` + restaurantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		x.ID, x.Name, x.NIT, x.Address, x.Phone, x.Timezone, x.Currency, x.TaxIncluded,
		x.CreatedAt, x.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

func scanRestaurant(row pgxScanner) (*entity.Restaurant, error) {
	var x entity.Restaurant
	err := row.Scan(&x.ID, &x.Name, &x.NIT, &x.Address, &x.Phone, &x.Timezone, &x.Currency,
		&x.TaxIncluded, &x.CreatedAt, &x.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &x, nil
}

// GetByID obtiene un restaurante por ID.
func (r *RestaurantRepo) GetByID(ctx context.Context, id string) (*entity.Restaurant, error) {
	x, err := scanRestaurant(r.q.QueryRow(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	return x, nil
}

// List devuelve restaurantes con paginación.
func (r *RestaurantRepo) List(ctx context.Context, limit, offset int) ([]*entity.Restaurant, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	var list []*entity.Restaurant
	for rows.Next() {
		x, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		list = append(list, x)
	}
	return list, rows.Err()
}

// ListIDs todos los IDs, para los barridos periódicos.
func (r *RestaurantRepo) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM restaurants ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list restaurant ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan restaurant id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
