// Package tenant resuelve la configuración regional de un restaurante: zona
// horaria, moneda, formato de montos y si los precios incluyen impuesto.
package tenant

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/pkg/money"
	"github.com/jhoicas/restaurante-api/pkg/timeutil"
)

// Defaults valores de la app cuando el restaurante no los define.
type Defaults struct {
	Timezone string
	Currency string
	Locale   string
}

// Info restaurante con su zona y formateador listos para usar.
type Info struct {
	Restaurant *entity.Restaurant
	Loc        *time.Location
	Currency   string
	Money      *money.Formatter
}

// Resolver construye Info a partir del repositorio de restaurantes.
type Resolver struct {
	repo     repository.RestaurantRepository
	defaults Defaults
}

// NewResolver construye el resolver.
func NewResolver(repo repository.RestaurantRepository, defaults Defaults) *Resolver {
	if defaults.Currency == "" {
		defaults.Currency = "COP"
	}
	if defaults.Locale == "" {
		defaults.Locale = "es"
	}
	return &Resolver{repo: repo, defaults: defaults}
}

// Get devuelve domain.ErrNotFound si el restaurante no existe.
func (r *Resolver) Get(ctx context.Context, restaurantID string) (*Info, error) {
	rest, err := r.repo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("tenant: %w", err)
	}
	if rest == nil {
		return nil, domain.ErrNotFound
	}
	tz := rest.Timezone
	if tz == "" {
		tz = r.defaults.Timezone
	}
	cur := rest.Currency
	if cur == "" {
		cur = r.defaults.Currency
	}
	return &Info{
		Restaurant: rest,
		Loc:        timeutil.LoadLocation(tz),
		Currency:   cur,
		Money:      money.NewFormatter(r.defaults.Locale, cur),
	}, nil
}
