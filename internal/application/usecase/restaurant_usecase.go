package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	nitpkg "github.com/jhoicas/restaurante-api/pkg/nit"
	"github.com/jhoicas/restaurante-api/pkg/timeutil"
)

// RestaurantUseCase aplica reglas de negocio para restaurantes (tenants).
type RestaurantUseCase struct {
	repo            repository.RestaurantRepository
	defaultTimezone string
	defaultCurrency string
}

// NewRestaurantUseCase construye el caso de uso con el puerto de persistencia.
func NewRestaurantUseCase(repo repository.RestaurantRepository, defaultTimezone, defaultCurrency string) *RestaurantUseCase {
	return &RestaurantUseCase{repo: repo, defaultTimezone: defaultTimezone, defaultCurrency: defaultCurrency}
}

// Create crea un restaurante. Devuelve domain.ErrDuplicate si el NIT ya existe.
// Una zona horaria desconocida es ErrInvalidInput.
func (uc *RestaurantUseCase) Create(ctx context.Context, in dto.CreateRestaurantRequest) (*dto.RestaurantResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	nit, err := nitpkg.Normalize(in.NIT)
	if err != nil {
		return nil, errors.Join(domain.ErrInvalidInput, err)
	}
	tz := strings.TrimSpace(in.Timezone)
	if tz == "" {
		tz = uc.defaultTimezone
	}
	if tz == "" {
		tz = timeutil.DefaultZone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, domain.ErrInvalidInput
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = uc.defaultCurrency
	}
	if len(currency) != 3 {
		return nil, domain.ErrInvalidInput
	}
	taxIncluded := true
	if in.TaxIncluded != nil {
		taxIncluded = *in.TaxIncluded
	}
	now := time.Now().UTC()
	r := &entity.Restaurant{
		ID:          uuid.New().String(),
		Name:        name,
		NIT:         nit,
		Address:     in.Address,
		Phone:       in.Phone,
		Timezone:    tz,
		Currency:    currency,
		TaxIncluded: taxIncluded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return toRestaurantResponse(r), nil
}

// GetByID obtiene un restaurante por ID.
func (uc *RestaurantUseCase) GetByID(ctx context.Context, id string) (*dto.RestaurantResponse, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return toRestaurantResponse(r), nil
}

// List lista restaurantes con paginación.
func (uc *RestaurantUseCase) List(ctx context.Context, limit, offset int) (*dto.RestaurantListResponse, error) {
	limit, offset = normalizePage(limit, offset)
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RestaurantResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRestaurantResponse(r))
	}
	return &dto.RestaurantListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toRestaurantResponse(r *entity.Restaurant) *dto.RestaurantResponse {
	return &dto.RestaurantResponse{
		ID:          r.ID,
		Name:        r.Name,
		NIT:         r.NIT,
		Address:     r.Address,
		Phone:       r.Phone,
		Timezone:    r.Timezone,
		Currency:    r.Currency,
		TaxIncluded: r.TaxIncluded,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
