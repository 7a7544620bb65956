package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	nitpkg "github.com/jhoicas/restaurante-api/pkg/nit"
)

// DiasCreditoDefault plazo cuando el proveedor no define uno.
const DiasCreditoDefault = 30

// ProveedorUseCase CRUD de proveedores y su relación de costos con insumos.
type ProveedorUseCase struct {
	repo       repository.ProveedorRepository
	insumoRepo repository.InsumoRepository
}

// NewProveedorUseCase construye el caso de uso.
func NewProveedorUseCase(repo repository.ProveedorRepository, insumoRepo repository.InsumoRepository) *ProveedorUseCase {
	return &ProveedorUseCase{repo: repo, insumoRepo: insumoRepo}
}

// Create crea un proveedor activo. NIT duplicado en el restaurante: ErrDuplicate.
func (uc *ProveedorUseCase) Create(ctx context.Context, restaurantID string, in dto.CreateProveedorRequest) (*dto.ProveedorResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	nit, err := nitpkg.Normalize(in.NIT)
	if err != nil {
		return nil, errors.Join(domain.ErrInvalidInput, err)
	}
	dias := DiasCreditoDefault
	if in.DiasCredito != nil {
		dias = *in.DiasCredito
	}
	if dias < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	p := &entity.Proveedor{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		Nombre:       nombre,
		NIT:          nit,
		Contacto:     in.Contacto,
		Telefono:     in.Telefono,
		Email:        in.Email,
		Direccion:    in.Direccion,
		DiasCredito:  dias,
		Activo:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProveedorResponse(p), nil
}

func (uc *ProveedorUseCase) get(ctx context.Context, restaurantID, id string) (*entity.Proveedor, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.RestaurantID != restaurantID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// GetByID obtiene un proveedor del restaurante.
func (uc *ProveedorUseCase) GetByID(ctx context.Context, restaurantID, id string) (*dto.ProveedorResponse, error) {
	p, err := uc.get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	return toProveedorResponse(p), nil
}

// Update actualiza los campos enviados.
func (uc *ProveedorUseCase) Update(ctx context.Context, restaurantID, id string, in dto.UpdateProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := uc.get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if in.Nombre != nil {
		if strings.TrimSpace(*in.Nombre) == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Contacto != nil {
		p.Contacto = *in.Contacto
	}
	if in.Telefono != nil {
		p.Telefono = *in.Telefono
	}
	if in.Email != nil {
		p.Email = *in.Email
	}
	if in.Direccion != nil {
		p.Direccion = *in.Direccion
	}
	if in.DiasCredito != nil {
		if *in.DiasCredito < 0 {
			return nil, domain.ErrInvalidInput
		}
		p.DiasCredito = *in.DiasCredito
	}
	if in.Activo != nil {
		p.Activo = *in.Activo
	}
	p.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProveedorResponse(p), nil
}

// Deactivate baja lógica; las cuentas y movimientos históricos se conservan.
func (uc *ProveedorUseCase) Deactivate(ctx context.Context, restaurantID, id string) error {
	if _, err := uc.get(ctx, restaurantID, id); err != nil {
		return err
	}
	return uc.repo.SetActivo(ctx, id, false)
}

// List lista proveedores del restaurante.
func (uc *ProveedorUseCase) List(ctx context.Context, restaurantID string, soloActivos bool, limit, offset int) (*dto.ProveedorListResponse, error) {
	limit, offset = normalizePage(limit, offset)
	list, err := uc.repo.List(ctx, restaurantID, soloActivos, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProveedorResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProveedorResponse(p))
	}
	return &dto.ProveedorListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// VincularInsumo crea o actualiza la relación proveedor-insumo (upsert).
func (uc *ProveedorUseCase) VincularInsumo(ctx context.Context, restaurantID, proveedorID, insumoID string, in dto.VincularInsumoRequest) (*dto.ProveedorInsumoResponse, error) {
	if in.Costo.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.get(ctx, restaurantID, proveedorID)
	if err != nil {
		return nil, err
	}
	ins, err := uc.insumoRepo.GetByID(ctx, insumoID)
	if err != nil {
		return nil, err
	}
	if ins == nil || ins.RestaurantID != restaurantID {
		return nil, domain.ErrNotFound
	}
	activo := true
	if in.Activo != nil {
		activo = *in.Activo
	}
	rel := &entity.ProveedorInsumo{
		ProveedorID:     p.ID,
		InsumoID:        ins.ID,
		Costo:           in.Costo,
		Activo:          activo,
		UpdatedAt:       time.Now().UTC(),
		ProveedorNombre: p.Nombre,
		InsumoNombre:    ins.Nombre,
		InsumoUnidad:    ins.Unidad,
	}
	if err := uc.repo.UpsertInsumo(ctx, rel); err != nil {
		return nil, err
	}
	return toProveedorInsumoResponse(rel), nil
}

// DesvincularInsumo desactiva la relación; ErrNotFound si no existía.
func (uc *ProveedorUseCase) DesvincularInsumo(ctx context.Context, restaurantID, proveedorID, insumoID string) error {
	if _, err := uc.get(ctx, restaurantID, proveedorID); err != nil {
		return err
	}
	ok, err := uc.repo.SetInsumoActivo(ctx, proveedorID, insumoID, false)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// ListInsumos insumos activos que ofrece el proveedor, del más barato al más caro.
func (uc *ProveedorUseCase) ListInsumos(ctx context.Context, restaurantID, proveedorID string) ([]dto.ProveedorInsumoResponse, error) {
	if _, err := uc.get(ctx, restaurantID, proveedorID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListInsumos(ctx, proveedorID)
	if err != nil {
		return nil, err
	}
	return toProveedorInsumoList(list), nil
}

// ListProveedores proveedores activos de un insumo ordenados por costo.
func (uc *ProveedorUseCase) ListProveedores(ctx context.Context, restaurantID, insumoID string) ([]dto.ProveedorInsumoResponse, error) {
	ins, err := uc.insumoRepo.GetByID(ctx, insumoID)
	if err != nil {
		return nil, err
	}
	if ins == nil || ins.RestaurantID != restaurantID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListProveedoresDeInsumo(ctx, insumoID)
	if err != nil {
		return nil, err
	}
	return toProveedorInsumoList(list), nil
}

func toProveedorInsumoList(list []*entity.ProveedorInsumo) []dto.ProveedorInsumoResponse {
	out := make([]dto.ProveedorInsumoResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toProveedorInsumoResponse(r))
	}
	return out
}

func toProveedorInsumoResponse(r *entity.ProveedorInsumo) *dto.ProveedorInsumoResponse {
	return &dto.ProveedorInsumoResponse{
		ProveedorID:     r.ProveedorID,
		ProveedorNombre: r.ProveedorNombre,
		InsumoID:        r.InsumoID,
		InsumoNombre:    r.InsumoNombre,
		InsumoUnidad:    r.InsumoUnidad,
		Costo:           r.Costo,
		Activo:          r.Activo,
		UpdatedAt:       r.UpdatedAt,
	}
}

func toProveedorResponse(p *entity.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		NIT:         p.NIT,
		Contacto:    p.Contacto,
		Telefono:    p.Telefono,
		Email:       p.Email,
		Direccion:   p.Direccion,
		DiasCredito: p.DiasCredito,
		Activo:      p.Activo,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
