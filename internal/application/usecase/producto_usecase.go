package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/pricing"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// ProductoUseCase gestiona la carta y las recetas.
type ProductoUseCase struct {
	txRunner   ports.TxRunner
	repo       repository.ProductoRepository
	insumoRepo repository.InsumoRepository
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(txRunner ports.TxRunner, repo repository.ProductoRepository, insumoRepo repository.InsumoRepository) *ProductoUseCase {
	return &ProductoUseCase{txRunner: txRunner, repo: repo, insumoRepo: insumoRepo}
}

// Create crea un producto activo; si trae receta la guarda en la misma transacción.
func (uc *ProductoUseCase) Create(ctx context.Context, restaurantID string, in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" || !in.Precio.GreaterThan(decimal.Zero) || !pricing.TasaValida(in.TasaImpuesto) {
		return nil, domain.ErrInvalidInput
	}
	var receta []entity.RecetaItem
	if len(in.Receta) > 0 {
		var err error
		if receta, err = uc.validarReceta(ctx, restaurantID, in.Receta); err != nil {
			return nil, err
		}
	}
	now := time.Now().UTC()
	p := &entity.Producto{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		Nombre:       nombre,
		Categoria:    in.Categoria,
		Precio:       in.Precio,
		TasaImpuesto: in.TasaImpuesto,
		Activo:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i := range receta {
		receta[i].ProductoID = p.ID
	}
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		if err := repos.Productos.Create(ctx, p); err != nil {
			return err
		}
		if receta == nil {
			return nil
		}
		return repos.Productos.SetReceta(ctx, p.ID, receta)
	})
	if err != nil {
		return nil, err
	}
	p.Receta = receta
	return toProductoResponse(p), nil
}

func (uc *ProductoUseCase) get(ctx context.Context, restaurantID, id string) (*entity.Producto, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.RestaurantID != restaurantID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// GetByID obtiene el producto con su receta.
func (uc *ProductoUseCase) GetByID(ctx context.Context, restaurantID, id string) (*dto.ProductoResponse, error) {
	p, err := uc.get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if p.Receta, err = uc.repo.GetReceta(ctx, id); err != nil {
		return nil, err
	}
	return toProductoResponse(p), nil
}

// Update actualiza los campos enviados. Precio > 0 y tasa válida.
func (uc *ProductoUseCase) Update(ctx context.Context, restaurantID, id string, in dto.UpdateProductoRequest) (*dto.ProductoResponse, error) {
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
	if in.Categoria != nil {
		p.Categoria = *in.Categoria
	}
	if in.Precio != nil {
		if !in.Precio.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		p.Precio = *in.Precio
	}
	if in.TasaImpuesto != nil {
		if !pricing.TasaValida(*in.TasaImpuesto) {
			return nil, domain.ErrInvalidInput
		}
		p.TasaImpuesto = *in.TasaImpuesto
	}
	if in.Activo != nil {
		p.Activo = *in.Activo
	}
	p.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductoResponse(p), nil
}

// List lista productos; soloActivos para la vista del POS.
func (uc *ProductoUseCase) List(ctx context.Context, restaurantID, categoria string, soloActivos bool, limit, offset int) (*dto.ProductoListResponse, error) {
	limit, offset = normalizePage(limit, offset)
	list, err := uc.repo.List(ctx, restaurantID, categoria, soloActivos, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductoResponse(p))
	}
	return &dto.ProductoListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// SetReceta reemplaza la receta completa. Una lista vacía deja el producto sin receta.
func (uc *ProductoUseCase) SetReceta(ctx context.Context, restaurantID, id string, in dto.SetRecetaRequest) (*dto.ProductoResponse, error) {
	p, err := uc.get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	receta, err := uc.validarReceta(ctx, restaurantID, in.Items)
	if err != nil {
		return nil, err
	}
	for i := range receta {
		receta[i].ProductoID = p.ID
	}
	err = uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		return repos.Productos.SetReceta(ctx, p.ID, receta)
	})
	if err != nil {
		return nil, err
	}
	p.Receta = receta
	return toProductoResponse(p), nil
}

// validarReceta cantidades > 0, sin insumos repetidos y del mismo restaurante.
func (uc *ProductoUseCase) validarReceta(ctx context.Context, restaurantID string, items []dto.RecetaItemDTO) ([]entity.RecetaItem, error) {
	seen := make(map[string]bool, len(items))
	out := make([]entity.RecetaItem, 0, len(items))
	for _, it := range items {
		if it.InsumoID == "" || !it.Cantidad.GreaterThan(decimal.Zero) || seen[it.InsumoID] {
			return nil, domain.ErrInvalidInput
		}
		seen[it.InsumoID] = true
		ins, err := uc.insumoRepo.GetByID(ctx, it.InsumoID)
		if err != nil {
			return nil, err
		}
		if ins == nil || ins.RestaurantID != restaurantID {
			return nil, domain.ErrNotFound
		}
		out = append(out, entity.RecetaItem{InsumoID: ins.ID, InsumoNombre: ins.Nombre, Cantidad: it.Cantidad})
	}
	return out, nil
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	res := &dto.ProductoResponse{
		ID:           p.ID,
		Nombre:       p.Nombre,
		Categoria:    p.Categoria,
		Precio:       p.Precio,
		TasaImpuesto: p.TasaImpuesto,
		Activo:       p.Activo,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	for _, r := range p.Receta {
		res.Receta = append(res.Receta, dto.RecetaItemDTO{InsumoID: r.InsumoID, InsumoNombre: r.InsumoNombre, Cantidad: r.Cantidad})
	}
	return res
}
