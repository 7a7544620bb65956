package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/tenant"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/pkg/timeutil"
)

// InsumoUseCase CRUD de insumos. Stock y costo no se editan aquí: solo vía movimientos.
type InsumoUseCase struct {
	repo    repository.InsumoRepository
	movRepo repository.MovimientoInsumoRepository
	tenants *tenant.Resolver
}

// NewInsumoUseCase construye el caso de uso.
func NewInsumoUseCase(repo repository.InsumoRepository, movRepo repository.MovimientoInsumoRepository, tenants *tenant.Resolver) *InsumoUseCase {
	return &InsumoUseCase{repo: repo, movRepo: movRepo, tenants: tenants}
}

// Create crea un insumo activo con stock y costo en cero.
func (uc *InsumoUseCase) Create(ctx context.Context, restaurantID string, in dto.CreateInsumoRequest) (*dto.InsumoResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" || !entity.ValidUnidad(in.Unidad) || in.StockMinimo.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	ins := &entity.Insumo{
		ID:            uuid.New().String(),
		RestaurantID:  restaurantID,
		Nombre:        nombre,
		Unidad:        in.Unidad,
		Categoria:     strings.TrimSpace(in.Categoria),
		Stock:         decimal.Zero,
		StockMinimo:   in.StockMinimo,
		CostoUnitario: decimal.Zero,
		Activo:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, ins); err != nil {
		return nil, err
	}
	return ToInsumoResponse(ins), nil
}

// Get insumo del restaurante o ErrNotFound.
func (uc *InsumoUseCase) Get(ctx context.Context, restaurantID, id string) (*entity.Insumo, error) {
	ins, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ins == nil || ins.RestaurantID != restaurantID {
		return nil, domain.ErrNotFound
	}
	return ins, nil
}

// GetByID obtiene un insumo.
func (uc *InsumoUseCase) GetByID(ctx context.Context, restaurantID, id string) (*dto.InsumoResponse, error) {
	ins, err := uc.Get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	return ToInsumoResponse(ins), nil
}

// Update actualiza datos descriptivos y el mínimo.
func (uc *InsumoUseCase) Update(ctx context.Context, restaurantID, id string, in dto.UpdateInsumoRequest) (*dto.InsumoResponse, error) {
	ins, err := uc.Get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if in.Nombre != nil {
		if strings.TrimSpace(*in.Nombre) == "" {
			return nil, domain.ErrInvalidInput
		}
		ins.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Unidad != nil {
		if !entity.ValidUnidad(*in.Unidad) {
			return nil, domain.ErrInvalidInput
		}
		ins.Unidad = *in.Unidad
	}
	if in.Categoria != nil {
		ins.Categoria = strings.TrimSpace(*in.Categoria)
	}
	if in.StockMinimo != nil {
		if in.StockMinimo.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		ins.StockMinimo = *in.StockMinimo
	}
	if in.Activo != nil {
		ins.Activo = *in.Activo
	}
	ins.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, ins); err != nil {
		return nil, err
	}
	return ToInsumoResponse(ins), nil
}

// Deactivate baja lógica del insumo.
func (uc *InsumoUseCase) Deactivate(ctx context.Context, restaurantID, id string) error {
	if _, err := uc.Get(ctx, restaurantID, id); err != nil {
		return err
	}
	return uc.repo.SetActivo(ctx, id, false)
}

// List lista insumos con filtros.
func (uc *InsumoUseCase) List(ctx context.Context, restaurantID string, f repository.InsumoFilter) (*dto.InsumoListResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Limit > 200 {
		f.Limit = 200
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	list, err := uc.repo.List(ctx, restaurantID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InsumoResponse, 0, len(list))
	for _, ins := range list {
		items = append(items, *ToInsumoResponse(ins))
	}
	return &dto.InsumoListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

// ListMovimientos kardex del insumo. desde/hasta aceptan RFC3339 o YYYY-MM-DD;
// las fechas de calendario se toman en la zona del restaurante y hasta es inclusive.
func (uc *InsumoUseCase) ListMovimientos(ctx context.Context, restaurantID, insumoID, desde, hasta string, limit, offset int) ([]dto.MovimientoResponse, error) {
	if _, err := uc.Get(ctx, restaurantID, insumoID); err != nil {
		return nil, err
	}
	info, err := uc.tenants.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	from, err := parseInstant(desde, info.Loc, false)
	if err != nil {
		return nil, err
	}
	to, err := parseInstant(hasta, info.Loc, true)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	list, err := uc.movRepo.ListByInsumo(ctx, insumoID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMovimientoResponse(m))
	}
	return out, nil
}

// parseInstant devuelve nil para cadena vacía. Con endOfDay una fecha sola se
// convierte en el inicio del día siguiente (límite exclusivo).
func parseInstant(s string, loc *time.Location, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := timeutil.ParseLocalDate(s, loc)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1)
	}
	t = t.UTC()
	return &t, nil
}

// ToInsumoResponse convierte la entidad a DTO.
func ToInsumoResponse(i *entity.Insumo) *dto.InsumoResponse {
	return &dto.InsumoResponse{
		ID:            i.ID,
		Nombre:        i.Nombre,
		Unidad:        i.Unidad,
		Categoria:     i.Categoria,
		Stock:         i.Stock,
		StockMinimo:   i.StockMinimo,
		CostoUnitario: i.CostoUnitario,
		BajoStock:     i.BajoStock(),
		Activo:        i.Activo,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

func toMovimientoResponse(m *entity.MovimientoInsumo) *dto.MovimientoResponse {
	return &dto.MovimientoResponse{
		ID:            m.ID,
		InsumoID:      m.InsumoID,
		Tipo:          m.Tipo,
		Cantidad:      m.Cantidad,
		CostoUnitario: m.CostoUnitario,
		CostoTotal:    m.CostoTotal,
		StockAnterior: m.StockAnterior,
		StockNuevo:    m.StockNuevo,
		ProveedorID:   m.ProveedorID,
		PedidoID:      m.PedidoID,
		Nota:          m.Nota,
		Fecha:         m.Fecha,
		CreadoPor:     m.CreadoPor,
	}
}
