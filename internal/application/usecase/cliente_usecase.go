package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/reporting"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// ClienteUseCase CRM: alta, búsqueda, historial y acumulados de clientes.
type ClienteUseCase struct {
	repo repository.ClienteRepository
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{repo: repo}
}

// Create registra un cliente. Documento repetido en el restaurante: ErrDuplicate.
func (uc *ClienteUseCase) Create(ctx context.Context, restaurantID string, in dto.CreateClienteRequest) (*dto.ClienteResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	c := &entity.Cliente{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		Nombre:       nombre,
		Documento:    strings.TrimSpace(in.Documento),
		Email:        strings.TrimSpace(in.Email),
		Telefono:     strings.TrimSpace(in.Telefono),
		Direccion:    in.Direccion,
		Notas:        in.Notas,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toClienteResponse(c), nil
}

// Get cliente del restaurante o ErrNotFound.
func (uc *ClienteUseCase) Get(ctx context.Context, restaurantID, id string) (*entity.Cliente, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.RestaurantID != restaurantID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// GetByID obtiene un cliente.
func (uc *ClienteUseCase) GetByID(ctx context.Context, restaurantID, id string) (*dto.ClienteResponse, error) {
	c, err := uc.Get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	return toClienteResponse(c), nil
}

// Update actualiza los campos enviados.
func (uc *ClienteUseCase) Update(ctx context.Context, restaurantID, id string, in dto.UpdateClienteRequest) (*dto.ClienteResponse, error) {
	c, err := uc.Get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if in.Nombre != nil {
		if strings.TrimSpace(*in.Nombre) == "" {
			return nil, domain.ErrInvalidInput
		}
		c.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Documento != nil {
		c.Documento = strings.TrimSpace(*in.Documento)
	}
	if in.Email != nil {
		c.Email = strings.TrimSpace(*in.Email)
	}
	if in.Telefono != nil {
		c.Telefono = strings.TrimSpace(*in.Telefono)
	}
	if in.Direccion != nil {
		c.Direccion = *in.Direccion
	}
	if in.Notas != nil {
		c.Notas = *in.Notas
	}
	c.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toClienteResponse(c), nil
}

// List busca por nombre, documento o teléfono.
func (uc *ClienteUseCase) List(ctx context.Context, restaurantID, search string, limit, offset int) (*dto.ClienteListResponse, error) {
	limit, offset = normalizePage(limit, offset)
	list, err := uc.repo.List(ctx, restaurantID, strings.TrimSpace(search), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClienteResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClienteResponse(c))
	}
	return &dto.ClienteListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Stats acumulados de pedidos entregados del cliente.
func (uc *ClienteUseCase) Stats(ctx context.Context, restaurantID, id string) (*dto.ClienteStatsResponse, error) {
	if _, err := uc.Get(ctx, restaurantID, id); err != nil {
		return nil, err
	}
	st, err := uc.repo.Stats(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ClienteStatsResponse{
		ClienteID:      id,
		Pedidos:        st.Pedidos,
		TotalGastado:   st.TotalGastado,
		TicketPromedio: reporting.TicketPromedio(st.TotalGastado, st.Pedidos),
		UltimoPedido:   st.UltimoPedido,
	}, nil
}

func toClienteResponse(c *entity.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:        c.ID,
		Nombre:    c.Nombre,
		Documento: c.Documento,
		Email:     c.Email,
		Telefono:  c.Telefono,
		Direccion: c.Direccion,
		Notas:     c.Notas,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
