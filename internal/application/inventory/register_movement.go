package inventory

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
)

// RegistrarFromRequest adapta el request HTTP al caso de uso Registrar(ctx, MovimientoInput).
func (uc *MovimientoUseCase) RegistrarFromRequest(ctx context.Context, restaurantID, userID, insumoID string, in dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error) {
	input := MovimientoInput{
		RestaurantID:  restaurantID,
		UserID:        userID,
		InsumoID:      insumoID,
		Tipo:          in.Tipo,
		Cantidad:      in.Cantidad,
		CostoUnitario: in.CostoUnitario,
		ProveedorID:   in.ProveedorID,
		ACredito:      in.ACredito,
		Nota:          in.Nota,
	}
	if in.Fecha != nil {
		input.Fecha = *in.Fecha
	}
	return uc.Registrar(ctx, input)
}
