package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// factorStockIdeal el pedido sugerido lleva el insumo a 1.5 veces su mínimo.
var factorStockIdeal = decimal.NewFromFloat(1.5)

// ReposicionUseCase lista los insumos en o bajo su mínimo con la compra sugerida
// y el proveedor activo más barato.
type ReposicionUseCase struct {
	insumoRepo    repository.InsumoRepository
	proveedorRepo repository.ProveedorRepository
}

// NewReposicionUseCase construye el caso de uso de reposición.
func NewReposicionUseCase(insumoRepo repository.InsumoRepository, proveedorRepo repository.ProveedorRepository) *ReposicionUseCase {
	return &ReposicionUseCase{insumoRepo: insumoRepo, proveedorRepo: proveedorRepo}
}

// ListBajoStock devuelve las sugerencias ordenadas por urgencia (stock/mínimo ascendente).
func (uc *ReposicionUseCase) ListBajoStock(ctx context.Context, restaurantID string) ([]dto.ReposicionSugerenciaDTO, error) {
	insumos, err := uc.insumoRepo.ListBajoStock(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReposicionSugerenciaDTO, 0, len(insumos))
	for _, ins := range insumos {
		ideal := ins.StockMinimo.Mul(factorStockIdeal)
		sugerida := ideal.Sub(ins.Stock)
		if sugerida.LessThan(decimal.Zero) {
			sugerida = decimal.Zero
		}
		s := dto.ReposicionSugerenciaDTO{
			Insumo:           *ToInsumoResponse(ins),
			StockIdeal:       ideal,
			CantidadSugerida: sugerida,
			CostoEstimado:    sugerida.Mul(ins.CostoUnitario).Round(2),
		}
		provs, err := uc.proveedorRepo.ListProveedoresDeInsumo(ctx, ins.ID)
		if err != nil {
			return nil, err
		}
		if len(provs) > 0 {
			// ListProveedoresDeInsumo viene ordenado por costo ascendente
			best := provs[0]
			s.ProveedorID = best.ProveedorID
			s.ProveedorNombre = best.ProveedorNombre
			s.CostoProveedor = &best.Costo
			s.CostoEstimado = sugerida.Mul(best.Costo).Round(2)
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return cobertura(out[i]).LessThan(cobertura(out[j]))
	})
	for i := range out {
		out[i].Prioridad = i + 1
	}
	return out, nil
}

// cobertura stock / mínimo; mínimo cero cuenta como cobertura total.
func cobertura(s dto.ReposicionSugerenciaDTO) decimal.Decimal {
	if !s.Insumo.StockMinimo.GreaterThan(decimal.Zero) {
		return decimal.NewFromInt(1)
	}
	return s.Insumo.Stock.DivRound(s.Insumo.StockMinimo, 4)
}
