package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/application/apptest"
	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/application/usecase"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var errReceta = errors.New("no se pudo guardar la receta")

type recetaFallida struct{ repository.ProductoRepository }

func (recetaFallida) SetReceta(context.Context, string, []entity.RecetaItem) error { return errReceta }

// txRecetaFallida corre sobre el store pero con un repositorio de productos que
// falla al guardar la receta.
type txRecetaFallida struct{ *apptest.Store }

func (s txRecetaFallida) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	return s.Store.Run(ctx, func(repos ports.TxRepos) error {
		repos.Productos = recetaFallida{repos.Productos}
		return fn(repos)
	})
}

func seedInsumo(t *testing.T, store *apptest.Store) (string, string) {
	t.Helper()
	ctx := context.Background()
	r := &entity.Restaurant{Name: "La Fonda", NIT: "900", Timezone: "America/Bogota", Currency: "COP"}
	require.NoError(t, store.Restaurants().Create(ctx, r))
	ins := &entity.Insumo{RestaurantID: r.ID, Nombre: "Frijol", Unidad: entity.UnidadKg, Activo: true}
	require.NoError(t, store.Insumos().Create(ctx, ins))
	return r.ID, ins.ID
}

func TestProductoCreate_ConReceta(t *testing.T) {
	store := apptest.NewStore()
	restID, insumoID := seedInsumo(t, store)
	uc := usecase.NewProductoUseCase(store, store.Productos(), store.Insumos())

	p, err := uc.Create(context.Background(), restID, dto.CreateProductoRequest{
		Nombre: "Bandeja paisa", Precio: d("32000"), TasaImpuesto: d("8"),
		Receta: []dto.RecetaItemDTO{{InsumoID: insumoID, Cantidad: d("0.15")}},
	})
	require.NoError(t, err)

	got, err := uc.GetByID(context.Background(), restID, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Receta, 1)
	assert.Equal(t, "Frijol", got.Receta[0].InsumoNombre)
	assert.True(t, got.Receta[0].Cantidad.Equal(d("0.15")))
}

func TestProductoCreate_FalloEnRecetaNoDejaProducto(t *testing.T) {
	store := apptest.NewStore()
	restID, insumoID := seedInsumo(t, store)
	uc := usecase.NewProductoUseCase(txRecetaFallida{store}, store.Productos(), store.Insumos())

	_, err := uc.Create(context.Background(), restID, dto.CreateProductoRequest{
		Nombre: "Bandeja paisa", Precio: d("32000"), TasaImpuesto: d("8"),
		Receta: []dto.RecetaItemDTO{{InsumoID: insumoID, Cantidad: d("0.15")}},
	})
	assert.ErrorIs(t, err, errReceta)

	list, err := store.Productos().List(context.Background(), restID, "", false, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductoCreate_RecetaConInsumoRepetido(t *testing.T) {
	store := apptest.NewStore()
	restID, insumoID := seedInsumo(t, store)
	uc := usecase.NewProductoUseCase(store, store.Productos(), store.Insumos())

	_, err := uc.Create(context.Background(), restID, dto.CreateProductoRequest{
		Nombre: "Frijolada", Precio: d("18000"), TasaImpuesto: d("8"),
		Receta: []dto.RecetaItemDTO{{InsumoID: insumoID, Cantidad: d("0.1")}, {InsumoID: insumoID, Cantidad: d("0.2")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
