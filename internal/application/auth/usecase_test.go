package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/application/apptest"
	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/restaurante-api/pkg/jwt"
)

const secret = "test-secret"

func setup(t *testing.T) (*auth.AuthUseCase, string) {
	t.Helper()
	store := apptest.NewStore()
	r := &entity.Restaurant{Name: "La Fonda", NIT: "900123456"}
	require.NoError(t, store.Restaurants().Create(context.Background(), r))
	uc := auth.NewAuthUseCase(store.Users(), store.Restaurants(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"})
	return uc, r.ID
}

func TestRegisterYLogin(t *testing.T) {
	uc, restID := setup(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Caja@Fonda.co", Password: "secreta123", RestaurantID: restID})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCajero, u.Role, "rol por defecto")
	assert.Equal(t, "caja@fonda.co", u.Email)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "caja@fonda.co", Password: "otraclave1", RestaurantID: restID})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "caja@fonda.co", Password: "secreta123"})
	require.NoError(t, err)
	userID, rid, role, err := pkgjwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, restID, rid)
	assert.Equal(t, entity.RoleCajero, role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "caja@fonda.co", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@fonda.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegister_Validaciones(t *testing.T) {
	uc, restID := setup(t)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "corta", RestaurantID: restID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "secreta123", RestaurantID: restID, Role: "mesero"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "secreta123", RestaurantID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
