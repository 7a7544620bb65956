package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/pkg/timeutil"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// Orden relevante: el primero que coincide con errors.Is gana.
var errorMappings = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{timeutil.ErrInvalidDate, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUserNotFound, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrPriceMismatch, fiber.StatusConflict, "PRICE_MISMATCH"},
	{domain.ErrOverpayment, fiber.StatusBadRequest, "OVERPAYMENT"},
}

// writeError traduce errores de dominio a HTTP. Los no mapeados se registran y
// responden 500 sin exponer el detalle.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: errorMessage(err)})
		}
	}
	zerolog.Ctx(c.UserContext()).Error().Err(err).
		Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// errorMessage aplana los errores unidos con errors.Join en una sola línea.
func errorMessage(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", ": ")
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// page lee limit/offset con los mismos límites que los casos de uso.
func page(c *fiber.Ctx) (int, int) {
	var p dto.PageRequest
	if err := c.QueryParser(&p); err != nil {
		p = dto.PageRequest{}
	}
	p.DefaultPage()
	return p.Limit, p.Offset
}
