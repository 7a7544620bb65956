package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestLogger registra cada petición con zerolog y deja un sublogger con el
// request_id en el UserContext para los handlers.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(fiber.HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set(fiber.HeaderXRequestID, reqID)

		l := log.With().Str("request_id", reqID).Logger()
		c.SetUserContext(l.WithContext(c.UserContext()))

		err := c.Next()
		if err != nil {
			// El ErrorHandler de Fiber escribe la respuesta; aquí solo se registra.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := l.Info()
		switch {
		case status >= 500:
			ev = l.Error().Err(err)
		case status >= 400:
			ev = l.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("restaurant_id", GetRestaurantID(c)).
			Msg("http")
		return nil
	}
}
