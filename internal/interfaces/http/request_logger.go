package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/commodities-cms/pkg/logger"
)

// RequestLogger registra método, ruta, status, latencia y usuario de cada petición.
// En los 500 incluye el error que writeError dejó en LocalError.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		logged := err
		if logged == nil {
			logged, _ = c.Locals(LocalError).(error)
		}
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error().Err(logged)
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Int64("user_id", GetUserID(c)).
			Msg("http")
		return err
	}
}
