package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vendor-directory/pkg/logger"
)

// HTTPObserver recibe cada petición atendida. Lo implementa *observability.Collector.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// ObserveMiddleware registra cada petición en el log y en las métricas.
// Las respuestas 5xx se registran con nivel error.
func ObserveMiddleware(log *logger.Logger, observer HTTPObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler fije el status antes de medir.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		if observer != nil {
			observer.ObserveHTTP(c.Method(), route, status, elapsed)
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Str("ip", c.IP()).
			Msg("http request")
		return nil
	}
}
