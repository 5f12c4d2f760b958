package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/tienda-backoffice/pkg/logger"
)

// HTTPObserver recibe una muestra por petición respondida.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// Observe registra acceso (zerolog) y métricas por ruta. Va después de requestid.
func Observe(log *logger.Logger, obs HTTPObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler escriba la respuesta antes de leer el status
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		// las etiquetas viven en el registro más allá de la petición: copias propias
		method := utils.CopyString(c.Method())
		route := utils.CopyString(c.Route().Path)

		if obs != nil {
			obs.ObserveHTTP(method, route, status, elapsed)
		}
		if log != nil {
			ev := log.Info()
			if status >= fiber.StatusInternalServerError {
				ev = log.Error()
			}
			ev.Str("request_id", requestID(c)).
				Str("method", method).
				Str("route", route).
				Str("path", c.Path()).
				Int("status", status).
				Dur("elapsed", elapsed).
				Msg("http")
		}
		return nil
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
