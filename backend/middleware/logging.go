package middleware

import (
	"time"

	"github.com/kassslll/creator-studio/backend/utils"

	"github.com/gofiber/fiber/v2"
)

func LoggingMiddleware(logger *utils.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		kv := []interface{}{
			"ip", c.IP(),
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"latency", time.Since(start),
		}
		if err != nil {
			kv = append(kv, "error", err.Error())
			logger.Warn("request failed", kv...)
			return err
		}
		logger.Info("request", kv...)
		return nil
	}
}
