package middleware

import (
	"fmt"

	apimodels "appraisal-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

// WithBodyLimit отклоняет запросы с телом больше limit байт. limit <= 0 - без ограничения.
func WithBodyLimit(limit int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limit <= 0 {
			return c.Next()
		}
		size := int64(c.Request().Header.ContentLength())
		if size < 0 {
			// chunked: длина известна только после чтения
			size = int64(len(c.Body()))
		}
		if size > limit {
			return c.Status(fiber.StatusRequestEntityTooLarge).
				JSON(apimodels.NewError(fmt.Sprintf("размер запроса превышает %d байт", limit)))
		}
		return c.Next()
	}
}
