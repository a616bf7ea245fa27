package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestWithBodyLimit(t *testing.T) {
	newApp := func(limit int64) *fiber.App {
		app := fiber.New()
		app.Use(WithBodyLimit(limit))
		app.Post("/", func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
		return app
	}
	send := func(t *testing.T, app *fiber.App, body string) int {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader(body)))
		require.NoError(t, err)
		return resp.StatusCode
	}

	t.Run(`в пределах лимита`, func(t *testing.T) {
		require.Equal(t, fiber.StatusOK, send(t, newApp(10), "0123456789"))
	})
	t.Run(`превышение`, func(t *testing.T) {
		require.Equal(t, fiber.StatusRequestEntityTooLarge, send(t, newApp(10), "0123456789A"))
	})
	t.Run(`без ограничения`, func(t *testing.T) {
		require.Equal(t, fiber.StatusOK, send(t, newApp(0), strings.Repeat("a", 1024)))
	})
}
