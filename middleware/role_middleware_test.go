package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"appraisal-backend/config"
	authutils "appraisal-backend/lib/utils/auth-utils"
	"appraisal-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestApp() *fiber.App {
	conf := &config.Configuration{}
	conf.Auth.JWTSecret = testSecret
	config.Conf = conf
	app := fiber.New()
	app.Use(AuthorizationRequired())
	app.Get("/me", func(ctx *fiber.Ctx) error {
		managerID := ""
		if id := GetManagerID(ctx); id != nil {
			managerID = *id
		}
		return ctx.SendString(GetUserID(ctx) + "|" + GetUserName(ctx) + "|" + string(GetUserRole(ctx)) + "|" + managerID)
	})
	app.Get("/team", ManagerRoleRequired(), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})
	app.Put("/sections", AdminRoleRequired(), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})
	return app
}

func request(t *testing.T, app *fiber.App, method, path string, role models.UserRole, managerID *string) (int, string) {
	req := httptest.NewRequest(method, path, nil)
	if role != "" {
		token, err := authutils.GetToken(testSecret, "u1", "Иванов", role, managerID, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body := make([]byte, 256)
	n, _ := resp.Body.Read(body)
	return resp.StatusCode, string(body[:n])
}

func TestAuthorization(t *testing.T) {
	app := newTestApp()

	t.Run(`without token`, func(t *testing.T) {
		status, _ := request(t, app, fiber.MethodGet, "/me", "", nil)
		require.Equal(t, fiber.StatusUnauthorized, status)
	})

	t.Run(`token without user`, func(t *testing.T) {
		token, err := authutils.GetToken(testSecret, "", "Иванов", models.StaffOfficerRole, nil, time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run(`expired token`, func(t *testing.T) {
		token, err := authutils.GetToken(testSecret, "u1", "Иванов", models.StaffOfficerRole, nil, -time.Minute)
		require.NoError(t, err)
		req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run(`claims`, func(t *testing.T) {
		managerID := "m1"
		status, body := request(t, app, fiber.MethodGet, "/me", models.StaffOfficerRole, &managerID)
		require.Equal(t, fiber.StatusOK, status)
		require.Equal(t, "u1|Иванов|Staff Officer|m1", body)
	})
}

func TestRoles(t *testing.T) {
	app := newTestApp()

	t.Run(`manager only`, func(t *testing.T) {
		status, _ := request(t, app, fiber.MethodGet, "/team", models.StaffOfficerRole, nil)
		require.Equal(t, fiber.StatusForbidden, status)

		status, _ = request(t, app, fiber.MethodGet, "/team", models.HeadOfDepartmentRole, nil)
		require.Equal(t, fiber.StatusOK, status)

		status, _ = request(t, app, fiber.MethodGet, "/team", models.UserRole("Finance Division Head"), nil)
		require.Equal(t, fiber.StatusOK, status)
	})

	t.Run(`admin only`, func(t *testing.T) {
		status, _ := request(t, app, fiber.MethodPut, "/sections", models.SupervisorRole, nil)
		require.Equal(t, fiber.StatusForbidden, status)

		status, _ = request(t, app, fiber.MethodPut, "/sections", models.SystemAdministratorRole, nil)
		require.Equal(t, fiber.StatusOK, status)
	})
}
