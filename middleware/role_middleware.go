package middleware

import (
	authutils "appraisal-backend/lib/utils/auth-utils"
	"appraisal-backend/models"
	apimodels "appraisal-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

// ManagerRoleRequired операции руководителя: согласование, отклонение, завершение аттестации
func ManagerRoleRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetUserRole(ctx).IsManagerRole() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция доступна только руководителю"))
		}
		return ctx.Next()
	}
}

func AdminRoleRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetUserRole(ctx).IsAdmin() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}

func GetUserID(ctx *fiber.Ctx) string {
	return claimString(ctx, "sub")
}

func GetUserName(ctx *fiber.Ctx) string {
	return claimString(ctx, "name")
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	return models.UserRole(claimString(ctx, "role"))
}

// GetManagerID руководитель сотрудника из токена, nil если не указан
func GetManagerID(ctx *fiber.Ctx) *string {
	managerID := claimString(ctx, "manager_id")
	if managerID == "" {
		return nil
	}
	return &managerID
}

func claimString(ctx *fiber.Ctx, key string) string {
	claims := authutils.GetClaims(ctx)
	if value, exist := claims[key]; exist {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return ""
}
