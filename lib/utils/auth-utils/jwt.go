package authutils

import (
	"time"

	"appraisal-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ContextKey ключ fiber.Ctx.Locals с разобранным токеном
const ContextKey = "user"

// GetToken токен с полями, которые читает middleware (выпускается сервисом авторизации, здесь - для служебных нужд и тестов)
func GetToken(secret, userID, name string, role models.UserRole, managerID *string, ttl time.Duration) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"name": name,
		"sub":  userID,
		"role": string(role),
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	if managerID != nil {
		claims["manager_id"] = *managerID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals(ContextKey).(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}
