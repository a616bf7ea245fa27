package middleware

import (
	"appraisal-backend/config"
	authutils "appraisal-backend/lib/utils/auth-utils"
	apimodels "appraisal-backend/models/api"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

// AuthorizationRequired проверяет bearer токен. Токен без идентификатора пользователя (sub) не принимается.
func AuthorizationRequired() fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims:     jwt.MapClaims{},
		ContextKey: authutils.ContextKey,
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(config.Conf.Auth.JWTSecret),
		},
		SuccessHandler: func(ctx *fiber.Ctx) error {
			if GetUserID(ctx) == "" {
				return unauthorized(ctx, "в токене не указан пользователь")
			}
			return ctx.Next()
		},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return unauthorized(ctx, err.Error())
		},
	})
}

func unauthorized(ctx *fiber.Ctx, reason string) error {
	log.WithFields(log.Fields{
		"path":   ctx.Path(),
		"reason": reason,
	}).Debug("Запрос без авторизации")
	return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется авторизация"))
}
