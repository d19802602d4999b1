package middlewares

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"xivcrit.app/backend/internal/constant"
	"xivcrit.app/backend/internal/pkg/apperr"
)

// AdminKey guards the error-tracking app with a shared bearer key.
func AdminKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" {
			return apperr.ErrUnauthorized.Msg("admin access is not configured")
		}

		got := strings.TrimPrefix(c.Get(constant.AdminKeyHeaderKey), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			return apperr.ErrUnauthorized
		}

		return c.Next()
	}
}
