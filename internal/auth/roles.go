package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloodconnect/internal/domain"
	apperrors "github.com/spec-kit/bloodconnect/pkg/util/errorutil"
)

// RequireUserType ensures the caller carries one of the allowed roles.
func RequireUserType(message string, allowed ...domain.UserType) fiber.Handler {
	allowedSet := make(map[domain.UserType]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[user.UserType]; !exists {
			return apperrors.NewForbidden(message)
		}
		return c.Next()
	}
}
