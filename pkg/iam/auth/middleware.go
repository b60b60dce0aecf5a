package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jobgate-vn/jobgate/pkg/kernel"
)

// AuthContext carries the authenticated actor through a request
type AuthContext struct {
	UserID kernel.UserID
	Role   Role
	Email  kernel.Email
}

const authContextKey = "auth_context"

// Middleware validates bearer tokens and stores the actor in the request context
func Middleware(tokenService TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return ErrMissingToken()
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return ErrInvalidToken().WithDetail("reason", "malformed authorization header")
		}

		claims, err := tokenService.ValidateAccessToken(parts[1])
		if err != nil {
			return err
		}

		c.Locals(authContextKey, AuthContext{
			UserID: claims.UserID,
			Role:   claims.Role,
			Email:  claims.Email,
		})

		return c.Next()
	}
}

// RequireRole rejects requests whose actor does not hold one of the given roles
func RequireRole(roles ...Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}

		for _, role := range roles {
			if authCtx.Role == role {
				return c.Next()
			}
		}

		return ErrForbidden().WithDetail("role", authCtx.Role)
	}
}

// GetAuthContext extracts the authenticated actor from the request context
func GetAuthContext(c *fiber.Ctx) (AuthContext, bool) {
	authCtx, ok := c.Locals(authContextKey).(AuthContext)
	return authCtx, ok
}
