package middleware

import (
	"Go-Course-Market/domain"
	"Go-Course-Market/internal/api/presenters"
	"Go-Course-Market/pkg/jwt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE",
	})
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, role, err := extractToken(c, jwtService)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals("user_id", userID)
		c.Locals("role", role)
		return c.Next()
	}
}

// OptionalAuthMiddleware resolves the viewer when a token is supplied but lets
// anonymous requests through. Used by the entitlement check, which must serve
// free courses without a login.
func (m *middleware) OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, role, err := extractToken(c, jwtService)
		if err == nil {
			c.Locals("user_id", userID)
			c.Locals("role", role)
		}
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx, jwtService jwt.JWTService) (string, string, error) {
	header := c.Get("Authorization")
	if header == "" {
		return "", "", domain.ErrTokenNotFound
	}

	token := strings.TrimPrefix(header, "Bearer ")
	return jwtService.GetUserIDByToken(token)
}
