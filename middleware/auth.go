// middleware/auth.go
package middleware

import (
	"strings"

	"liga/models"
	"liga/services"

	"github.com/gofiber/fiber/v2"
)

const userLocalsKey = "user"

// TokenParser verifies an access token and returns its claims.
type TokenParser interface {
	ParseToken(token string) (*services.Claims, error)
}

type Auth struct {
	tokens TokenParser
}

func NewAuth(tokens TokenParser) *Auth {
	return &Auth{tokens: tokens}
}

// Optional decodes a Bearer token when one is sent. A request without a
// token passes through anonymously; a bad token is rejected with 401.
func (a *Auth) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Next()
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Formato do cabeçalho Authorization inválido"})
		}

		claims, err := a.tokens.ParseToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token inválido ou expirado"})
		}

		c.Locals(userLocalsKey, claims)
		return c.Next()
	}
}

// RequireUser rejects anonymous requests.
func RequireUser(c *fiber.Ctx) error {
	if CurrentUser(c) == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Usuário não autenticado"})
	}
	return c.Next()
}

// RequirePlan lets through users whose plan is plan or PREMIUM.
func RequirePlan(plan models.Plan) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Usuário não autenticado"})
		}
		if !user.Plano.Allows(plan) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Acesso negado: plano insuficiente"})
		}
		return c.Next()
	}
}

// RequireAdmin guards the write routes.
func RequireAdmin(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Usuário não autenticado"})
	}
	if !user.Admin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Acesso negado: privilégios de administrador necessários"})
	}
	return c.Next()
}

// CurrentUser returns the claims set by Optional, or nil.
func CurrentUser(c *fiber.Ctx) *services.Claims {
	claims, _ := c.Locals(userLocalsKey).(*services.Claims)
	return claims
}
