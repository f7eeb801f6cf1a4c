package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/paytrack-api/internal/application/dto"
	"github.com/jhoicas/paytrack-api/internal/domain"
	"github.com/jhoicas/paytrack-api/internal/domain/entity"
	"github.com/jhoicas/paytrack-api/internal/domain/policy"
)

// LocalUser clave de c.Locals con el *entity.User autenticado.
const LocalUser = "current_user"

// Authenticator resuelve un token bearer al usuario actual (auth.AuthUseCase).
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token y carga el usuario actual en c.Locals.
// El rol siempre viene del almacén, no del token.
func AuthMiddleware(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		user, err := authn.Authenticate(c.UserContext(), tokenString)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
			}
			return respondError(c, err)
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// RequirePermission corta la petición con 403 si el rol del usuario actual no puede
// ejecutar la acción. Debe ir después de AuthMiddleware.
func RequirePermission(action policy.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "se requiere autenticación"})
		}
		if !policy.Allows(user.Role, action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol " + string(user.Role) + " no tiene permiso para esta operación"})
		}
		return c.Next()
	}
}

// GetCurrentUser devuelve el usuario autenticado (después del middleware de auth).
func GetCurrentUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}

// GetUserID devuelve el ID del usuario autenticado o "".
func GetUserID(c *fiber.Ctx) string {
	if u := GetCurrentUser(c); u != nil {
		return u.ID
	}
	return ""
}

// GetRole devuelve el rol del usuario autenticado o "".
func GetRole(c *fiber.Ctx) entity.Role {
	if u := GetCurrentUser(c); u != nil {
		return u.Role
	}
	return ""
}
