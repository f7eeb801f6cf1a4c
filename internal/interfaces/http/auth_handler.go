package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/paytrack-api/internal/application/auth"
	"github.com/jhoicas/paytrack-api/internal/application/dto"
)

// AuthHandler maneja login, sesión actual y creación del primer admin.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "user_id, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuario actual
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(auth.ToUserResponse(GetCurrentUser(c)))
}

// InitAdmin godoc
// @Summary      Crear el administrador inicial
// @Description  Solo funciona mientras no exista ningún admin.
// @Tags         auth
// @Produce      json
// @Success      201  {object}  dto.BootstrapResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/init-admin [post]
func (h *AuthHandler) InitAdmin(c *fiber.Ctx) error {
	out, err := h.uc.BootstrapAdmin(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
