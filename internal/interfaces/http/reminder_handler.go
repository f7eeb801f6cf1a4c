package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/paytrack-api/internal/application/dto"
	"github.com/jhoicas/paytrack-api/internal/application/usecase"
)

// ReminderHandler recordatorios sobre entradas pendientes.
type ReminderHandler struct {
	uc *usecase.ReminderUseCase
}

// NewReminderHandler construye el handler.
func NewReminderHandler(uc *usecase.ReminderUseCase) *ReminderHandler {
	return &ReminderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear recordatorio
// @Tags         reminders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateReminderRequest  true  "Entrada y nota opcional"
// @Success      201   {object}  dto.ReminderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reminders [post]
func (h *ReminderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReminderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetCurrentUser(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByEntry godoc
// @Summary      Recordatorios de una entrada
// @Tags         reminders
// @Produce      json
// @Security     BearerAuth
// @Param        entry_id  path  string  true  "ID de la entrada"
// @Success      200  {array}   dto.ReminderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reminders/{entry_id} [get]
func (h *ReminderHandler) ListByEntry(c *fiber.Ctx) error {
	out, err := h.uc.ListByEntry(c.UserContext(), GetCurrentUser(c), c.Params("entry_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
