package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/paytrack-api/internal/application/dto"
	"github.com/jhoicas/paytrack-api/internal/application/usecase"
)

// PaymentEntryHandler endpoints del ciclo de vida de entradas de pago.
type PaymentEntryHandler struct {
	uc *usecase.PaymentEntryUseCase
}

// NewPaymentEntryHandler construye el handler.
func NewPaymentEntryHandler(uc *usecase.PaymentEntryUseCase) *PaymentEntryHandler {
	return &PaymentEntryHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar entrada de pago
// @Tags         payment-entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.PaymentEntryRequest  true  "Empresa, cliente, factura y monto"
// @Success      201   {object}  dto.PaymentEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/payment-entries [post]
func (h *PaymentEntryHandler) Create(c *fiber.Ctx) error {
	var in dto.PaymentEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetCurrentUser(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar entradas de pago
// @Description  Admin y manager ven todas; employee solo las propias.
// @Tags         payment-entries
// @Produce      json
// @Security     BearerAuth
// @Param        validated_only  query  bool  false  "Solo validadas"
// @Success      200  {array}  dto.PaymentEntryResponse
// @Router       /api/payment-entries [get]
func (h *PaymentEntryHandler) List(c *fiber.Ctx) error {
	var q dto.PaymentEntryListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "validated_only debe ser booleano"})
	}
	out, err := h.uc.List(c.UserContext(), GetCurrentUser(c), q.ValidatedOnly)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListPending godoc
// @Summary      Cola de entradas pendientes
// @Tags         payment-entries
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.PaymentEntryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/payment-entries/pending [get]
func (h *PaymentEntryHandler) ListPending(c *fiber.Ctx) error {
	out, err := h.uc.ListPending(c.UserContext(), GetCurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener entrada de pago
// @Tags         payment-entries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.PaymentEntryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payment-entries/{id} [get]
func (h *PaymentEntryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCurrentUser(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar entrada pendiente
// @Description  Solo el creador y solo mientras no esté validada.
// @Tags         payment-entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "ID de la entrada"
// @Param        body  body  dto.PaymentEntryRequest  true  "Nuevos datos"
// @Success      200   {object}  dto.PaymentEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/payment-entries/{id} [put]
func (h *PaymentEntryHandler) Update(c *fiber.Ctx) error {
	var in dto.PaymentEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetCurrentUser(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar entrada pendiente
// @Tags         payment-entries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payment-entries/{id} [delete]
func (h *PaymentEntryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCurrentUser(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "entrada eliminada"})
}

// Validate godoc
// @Summary      Validar entrada
// @Tags         payment-entries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.PaymentEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payment-entries/{id}/validate [post]
func (h *PaymentEntryHandler) Validate(c *fiber.Ctx) error {
	out, err := h.uc.Validate(c.UserContext(), GetCurrentUser(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
