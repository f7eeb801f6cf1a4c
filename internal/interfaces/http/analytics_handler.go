package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/paytrack-api/internal/application/analytics"
)

// AnalyticsHandler maneja los endpoints de analítica de cobros.
type AnalyticsHandler struct {
	uc *analytics.UseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de entradas de pago
// @Description  Totales, montos y agrupaciones por empresa, empleado y mes (UTC).
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.AnalyticsDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/analytics [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	report, err := h.uc.Summary(c.UserContext(), GetCurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// ReportPDF godoc
// @Summary      Resumen en PDF
// @Tags         analytics
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/analytics/report.pdf [get]
func (h *AnalyticsHandler) ReportPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.ReportPDF(c.UserContext(), GetCurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="paytrack-analytics.pdf"`)
	return c.Send(pdf)
}
