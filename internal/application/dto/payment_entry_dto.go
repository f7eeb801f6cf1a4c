package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentEntryRequest entrada para crear o editar una entrada de pago.
type PaymentEntryRequest struct {
	CompanyID     string          `json:"company_id"`
	ClientName    string          `json:"client_name"`
	InvoiceNumber string          `json:"invoice_number"`
	Amount        decimal.Decimal `json:"amount"`
}

// PaymentEntryResponse salida enriquecida con nombres de empresa, creador y validador.
// Los nombres son nil si la referencia ya no existe.
type PaymentEntryResponse struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	CompanyName     *string         `json:"company_name"`
	ClientName      string          `json:"client_name"`
	InvoiceNumber   string          `json:"invoice_number"`
	Amount          decimal.Decimal `json:"amount"`
	CreatedBy       string          `json:"created_by"`
	CreatedByName   *string         `json:"created_by_name"`
	CreatedAt       time.Time       `json:"created_at"`
	IsValidated     bool            `json:"is_validated"`
	ValidatedAt     *time.Time      `json:"validated_at"`
	ValidatedBy     *string         `json:"validated_by"`
	ValidatedByName *string         `json:"validated_by_name"`
}

// PaymentEntryListQuery parámetros de GET /api/payment-entries.
type PaymentEntryListQuery struct {
	ValidatedOnly bool `query:"validated_only"`
}
