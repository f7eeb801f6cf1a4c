package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentEntry una factura/pago a seguir y validar.
// IsValidated, ValidatedAt y ValidatedBy se fijan juntos y una sola vez.
type PaymentEntry struct {
	ID            string
	CompanyID     string
	ClientName    string
	InvoiceNumber string
	Amount        decimal.Decimal
	CreatedBy     string
	CreatedAt     time.Time
	IsValidated   bool
	ValidatedAt   *time.Time
	ValidatedBy   *string
}

// IsPending informa si la entrada aún admite cambios. Validada es terminal.
func (e *PaymentEntry) IsPending() bool {
	return !e.IsValidated
}

// PaymentEntryFields campos mutables de una entrada pendiente.
type PaymentEntryFields struct {
	CompanyID     string
	ClientName    string
	InvoiceNumber string
	Amount        decimal.Decimal
}

// Apply sobrescribe los campos mutables.
func (e *PaymentEntry) Apply(f PaymentEntryFields) {
	e.CompanyID = f.CompanyID
	e.ClientName = f.ClientName
	e.InvoiceNumber = f.InvoiceNumber
	e.Amount = f.Amount
}
