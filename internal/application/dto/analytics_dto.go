package dto

import "github.com/shopspring/decimal"

// AnalyticsGroupDTO agregado de un grupo (empresa, empleado o mes).
type AnalyticsGroupDTO struct {
	Name      string          `json:"name"`
	Count     int             `json:"count"`
	Validated int             `json:"validated"`
	Amount    decimal.Decimal `json:"amount"`
}

// AnalyticsDTO respuesta de GET /api/analytics.
// Invariantes: TotalEntries = ValidatedEntries + PendingEntries y
// TotalAmount = ValidatedAmount + PendingAmount.
type AnalyticsDTO struct {
	TotalEntries     int                 `json:"total_entries"`
	ValidatedEntries int                 `json:"validated_entries"`
	PendingEntries   int                 `json:"pending_entries"`
	TotalAmount      decimal.Decimal     `json:"total_amount"`
	ValidatedAmount  decimal.Decimal     `json:"validated_amount"`
	PendingAmount    decimal.Decimal     `json:"pending_amount"`
	ByCompany        []AnalyticsGroupDTO `json:"by_company"`
	ByEmployee       []AnalyticsGroupDTO `json:"by_employee"`
	ByMonth          []AnalyticsGroupDTO `json:"by_month"`
}
