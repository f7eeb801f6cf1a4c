package entity

import "time"

// Reminder recordatorio asociado a una entrada pendiente. Solo se agrega, nunca se modifica.
type Reminder struct {
	ID             string
	PaymentEntryID string
	TriggeredBy    string
	TriggeredAt    time.Time
	Note           *string
}
