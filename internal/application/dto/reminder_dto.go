package dto

import "time"

// CreateReminderRequest entrada para POST /api/reminders.
type CreateReminderRequest struct {
	PaymentEntryID string  `json:"payment_entry_id"`
	Note           *string `json:"note"`
}

// ReminderResponse salida de un recordatorio con el nombre de quien lo disparó.
type ReminderResponse struct {
	ID              string    `json:"id"`
	PaymentEntryID  string    `json:"payment_entry_id"`
	TriggeredBy     string    `json:"triggered_by"`
	TriggeredByName *string   `json:"triggered_by_name"`
	TriggeredAt     time.Time `json:"triggered_at"`
	Note            *string   `json:"note"`
}
