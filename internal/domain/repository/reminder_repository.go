package repository

import (
	"context"

	"github.com/jhoicas/paytrack-api/internal/domain/entity"
)

// ReminderRepository persistencia append-only de recordatorios.
type ReminderRepository interface {
	// CreateForPendingEntry inserta el recordatorio solo si la entrada referenciada
	// existe y sigue pendiente. false = no se insertó.
	CreateForPendingEntry(ctx context.Context, reminder *entity.Reminder) (bool, error)
	// ListByEntry devuelve los recordatorios de una entrada, más recientes primero.
	ListByEntry(ctx context.Context, entryID string) ([]*entity.Reminder, error)
}
