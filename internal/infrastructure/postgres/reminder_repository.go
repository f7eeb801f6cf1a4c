package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/paytrack-api/internal/domain/entity"
	"github.com/jhoicas/paytrack-api/internal/domain/repository"
)

var _ repository.ReminderRepository = (*ReminderRepo)(nil)

// ReminderRepo implementación append-only de ReminderRepository sobre PostgreSQL.
type ReminderRepo struct {
	q Querier
}

// NewReminderRepository construye el adaptador. Acepta pool o tx (Querier).
func NewReminderRepository(q Querier) *ReminderRepo {
	return &ReminderRepo{q: q}
}

// CreateForPendingEntry inserta el recordatorio en la misma sentencia que comprueba
// que la entrada existe y sigue pendiente.
func (r *ReminderRepo) CreateForPendingEntry(ctx context.Context, rem *entity.Reminder) (bool, error) {
	query := `
		INSERT INTO reminders (id, payment_entry_id, triggered_by, triggered_at, note)
		SELECT $1::text, e.id, $3::text, $4::timestamptz, $5::text
		  FROM payment_entries e
		 WHERE e.id = $2::text AND e.is_validated = FALSE`
	cmd, err := r.q.Exec(ctx, query, rem.ID, rem.PaymentEntryID, rem.TriggeredBy, rem.TriggeredAt, rem.Note)
	if err != nil {
		return false, fmt.Errorf("insert reminder: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// ListByEntry devuelve los recordatorios de la entrada, más recientes primero.
func (r *ReminderRepo) ListByEntry(ctx context.Context, entryID string) ([]*entity.Reminder, error) {
	query := `
		SELECT id, payment_entry_id, triggered_by, triggered_at, note
		  FROM reminders
		 WHERE payment_entry_id = $1
		 ORDER BY triggered_at DESC, id`
	rows, err := r.q.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Reminder
	for rows.Next() {
		var rem entity.Reminder
		if err := rows.Scan(&rem.ID, &rem.PaymentEntryID, &rem.TriggeredBy, &rem.TriggeredAt, &rem.Note); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		list = append(list, &rem)
	}
	return list, rows.Err()
}
