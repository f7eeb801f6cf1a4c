package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/paytrack-api/internal/domain/entity"
	"github.com/jhoicas/paytrack-api/internal/domain/repository"
)

var _ repository.ReminderRepository = (*ReminderRepo)(nil)

// ReminderRepo implementación append-only de ReminderRepository sobre SQLite.
type ReminderRepo struct {
	db *DB
}

// NewReminderRepository construye el adaptador.
func NewReminderRepository(db *DB) *ReminderRepo {
	return &ReminderRepo{db: db}
}

// CreateForPendingEntry inserta solo si la entrada existe y sigue pendiente.
func (r *ReminderRepo) CreateForPendingEntry(ctx context.Context, rem *entity.Reminder) (bool, error) {
	res, err := r.db.conn.ExecContext(ctx, `
		INSERT INTO reminders (id, payment_entry_id, triggered_by, triggered_at, note)
		SELECT ?, e.id, ?, ?, ?
		  FROM payment_entries e
		 WHERE e.id = ? AND e.is_validated = 0`,
		rem.ID, rem.TriggeredBy, formatTime(rem.TriggeredAt), rem.Note, rem.PaymentEntryID,
	)
	if err != nil {
		return false, fmt.Errorf("insert reminder: %w", err)
	}
	return affectedOne(res)
}

// ListByEntry devuelve los recordatorios de la entrada, más recientes primero.
func (r *ReminderRepo) ListByEntry(ctx context.Context, entryID string) ([]*entity.Reminder, error) {
	rows, err := r.db.conn.QueryContext(ctx, `
		SELECT id, payment_entry_id, triggered_by, triggered_at, note
		  FROM reminders
		 WHERE payment_entry_id = ?
		 ORDER BY triggered_at DESC, id`, entryID)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Reminder
	for rows.Next() {
		var (
			rem         entity.Reminder
			triggeredAt string
		)
		if err := rows.Scan(&rem.ID, &rem.PaymentEntryID, &rem.TriggeredBy, &triggeredAt, &rem.Note); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		if rem.TriggeredAt, err = parseTime(triggeredAt); err != nil {
			return nil, err
		}
		list = append(list, &rem)
	}
	return list, rows.Err()
}
