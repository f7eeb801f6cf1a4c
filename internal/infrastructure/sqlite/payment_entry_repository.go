package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/paytrack-api/internal/domain/entity"
	"github.com/jhoicas/paytrack-api/internal/domain/repository"
)

var _ repository.PaymentEntryRepository = (*PaymentEntryRepo)(nil)

const entryColumns = `id, company_id, client_name, invoice_number, amount, created_by, created_at,
	is_validated, validated_at, validated_by`

// PaymentEntryRepo implementación del puerto PaymentEntryRepository sobre SQLite.
type PaymentEntryRepo struct {
	db *DB
}

// NewPaymentEntryRepository construye el adaptador.
func NewPaymentEntryRepository(db *DB) *PaymentEntryRepo {
	return &PaymentEntryRepo{db: db}
}

func (r *PaymentEntryRepo) Create(ctx context.Context, e *entity.PaymentEntry) error {
	_, err := r.db.conn.ExecContext(ctx, `
		INSERT INTO payment_entries (id, company_id, client_name, invoice_number, amount, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CompanyID, e.ClientName, e.InvoiceNumber, e.Amount.String(), e.CreatedBy, formatTime(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert payment entry: %w", err)
	}
	return nil
}

func (r *PaymentEntryRepo) GetByID(ctx context.Context, id string) (*entity.PaymentEntry, error) {
	e, err := scanEntry(r.db.conn.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM payment_entries WHERE id = ?`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment entry: %w", err)
	}
	return e, nil
}

// List devuelve las entradas filtradas, más recientes primero.
func (r *PaymentEntryRepo) List(ctx context.Context, filter repository.PaymentEntryFilter) ([]*entity.PaymentEntry, error) {
	var (
		where []string
		args  []any
	)
	if filter.CreatedBy != nil {
		where = append(where, "created_by = ?")
		args = append(args, *filter.CreatedBy)
	}
	if filter.Validated != nil {
		where = append(where, "is_validated = ?")
		args = append(args, *filter.Validated)
	}
	query := `SELECT ` + entryColumns + ` FROM payment_entries`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := r.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payment entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.PaymentEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *PaymentEntryRepo) UpdatePending(ctx context.Context, e *entity.PaymentEntry) (bool, error) {
	res, err := r.db.conn.ExecContext(ctx, `
		UPDATE payment_entries
		   SET company_id = ?, client_name = ?, invoice_number = ?, amount = ?
		 WHERE id = ? AND is_validated = 0`,
		e.CompanyID, e.ClientName, e.InvoiceNumber, e.Amount.String(), e.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update payment entry: %w", err)
	}
	return affectedOne(res)
}

func (r *PaymentEntryRepo) MarkValidated(ctx context.Context, id, validatorID string, at time.Time) (bool, error) {
	res, err := r.db.conn.ExecContext(ctx, `
		UPDATE payment_entries
		   SET is_validated = 1, validated_at = ?, validated_by = ?
		 WHERE id = ? AND is_validated = 0`,
		formatTime(at), validatorID, id,
	)
	if err != nil {
		return false, fmt.Errorf("validate payment entry: %w", err)
	}
	return affectedOne(res)
}

func (r *PaymentEntryRepo) DeletePending(ctx context.Context, id string) (bool, error) {
	res, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM payment_entries WHERE id = ? AND is_validated = 0`, id)
	if err != nil {
		return false, fmt.Errorf("delete payment entry: %w", err)
	}
	return affectedOne(res)
}

func affectedOne(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func scanEntry(row rowScanner) (*entity.PaymentEntry, error) {
	var (
		e           entity.PaymentEntry
		amount      string
		createdAt   string
		validatedAt sql.NullString
	)
	if err := row.Scan(
		&e.ID, &e.CompanyID, &e.ClientName, &e.InvoiceNumber, &amount, &e.CreatedBy, &createdAt,
		&e.IsValidated, &validatedAt, &e.ValidatedBy,
	); err != nil {
		return nil, err
	}
	var err error
	if e.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("amount %q: %w", amount, err)
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if e.ValidatedAt, err = parseNullTime(validatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
