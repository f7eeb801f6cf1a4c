package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/paytrack-api/internal/domain/entity"
	"github.com/jhoicas/paytrack-api/internal/domain/repository"
)

var _ repository.PaymentEntryRepository = (*PaymentEntryRepo)(nil)

const entryColumns = `id, company_id, client_name, invoice_number, amount, created_by, created_at,
	is_validated, validated_at, validated_by`

// PaymentEntryRepo implementación del puerto PaymentEntryRepository sobre PostgreSQL.
// Amount viaja como NUMERIC gracias al codec de pgx-shopspring-decimal registrado en el pool.
type PaymentEntryRepo struct {
	q Querier
}

// NewPaymentEntryRepository construye el adaptador. Acepta pool o tx (Querier).
func NewPaymentEntryRepository(q Querier) *PaymentEntryRepo {
	return &PaymentEntryRepo{q: q}
}

// Create persiste una entrada nueva (siempre pendiente).
func (r *PaymentEntryRepo) Create(ctx context.Context, e *entity.PaymentEntry) error {
	query := `
		INSERT INTO payment_entries (id, company_id, client_name, invoice_number, amount, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.CompanyID, e.ClientName, e.InvoiceNumber, e.Amount, e.CreatedBy, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment entry: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *PaymentEntryRepo) GetByID(ctx context.Context, id string) (*entity.PaymentEntry, error) {
	e, err := scanEntry(r.q.QueryRow(ctx, `SELECT `+entryColumns+` FROM payment_entries WHERE id = $1`, id))
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
		args = append(args, *filter.CreatedBy)
		where = append(where, fmt.Sprintf("created_by = $%d", len(args)))
	}
	if filter.Validated != nil {
		args = append(args, *filter.Validated)
		where = append(where, fmt.Sprintf("is_validated = $%d", len(args)))
	}
	query := `SELECT ` + entryColumns + ` FROM payment_entries`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := r.q.Query(ctx, query, args...)
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

// UpdatePending sobrescribe los campos editables si la entrada sigue pendiente.
func (r *PaymentEntryRepo) UpdatePending(ctx context.Context, e *entity.PaymentEntry) (bool, error) {
	query := `
		UPDATE payment_entries
		   SET company_id = $2, client_name = $3, invoice_number = $4, amount = $5
		 WHERE id = $1 AND is_validated = FALSE`
	cmd, err := r.q.Exec(ctx, query, e.ID, e.CompanyID, e.ClientName, e.InvoiceNumber, e.Amount)
	if err != nil {
		return false, fmt.Errorf("update payment entry: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// MarkValidated valida la entrada si sigue pendiente. De dos llamadas concurrentes solo una afecta la fila.
func (r *PaymentEntryRepo) MarkValidated(ctx context.Context, id, validatorID string, at time.Time) (bool, error) {
	query := `
		UPDATE payment_entries
		   SET is_validated = TRUE, validated_at = $2, validated_by = $3
		 WHERE id = $1 AND is_validated = FALSE`
	cmd, err := r.q.Exec(ctx, query, id, at, validatorID)
	if err != nil {
		return false, fmt.Errorf("validate payment entry: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// DeletePending elimina la entrada si sigue pendiente.
func (r *PaymentEntryRepo) DeletePending(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM payment_entries WHERE id = $1 AND is_validated = FALSE`, id)
	if err != nil {
		return false, fmt.Errorf("delete payment entry: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func scanEntry(row rowScanner) (*entity.PaymentEntry, error) {
	var e entity.PaymentEntry
	if err := row.Scan(
		&e.ID, &e.CompanyID, &e.ClientName, &e.InvoiceNumber, &e.Amount, &e.CreatedBy, &e.CreatedAt,
		&e.IsValidated, &e.ValidatedAt, &e.ValidatedBy,
	); err != nil {
		return nil, err
	}
	return &e, nil
}
