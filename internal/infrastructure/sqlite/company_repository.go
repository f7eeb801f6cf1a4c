package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/paytrack-api/internal/domain"
	"github.com/jhoicas/paytrack-api/internal/domain/entity"
	"github.com/jhoicas/paytrack-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre SQLite.
type CompanyRepo struct {
	db *DB
}

// NewCompanyRepository construye el adaptador.
func NewCompanyRepository(db *DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO companies (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	c, err := scanCompany(r.db.conn.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM companies WHERE id = ?`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

func (r *CompanyRepo) List(ctx context.Context) ([]*entity.Company, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM companies ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	res, err := r.db.conn.ExecContext(ctx,
		`UPDATE companies SET name = ?, updated_at = ? WHERE id = ?`,
		c.Name, formatTime(c.UpdatedAt), c.ID,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCompany(row rowScanner) (*entity.Company, error) {
	var (
		c                    entity.Company
		createdAt, updatedAt string
	)
	if err := row.Scan(&c.ID, &c.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
