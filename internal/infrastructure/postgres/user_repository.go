package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/paytrack-api/internal/domain"
	"github.com/jhoicas/paytrack-api/internal/domain/entity"
	"github.com/jhoicas/paytrack-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, login_id, name, role, password_hash, company_id, created_by, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q  Querier
	tx *TxRunner
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{q: pool, tx: NewTxRunner(pool)}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.LoginID, user.Name, string(user.Role), user.PasswordHash,
		user.CompanyID, user.CreatedBy, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el login id %s ya existe", domain.ErrConflict, user.LoginID)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// CreateFirstAdmin inserta el admin solo si no hay ninguno, bajo el advisory lock
// de administradores para que dos arranques simultáneos no creen dos admins.
func (r *UserRepo) CreateFirstAdmin(ctx context.Context, user *entity.User) error {
	return r.tx.RunLocked(ctx, lockAdmins, func(q Querier) error {
		return insertFirstAdmin(ctx, q, user)
	})
}

func insertFirstAdmin(ctx context.Context, q Querier, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		SELECT $1::text, $2::text, $3::text, 'admin', $4::text, NULL, NULL, $5::timestamptz, $6::timestamptz
		WHERE NOT EXISTS (SELECT 1 FROM users WHERE role = 'admin')`
	cmd, err := q.Exec(ctx, query,
		user.ID, user.LoginID, user.Name, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el login id %s ya existe", domain.ErrConflict, user.LoginID)
		}
		return fmt.Errorf("insert first admin: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAdminExists
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByLoginID obtiene un usuario por su login id.
func (r *UserRepo) GetByLoginID(ctx context.Context, loginID string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE login_id = $1`, loginID)
}

// List devuelve usuarios ordenados por fecha de creación.
func (r *UserRepo) List(ctx context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	var (
		where []string
		args  []any
	)
	if filter.Role != nil {
		args = append(args, string(*filter.Role))
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	query := `SELECT ` + userColumns + ` FROM users`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at, login_id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update sobrescribe nombre, rol y hash. El login id no se modifica.
// No degrada al último admin; corre bajo el mismo lock que CreateFirstAdmin.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	return r.tx.RunLocked(ctx, lockAdmins, func(q Querier) error {
		return updateUser(ctx, q, user)
	})
}

func updateUser(ctx context.Context, q Querier, user *entity.User) error {
	query := `
		UPDATE users SET name = $2, role = $3, password_hash = $4, updated_at = $5
		WHERE id = $1
		  AND ($3::text = 'admin' OR role <> 'admin'
		       OR EXISTS (SELECT 1 FROM users WHERE role = 'admin' AND id <> $1))`
	cmd, err := q.Exec(ctx, query,
		user.ID, user.Name, string(user.Role), user.PasswordHash, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, user.ID).Scan(&exists); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: no se puede degradar al último administrador", domain.ErrConflict)
}

func (r *UserRepo) findOne(ctx context.Context, query string, arg string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	var (
		u    entity.User
		role string
	)
	if err := row.Scan(
		&u.ID, &u.LoginID, &u.Name, &role, &u.PasswordHash,
		&u.CompanyID, &u.CreatedBy, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}
