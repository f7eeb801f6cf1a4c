package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/paytrack-api/internal/domain"
	"github.com/jhoicas/paytrack-api/internal/domain/entity"
	"github.com/jhoicas/paytrack-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, login_id, name, role, password_hash, company_id, created_by, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre SQLite.
type UserRepo struct {
	db *DB
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.LoginID, user.Name, string(user.Role), user.PasswordHash,
		user.CompanyID, user.CreatedBy, formatTime(user.CreatedAt), formatTime(user.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el login id %s ya existe", domain.ErrConflict, user.LoginID)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// CreateFirstAdmin inserta el admin en una sola sentencia condicionada a que no exista ninguno.
func (r *UserRepo) CreateFirstAdmin(ctx context.Context, user *entity.User) error {
	res, err := r.db.conn.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		SELECT ?, ?, ?, 'admin', ?, NULL, NULL, ?, ?
		WHERE NOT EXISTS (SELECT 1 FROM users WHERE role = 'admin')`,
		user.ID, user.LoginID, user.Name, user.PasswordHash,
		formatTime(user.CreatedAt), formatTime(user.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el login id %s ya existe", domain.ErrConflict, user.LoginID)
		}
		return fmt.Errorf("insert first admin: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert first admin: %w", err)
	}
	if n == 0 {
		return domain.ErrAdminExists
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetByLoginID obtiene un usuario por su login id.
func (r *UserRepo) GetByLoginID(ctx context.Context, loginID string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE login_id = ?`, loginID)
}

// List devuelve usuarios ordenados por fecha de creación.
func (r *UserRepo) List(ctx context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var args []any
	if filter.Role != nil {
		query += ` WHERE role = ?`
		args = append(args, string(*filter.Role))
	}
	query += ` ORDER BY created_at, login_id`

	rows, err := r.db.conn.QueryContext(ctx, query, args...)
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
// La sentencia no degrada al último admin.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	res, err := r.db.conn.ExecContext(ctx, `
		UPDATE users SET name = ?, role = ?, password_hash = ?, updated_at = ?
		WHERE id = ?
		  AND (? = 'admin' OR role <> 'admin'
		       OR EXISTS (SELECT 1 FROM users WHERE role = 'admin' AND id <> ?))`,
		user.Name, string(user.Role), user.PasswordHash, formatTime(user.UpdatedAt), user.ID,
		string(user.Role), user.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n == 1 {
		return nil
	}
	var exists bool
	if err := r.db.conn.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = ?)`, user.ID).Scan(&exists); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: no se puede degradar al último administrador", domain.ErrConflict)
}

func (r *UserRepo) findOne(ctx context.Context, query, arg string) (*entity.User, error) {
	u, err := scanUser(r.db.conn.QueryRowContext(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanUser(row rowScanner) (*entity.User, error) {
	var (
		u                    entity.User
		role                 string
		createdAt, updatedAt string
	)
	if err := row.Scan(
		&u.ID, &u.LoginID, &u.Name, &role, &u.PasswordHash,
		&u.CompanyID, &u.CreatedBy, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	var err error
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
