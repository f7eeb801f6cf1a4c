package repository

import (
	"context"

	"github.com/jhoicas/paytrack-api/internal/domain/entity"
)

// UserFilter criterios de listado de usuarios. Role nil = todos.
type UserFilter struct {
	Role *entity.Role
}

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get* devuelven (nil, nil) si no hay registro.
type UserRepository interface {
	// Create persiste un usuario. Devuelve domain.ErrConflict si el login id ya existe.
	Create(ctx context.Context, user *entity.User) error
	// CreateFirstAdmin inserta el usuario solo si no existe ningún admin, en una
	// única operación atómica. Devuelve domain.ErrAdminExists en caso contrario.
	CreateFirstAdmin(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByLoginID(ctx context.Context, loginID string) (*entity.User, error)
	List(ctx context.Context, filter UserFilter) ([]*entity.User, error)
	// Update sobrescribe nombre, rol, hash y updated_at. domain.ErrNotFound si no existe;
	// domain.ErrConflict si dejaría el sistema sin ningún admin.
	Update(ctx context.Context, user *entity.User) error
}
