package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/paytrack-api/internal/application/auth"
	"github.com/jhoicas/paytrack-api/internal/application/dto"
	"github.com/jhoicas/paytrack-api/internal/domain"
	"github.com/jhoicas/paytrack-api/internal/domain/entity"
	"github.com/jhoicas/paytrack-api/internal/domain/policy"
	"github.com/jhoicas/paytrack-api/internal/domain/repository"
)

// maxLoginIDAttempts reintentos ante colisión de un código generado.
const maxLoginIDAttempts = 10

// UserUseCase alta, listado y edición de usuarios.
type UserUseCase struct {
	repo        repository.UserRepository
	generateIDs bool
	generator   LoginIDGenerator
	now         func() time.Time
}

// UserOption personaliza el UserUseCase.
type UserOption func(*UserUseCase)

// WithSuppliedLoginIDs hace que el login id lo elija quien crea el usuario.
func WithSuppliedLoginIDs() UserOption {
	return func(uc *UserUseCase) { uc.generateIDs = false }
}

// WithLoginIDGenerator reemplaza el generador de códigos (tests).
func WithLoginIDGenerator(g LoginIDGenerator) UserOption {
	return func(uc *UserUseCase) { uc.generator = g }
}

// NewUserUseCase construye el caso de uso; por defecto el login id se genera.
func NewUserUseCase(repo repository.UserRepository, opts ...UserOption) *UserUseCase {
	uc := &UserUseCase{
		repo:        repo,
		generateIDs: true,
		generator:   RandomLoginID,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Create da de alta un usuario. Admin crea cualquier rol, manager solo empleados.
func (uc *UserUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := policy.Authorize(actor.Role, policy.CreateUser); err != nil {
		return nil, err
	}
	role, err := entity.ParseRole(in.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := policy.CanAssignRole(actor.Role, role); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: identifiant es requerido", domain.ErrInvalidInput)
	}
	if len(in.Password) < auth.MinPasswordLength {
		return nil, fmt.Errorf("%w: password debe tener al menos %d caracteres", domain.ErrInvalidInput, auth.MinPasswordLength)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	actorID := actor.ID
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Role:         role,
		PasswordHash: hash,
		CompanyID:    in.CompanyID,
		CreatedBy:    &actorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if !uc.generateIDs {
		user.LoginID = strings.TrimSpace(in.LoginID)
		if user.LoginID == "" {
			return nil, fmt.Errorf("%w: user_id es requerido", domain.ErrInvalidInput)
		}
		if err := uc.repo.Create(ctx, user); err != nil {
			return nil, err
		}
		return auth.ToUserResponse(user), nil
	}

	for attempt := 0; attempt < maxLoginIDAttempts; attempt++ {
		user.LoginID, err = uc.generator(role)
		if err != nil {
			return nil, err
		}
		err = uc.repo.Create(ctx, user)
		if err == nil {
			return auth.ToUserResponse(user), nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: no se pudo generar un login id libre", domain.ErrConflict)
}

// List devuelve los usuarios visibles para el actor: admin todos, manager solo empleados.
func (uc *UserUseCase) List(ctx context.Context, actor *entity.User) ([]dto.UserResponse, error) {
	roleFilter, err := policy.UserListRole(actor.Role)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, repository.UserFilter{Role: roleFilter})
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return items, nil
}

// Update edita nombre, contraseña o rol de un usuario (solo admin). El login id no cambia.
func (uc *UserUseCase) Update(ctx context.Context, actor *entity.User, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := policy.Authorize(actor.Role, policy.UpdateUser); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: identifiant no puede quedar vacío", domain.ErrInvalidInput)
		}
		user.Name = name
	}
	if in.Role != nil {
		role, err := entity.ParseRole(*in.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		user.Role = role
	}
	if in.Password != nil && *in.Password != "" {
		if len(*in.Password) < auth.MinPasswordLength {
			return nil, fmt.Errorf("%w: password debe tener al menos %d caracteres", domain.ErrInvalidInput, auth.MinPasswordLength)
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = uc.now().UTC()

	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}
