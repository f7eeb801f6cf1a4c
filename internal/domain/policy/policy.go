// Package policy contiene la matriz de autorización (rol, acción) → permitido.
//
// Es código puro: no consulta el almacén ni conoce HTTP. Los casos de uso la
// invocan antes de cualquier lectura o escritura que dependa del actor.
package policy

import (
	"fmt"

	"github.com/jhoicas/paytrack-api/internal/domain"
	"github.com/jhoicas/paytrack-api/internal/domain/entity"
)

// Action operación sujeta a autorización.
type Action string

// Acciones del sistema.
const (
	CreateCompany Action = "company.create"
	UpdateCompany Action = "company.update"
	ListCompanies Action = "company.list"

	CreateUser Action = "user.create"
	ListUsers  Action = "user.list"
	UpdateUser Action = "user.update"

	CreateEntry        Action = "entry.create"
	ListEntries        Action = "entry.list"
	ListPendingEntries Action = "entry.list_pending"
	ValidateEntry      Action = "entry.validate"
	MutateEntry        Action = "entry.mutate" // editar o eliminar; además exige ser el creador y que esté pendiente

	CreateReminder Action = "reminder.create"
	ListReminders  Action = "reminder.list"

	ViewAnalytics Action = "analytics.view"
)

var (
	everyone    = []entity.Role{entity.RoleAdmin, entity.RoleManager, entity.RoleEmployee}
	supervisors = []entity.Role{entity.RoleAdmin, entity.RoleManager}
	adminOnly   = []entity.Role{entity.RoleAdmin}
)

// matrix roles permitidos por acción. Una acción ausente se deniega.
var matrix = map[Action][]entity.Role{
	CreateCompany: supervisors,
	UpdateCompany: supervisors,
	ListCompanies: everyone,

	CreateUser: supervisors,
	ListUsers:  supervisors,
	UpdateUser: adminOnly,

	CreateEntry:        everyone,
	ListEntries:        everyone,
	ListPendingEntries: supervisors,
	ValidateEntry:      supervisors,
	MutateEntry:        everyone,

	CreateReminder: supervisors,
	ListReminders:  supervisors,

	ViewAnalytics: adminOnly,
}

// Actions devuelve todas las acciones conocidas.
func Actions() []Action {
	out := make([]Action, 0, len(matrix))
	for a := range matrix {
		out = append(out, a)
	}
	return out
}

// Allows informa si el rol puede ejecutar la acción. Roles inválidos nunca pasan.
func Allows(role entity.Role, action Action) bool {
	if !role.Valid() {
		return false
	}
	for _, r := range matrix[action] {
		if r == role {
			return true
		}
	}
	return false
}

// Authorize devuelve domain.ErrForbidden si el rol no puede ejecutar la acción.
func Authorize(role entity.Role, action Action) error {
	if !Allows(role, action) {
		return fmt.Errorf("%w: %s no puede %s", domain.ErrForbidden, role, action)
	}
	return nil
}

// CanAssignRole valida el rol que un actor intenta asignar al crear un usuario:
// admin asigna cualquiera, manager solo employee.
func CanAssignRole(actor, target entity.Role) error {
	if err := Authorize(actor, CreateUser); err != nil {
		return err
	}
	if !target.Valid() {
		return fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, target)
	}
	if actor == entity.RoleManager && target != entity.RoleEmployee {
		return fmt.Errorf("%w: un manager solo crea empleados", domain.ErrForbidden)
	}
	return nil
}

// Scope alcance de lectura de entradas de pago.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeOwn
	ScopeAll
)

// EntryScope alcance de listado de entradas: admin y manager ven todas, employee solo las propias.
func EntryScope(role entity.Role) Scope {
	switch role {
	case entity.RoleAdmin, entity.RoleManager:
		return ScopeAll
	case entity.RoleEmployee:
		return ScopeOwn
	}
	return ScopeNone
}

// CanView informa si el actor puede leer la entrada según su alcance.
func CanView(actor *entity.User, e *entity.PaymentEntry) bool {
	switch EntryScope(actor.Role) {
	case ScopeAll:
		return true
	case ScopeOwn:
		return e.CreatedBy == actor.ID
	}
	return false
}

// UserListRole filtro de rol para el listado de usuarios: nil = todos (admin),
// employee para manager. Employee recibe ErrForbidden.
func UserListRole(role entity.Role) (*entity.Role, error) {
	if err := Authorize(role, ListUsers); err != nil {
		return nil, err
	}
	if role == entity.RoleManager {
		r := entity.RoleEmployee
		return &r, nil
	}
	return nil, nil
}

// CanMutateEntry aplica las reglas de edición/borrado: solo el creador y solo
// mientras la entrada está pendiente.
func CanMutateEntry(actor *entity.User, e *entity.PaymentEntry) error {
	if err := Authorize(actor.Role, MutateEntry); err != nil {
		return err
	}
	if e.CreatedBy != actor.ID {
		return fmt.Errorf("%w: solo el creador puede modificar la entrada", domain.ErrForbidden)
	}
	if !e.IsPending() {
		return domain.ErrAlreadyValidated
	}
	return nil
}
