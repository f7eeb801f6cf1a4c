package entity

import (
	"fmt"
	"strings"
	"time"
)

// Role rol de un usuario. Conjunto cerrado: admin, manager, employee.
type Role string

// Roles válidos para User.
const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Roles devuelve todos los roles en orden de privilegio descendente.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleEmployee}
}

// Valid informa si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// ParseRole convierte un string (sin distinguir mayúsculas) en Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("rol desconocido %q", s)
	}
	return r, nil
}

// User representa un usuario del sistema.
// LoginID es el código con el que inicia sesión; no cambia después del alta.
type User struct {
	ID           string
	LoginID      string
	Name         string // nombre visible ("identifiant")
	Role         Role
	PasswordHash string  // bcrypt
	CompanyID    *string // empresa de referencia, opcional
	CreatedBy    *string // nil para el administrador inicial
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
