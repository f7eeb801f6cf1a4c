package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La capa HTTP los traduce a códigos de estado con errors.Is.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthenticated    = errors.New("no autenticado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrAdminExists        = errors.New("ya existe un administrador")
	ErrAlreadyValidated   = errors.New("la entrada ya fue validada")
	ErrInvalidState       = errors.New("la entrada no admite la operación en su estado actual")
	ErrTooManyAttempts    = errors.New("demasiados intentos de inicio de sesión")
)
