package auth

import "context"

// LoginLimiter limita los intentos fallidos de login por login id.
// La implementación con Redis vive en infrastructure/cache.
type LoginLimiter interface {
	// Allowed informa si el login id puede intentar autenticarse ahora.
	Allowed(ctx context.Context, loginID string) (bool, error)
	// RecordFailure suma un intento fallido.
	RecordFailure(ctx context.Context, loginID string) error
	// Reset limpia el contador tras un login correcto.
	Reset(ctx context.Context, loginID string) error
}

// noopLimiter se usa cuando no hay Redis configurado.
type noopLimiter struct{}

func (noopLimiter) Allowed(context.Context, string) (bool, error) { return true, nil }
func (noopLimiter) RecordFailure(context.Context, string) error   { return nil }
func (noopLimiter) Reset(context.Context, string) error           { return nil }
