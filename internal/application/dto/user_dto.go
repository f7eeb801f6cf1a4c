package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
// LoginID solo se usa si el modo de asignación es "supplied".
type CreateUserRequest struct {
	LoginID   string  `json:"user_id"`
	Name      string  `json:"identifiant"`
	Role      string  `json:"role"`
	Password  string  `json:"password"`
	CompanyID *string `json:"company_id"`
}

// UpdateUserRequest edición de usuario por un admin; campos nil no cambian.
type UpdateUserRequest struct {
	Name     *string `json:"identifiant"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	LoginID   string    `json:"user_id"`
	Name      string    `json:"identifiant"`
	Role      string    `json:"role"`
	CompanyID *string   `json:"company_id"`
	CreatedBy *string   `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	LoginID  string `json:"user_id"`
	Password string `json:"password"`
}

// LoginResponse token bearer más el resumen del usuario.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // segundos
	User        UserResponse `json:"user"`
}

// BootstrapResponse resultado de la creación del administrador inicial.
type BootstrapResponse struct {
	Message  string `json:"message"`
	LoginID  string `json:"user_id"`
	Password string `json:"password"`
}
