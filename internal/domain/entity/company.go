package entity

import "time"

// Company empresa/cliente contra la que se registran pagos. No se elimina.
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
