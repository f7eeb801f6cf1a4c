package dto

import "time"

// CompanyRequest entrada para crear o renombrar una empresa.
type CompanyRequest struct {
	Name string `json:"name"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
