package repository

import (
	"context"

	"github.com/jhoicas/paytrack-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	List(ctx context.Context) ([]*entity.Company, error)
	// Update devuelve domain.ErrNotFound si la empresa no existe.
	Update(ctx context.Context, company *entity.Company) error
}
