package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/paytrack-api/internal/application/dto"
	"github.com/jhoicas/paytrack-api/internal/domain"
	"github.com/jhoicas/paytrack-api/internal/domain/entity"
	"github.com/jhoicas/paytrack-api/internal/domain/policy"
	"github.com/jhoicas/paytrack-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo repository.CompanyRepository
	now  func() time.Time
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, now: time.Now}
}

// Create crea una nueva empresa (admin o manager).
func (uc *CompanyUseCase) Create(ctx context.Context, actor *entity.User, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	if err := policy.Authorize(actor.Role, policy.CreateCompany); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	now := uc.now().UTC()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// List devuelve todas las empresas; cualquier rol autenticado puede verlas.
func (uc *CompanyUseCase) List(ctx context.Context, actor *entity.User) ([]dto.CompanyResponse, error) {
	if err := policy.Authorize(actor.Role, policy.ListCompanies); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return items, nil
}

// Update renombra una empresa existente.
func (uc *CompanyUseCase) Update(ctx context.Context, actor *entity.User, id string, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	if err := policy.Authorize(actor.Role, policy.UpdateCompany); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	company.Name = name
	company.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}
