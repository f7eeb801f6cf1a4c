package usecase_test

import (
	"github.com/jhoicas/paytrack-api/internal/application/dto"
	"github.com/jhoicas/paytrack-api/internal/application/usecase"
	"github.com/jhoicas/paytrack-api/internal/domain"
)

func (s *UseCaseSuite) TestCompanies() {
	uc := usecase.NewCompanyUseCase(s.companies)

	created, err := uc.Create(s.ctx, s.manager, dto.CompanyRequest{Name: "  Zénith  "})
	s.Require().NoError(err)
	s.Equal("Zénith", created.Name)

	_, err = uc.Create(s.ctx, s.employee, dto.CompanyRequest{Name: "X"})
	s.ErrorIs(err, domain.ErrForbidden)

	_, err = uc.Create(s.ctx, s.admin, dto.CompanyRequest{Name: " "})
	s.ErrorIs(err, domain.ErrInvalidInput)

	renamed, err := uc.Update(s.ctx, s.admin, created.ID, dto.CompanyRequest{Name: "Zénith SA"})
	s.Require().NoError(err)
	s.Equal("Zénith SA", renamed.Name)

	_, err = uc.Update(s.ctx, s.admin, "no-existe", dto.CompanyRequest{Name: "X"})
	s.ErrorIs(err, domain.ErrNotFound)

	list, err := uc.List(s.ctx, s.employee)
	s.Require().NoError(err)
	s.Len(list, 2)
}
