package usecase_test

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/paytrack-api/internal/application/dto"
	"github.com/jhoicas/paytrack-api/internal/application/usecase"
	"github.com/jhoicas/paytrack-api/internal/domain"
	"github.com/jhoicas/paytrack-api/internal/domain/entity"
)

func (s *UseCaseSuite) entryUC() *usecase.PaymentEntryUseCase {
	return usecase.NewPaymentEntryUseCase(s.entries, s.companies, s.users)
}

func (s *UseCaseSuite) TestEntry_CreateYValidate() {
	uc := s.entryUC()

	created, err := uc.Create(s.ctx, s.employee, s.entryRequest("F-001", "1500.50"))
	s.Require().NoError(err)
	s.True(created.Amount.Equal(decimal.RequireFromString("1500.50")))
	s.False(created.IsValidated)
	s.Nil(created.ValidatedAt)
	s.Nil(created.ValidatedBy)
	s.Equal(s.employee.ID, created.CreatedBy)

	_, err = uc.Validate(s.ctx, s.employee, created.ID)
	s.ErrorIs(err, domain.ErrForbidden)

	validated, err := uc.Validate(s.ctx, s.manager, created.ID)
	s.Require().NoError(err)
	s.True(validated.IsValidated)
	s.Require().NotNil(validated.ValidatedBy)
	s.Equal(s.manager.ID, *validated.ValidatedBy)
	s.Require().NotNil(validated.ValidatedByName)
	s.Equal("Max", *validated.ValidatedByName)

	_, err = uc.Validate(s.ctx, s.admin, created.ID)
	s.ErrorIs(err, domain.ErrAlreadyValidated)

	_, err = uc.Validate(s.ctx, s.admin, "no-existe")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *UseCaseSuite) TestEntry_ValidacionConcurrente() {
	uc := s.entryUC()
	created, err := uc.Create(s.ctx, s.employee, s.entryRequest("F-002", "10"))
	s.Require().NoError(err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		already int
	)
	for _, validator := range []*entity.User{s.admin, s.manager, s.admin, s.manager} {
		validator := validator
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Validate(s.ctx, validator, created.ID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				success++
			} else if s.ErrorIs(err, domain.ErrAlreadyValidated) {
				already++
			}
		}()
	}
	wg.Wait()
	s.Equal(1, success, "una sola validación gana")
	s.Equal(3, already)
}

func (s *UseCaseSuite) TestEntry_CamposRequeridos() {
	uc := s.entryUC()

	cases := []dto.PaymentEntryRequest{
		{ClientName: "A", InvoiceNumber: "F", Amount: decimal.NewFromInt(1)},
		{CompanyID: s.companyID, InvoiceNumber: "F", Amount: decimal.NewFromInt(1)},
		{CompanyID: s.companyID, ClientName: "A", Amount: decimal.NewFromInt(1)},
		{CompanyID: s.companyID, ClientName: "A", InvoiceNumber: "F", Amount: decimal.NewFromInt(-5)},
	}
	for _, in := range cases {
		_, err := uc.Create(s.ctx, s.employee, in)
		s.ErrorIs(err, domain.ErrInvalidInput)
	}

	zero, err := uc.Create(s.ctx, s.employee, s.entryRequest("F-000", "0"))
	s.Require().NoError(err, "monto cero es válido")
	s.True(zero.Amount.IsZero())
}

func (s *UseCaseSuite) TestEntry_LimitesDelMonto() {
	uc := s.entryUC()

	for _, amount := range []string{"1.005", "0.001", "10000000000000000", "123456789012345678901234.5"} {
		_, err := uc.Create(s.ctx, s.employee, s.entryRequest("F-LIM", amount))
		s.ErrorIs(err, domain.ErrInvalidInput, amount)
	}

	for _, amount := range []string{"9999999999999999.99", "1.50", "1.500", "0.01"} {
		created, err := uc.Create(s.ctx, s.employee, s.entryRequest("F-OK", amount))
		s.Require().NoError(err, amount)
		s.True(created.Amount.Equal(decimal.RequireFromString(amount)), amount)

		stored, err := s.entries.GetByID(s.ctx, created.ID)
		s.Require().NoError(err)
		s.True(stored.Amount.Equal(created.Amount), "lo guardado coincide con lo devuelto: %s", amount)
	}

	created, err := uc.Create(s.ctx, s.employee, s.entryRequest("F-UPD", "10"))
	s.Require().NoError(err)
	_, err = uc.Update(s.ctx, s.employee, created.ID, s.entryRequest("F-UPD", "10.125"))
	s.ErrorIs(err, domain.ErrInvalidInput)
}

func (s *UseCaseSuite) TestEntry_EmpresaColgante() {
	uc := s.entryUC()
	in := s.entryRequest("F-003", "5")
	in.CompanyID = "c-inexistente"

	created, err := uc.Create(s.ctx, s.employee, in)
	s.Require().NoError(err, "la empresa no se verifica al crear")
	s.Nil(created.CompanyName)
}

func (s *UseCaseSuite) TestEntry_Visibilidad() {
	uc := s.entryUC()
	mine, err := uc.Create(s.ctx, s.employee, s.entryRequest("F-010", "1"))
	s.Require().NoError(err)
	_, err = uc.Create(s.ctx, s.employee2, s.entryRequest("F-011", "2"))
	s.Require().NoError(err)
	_, err = uc.Create(s.ctx, s.manager, s.entryRequest("F-012", "3"))
	s.Require().NoError(err)

	own, err := uc.List(s.ctx, s.employee, false)
	s.Require().NoError(err)
	s.Require().Len(own, 1)
	s.Equal(mine.ID, own[0].ID)

	all, err := uc.List(s.ctx, s.manager, false)
	s.Require().NoError(err)
	s.Len(all, 3)
	s.Equal("F-012", all[0].InvoiceNumber, "más recientes primero")

	_, err = uc.Validate(s.ctx, s.admin, mine.ID)
	s.Require().NoError(err)

	validated, err := uc.List(s.ctx, s.admin, true)
	s.Require().NoError(err)
	s.Require().Len(validated, 1)
	s.Equal(mine.ID, validated[0].ID)

	pending, err := uc.ListPending(s.ctx, s.manager)
	s.Require().NoError(err)
	s.Len(pending, 2)
	for _, e := range pending {
		s.False(e.IsValidated)
	}

	_, err = uc.ListPending(s.ctx, s.employee)
	s.ErrorIs(err, domain.ErrForbidden)

	_, err = uc.Get(s.ctx, s.employee2, mine.ID)
	s.ErrorIs(err, domain.ErrForbidden)

	got, err := uc.Get(s.ctx, s.manager, mine.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.CreatedByName)
	s.Equal("Eva", *got.CreatedByName)

	_, err = uc.Get(s.ctx, s.admin, "no-existe")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *UseCaseSuite) TestEntry_UpdateYDelete() {
	uc := s.entryUC()
	created, err := uc.Create(s.ctx, s.employee, s.entryRequest("F-020", "100"))
	s.Require().NoError(err)

	_, err = uc.Update(s.ctx, s.employee2, created.ID, s.entryRequest("F-020", "1"))
	s.ErrorIs(err, domain.ErrForbidden)
	_, err = uc.Update(s.ctx, s.admin, created.ID, s.entryRequest("F-020", "1"))
	s.ErrorIs(err, domain.ErrForbidden)

	updated, err := uc.Update(s.ctx, s.employee, created.ID, s.entryRequest("F-020b", "99.99"))
	s.Require().NoError(err)
	s.Equal("F-020b", updated.InvoiceNumber)
	s.True(updated.Amount.Equal(decimal.RequireFromString("99.99")))
	s.Equal(created.CreatedAt.Unix(), updated.CreatedAt.Unix(), "created_at no cambia")

	_, err = uc.Update(s.ctx, s.employee, created.ID, s.entryRequest("F-020", "-1"))
	s.ErrorIs(err, domain.ErrInvalidInput)

	_, err = uc.Validate(s.ctx, s.manager, created.ID)
	s.Require().NoError(err)

	_, err = uc.Update(s.ctx, s.employee, created.ID, s.entryRequest("F-020", "1"))
	s.ErrorIs(err, domain.ErrAlreadyValidated)
	s.ErrorIs(uc.Delete(s.ctx, s.employee, created.ID), domain.ErrAlreadyValidated)

	other, err := uc.Create(s.ctx, s.employee, s.entryRequest("F-021", "1"))
	s.Require().NoError(err)
	s.NoError(uc.Delete(s.ctx, s.employee, other.ID))
	s.ErrorIs(uc.Delete(s.ctx, s.employee, other.ID), domain.ErrNotFound)
}
