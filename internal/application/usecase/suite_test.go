package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/paytrack-api/internal/application/dto"
	"github.com/jhoicas/paytrack-api/internal/domain/entity"
	"github.com/jhoicas/paytrack-api/internal/infrastructure/sqlite"
)

// UseCaseSuite casos de uso sobre SQLite en memoria con cuatro actores sembrados.
type UseCaseSuite struct {
	suite.Suite
	ctx context.Context
	db  *sqlite.DB

	users     *sqlite.UserRepo
	companies *sqlite.CompanyRepo
	entries   *sqlite.PaymentEntryRepo
	reminders *sqlite.ReminderRepo

	admin, manager, employee, employee2 *entity.User
	companyID                           string
}

func TestUseCaseSuite(t *testing.T) {
	suite.Run(t, new(UseCaseSuite))
}

func (s *UseCaseSuite) SetupTest() {
	s.ctx = context.Background()
	db, err := sqlite.NewDB(s.ctx, ":memory:")
	s.Require().NoError(err)
	s.db = db
	s.users = sqlite.NewUserRepository(db)
	s.companies = sqlite.NewCompanyRepository(db)
	s.entries = sqlite.NewPaymentEntryRepository(db)
	s.reminders = sqlite.NewReminderRepository(db)

	s.admin = s.seedUser("u-admin", "ADM000001", "Ada", entity.RoleAdmin)
	s.manager = s.seedUser("u-manager", "MGR000001", "Max", entity.RoleManager)
	s.employee = s.seedUser("u-emp1", "EMP000001", "Eva", entity.RoleEmployee)
	s.employee2 = s.seedUser("u-emp2", "EMP000002", "Léo", entity.RoleEmployee)

	now := time.Now().UTC()
	company := &entity.Company{ID: "c-acme", Name: "Acme", CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(s.companies.Create(s.ctx, company))
	s.companyID = company.ID
}

func (s *UseCaseSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

// seedUser inserta sin pasar por el caso de uso; el hash no importa aquí.
func (s *UseCaseSuite) seedUser(id, loginID, name string, role entity.Role) *entity.User {
	now := time.Now().UTC()
	u := &entity.User{
		ID:           id,
		LoginID:      loginID,
		Name:         name,
		Role:         role,
		PasswordHash: "x",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.Require().NoError(s.users.Create(s.ctx, u))
	return u
}

func (s *UseCaseSuite) entryRequest(invoice, amount string) dto.PaymentEntryRequest {
	return dto.PaymentEntryRequest{
		CompanyID:     s.companyID,
		ClientName:    "Dupont SARL",
		InvoiceNumber: invoice,
		Amount:        decimal.RequireFromString(amount),
	}
}
