package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/paytrack-api/internal/application/analytics"
	"github.com/jhoicas/paytrack-api/internal/application/auth"
	"github.com/jhoicas/paytrack-api/internal/application/dto"
	"github.com/jhoicas/paytrack-api/internal/application/usecase"
	"github.com/jhoicas/paytrack-api/internal/infrastructure/pdf"
	"github.com/jhoicas/paytrack-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/paytrack-api/internal/interfaces/http"
)

// RouterSuite levanta el router completo sobre SQLite en memoria.
type RouterSuite struct {
	suite.Suite
	db  *sqlite.DB
	app *fiber.App

	adminToken    string
	managerToken  string
	employeeToken string
	companyID     string
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	ctx := context.Background()
	db, err := sqlite.NewDB(ctx, ":memory:")
	s.Require().NoError(err)
	s.db = db

	userRepo := sqlite.NewUserRepository(db)
	companyRepo := sqlite.NewCompanyRepository(db)
	entryRepo := sqlite.NewPaymentEntryRepository(db)
	reminderRepo := sqlite.NewReminderRepository(db)

	authUC := auth.NewAuthUseCase(userRepo,
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer},
		auth.WithBootstrap(auth.BootstrapConfig{LoginID: "admin", Password: "admin123", Name: "Ada"}),
	)

	metrics := apphttp.NewMetrics()
	s.app = fiber.New()
	s.app.Use(apphttp.RequestLogger(zerolog.Nop()))
	s.app.Use(metrics.Middleware())
	s.app.Get("/metrics", metrics.Handler())
	apphttp.Router(s.app, apphttp.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   usecase.NewCompanyUseCase(companyRepo),
		UserUC:      usecase.NewUserUseCase(userRepo, usecase.WithSuppliedLoginIDs()),
		EntryUC:     usecase.NewPaymentEntryUseCase(entryRepo, companyRepo, userRepo),
		ReminderUC:  usecase.NewReminderUseCase(reminderRepo, entryRepo, userRepo),
		AnalyticsUC: analytics.NewUseCase(entryRepo, companyRepo, userRepo, pdf.NewAnalyticsReportGenerator("PayTrack"), "fr"),
	})
}

func (s *RouterSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

// do lanza la petición y devuelve status y cuerpo.
func (s *RouterSuite) do(method, path, token string, body interface{}) (int, []byte) {
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, out
}

func (s *RouterSuite) decode(raw []byte, v interface{}) {
	s.Require().NoError(json.Unmarshal(raw, v), string(raw))
}

func (s *RouterSuite) code(raw []byte) string {
	var e dto.ErrorResponse
	s.decode(raw, &e)
	return e.Code
}

func (s *RouterSuite) login(loginID, password string) string {
	status, raw := s.do(http.MethodPost, "/api/login", "", dto.LoginRequest{LoginID: loginID, Password: password})
	s.Require().Equal(http.StatusOK, status, string(raw))
	var out dto.LoginResponse
	s.decode(raw, &out)
	s.Require().NotEmpty(out.AccessToken)
	return out.AccessToken
}

func (s *RouterSuite) createUser(token, loginID, name, role string) dto.UserResponse {
	status, raw := s.do(http.MethodPost, "/api/users", token, dto.CreateUserRequest{
		LoginID: loginID, Name: name, Role: role, Password: "secreto1",
	})
	s.Require().Equal(http.StatusCreated, status, string(raw))
	var out dto.UserResponse
	s.decode(raw, &out)
	return out
}

func (s *RouterSuite) createEntry(token, invoice, amount string) dto.PaymentEntryResponse {
	status, raw := s.do(http.MethodPost, "/api/payment-entries", token, dto.PaymentEntryRequest{
		CompanyID:     s.companyID,
		ClientName:    "Dupont SARL",
		InvoiceNumber: invoice,
		Amount:        decimal.RequireFromString(amount),
	})
	s.Require().Equal(http.StatusCreated, status, string(raw))
	var out dto.PaymentEntryResponse
	s.decode(raw, &out)
	return out
}

// seed crea admin, empresa, un manager y un empleado con sus tokens.
func (s *RouterSuite) seed() {
	status, _ := s.do(http.MethodPost, "/api/init-admin", "", nil)
	s.Require().Equal(http.StatusCreated, status)
	s.adminToken = s.login("admin", "admin123")

	status, raw := s.do(http.MethodPost, "/api/companies", s.adminToken, dto.CompanyRequest{Name: "Acme"})
	s.Require().Equal(http.StatusCreated, status, string(raw))
	var company dto.CompanyResponse
	s.decode(raw, &company)
	s.companyID = company.ID

	s.createUser(s.adminToken, "MGR000001", "Max", "manager")
	s.createUser(s.adminToken, "EMP000001", "Eva", "employee")
	s.managerToken = s.login("MGR000001", "secreto1")
	s.employeeToken = s.login("EMP000001", "secreto1")
}

func (s *RouterSuite) TestInitAdmin_SoloUnaVez() {
	status, raw := s.do(http.MethodPost, "/api/init-admin", "", nil)
	s.Equal(http.StatusCreated, status)
	var out dto.BootstrapResponse
	s.decode(raw, &out)
	s.Equal("admin", out.LoginID)

	status, raw = s.do(http.MethodPost, "/api/init-admin", "", nil)
	s.Equal(http.StatusConflict, status)
	s.Equal("ADMIN_EXISTS", s.code(raw))
}

func (s *RouterSuite) TestLoginYMe() {
	s.seed()

	status, raw := s.do(http.MethodPost, "/api/login", "", dto.LoginRequest{LoginID: "admin", Password: "incorrecta"})
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("INVALID_CREDENTIALS", s.code(raw))

	status, raw = s.do(http.MethodPost, "/api/login", "", dto.LoginRequest{LoginID: "nadie", Password: "admin123"})
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("INVALID_CREDENTIALS", s.code(raw))

	status, raw = s.do(http.MethodGet, "/api/me", s.managerToken, nil)
	s.Require().Equal(http.StatusOK, status)
	var me dto.UserResponse
	s.decode(raw, &me)
	s.Equal("MGR000001", me.LoginID)
	s.Equal("manager", me.Role)
	s.NotContains(string(raw), "password")

	status, raw = s.do(http.MethodGet, "/api/me", "", nil)
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("MISSING_TOKEN", s.code(raw))

	status, _ = s.do(http.MethodGet, "/api/payment-entries", "no-es-un-jwt", nil)
	s.Equal(http.StatusUnauthorized, status)
}

func (s *RouterSuite) TestCicloDeVidaDeUnaEntrada() {
	s.seed()

	entry := s.createEntry(s.employeeToken, "F-001", "1500.50")
	s.True(entry.Amount.Equal(decimal.RequireFromString("1500.50")))
	s.False(entry.IsValidated)
	s.Require().NotNil(entry.CompanyName)
	s.Equal("Acme", *entry.CompanyName)
	s.Require().NotNil(entry.CreatedByName)
	s.Equal("Eva", *entry.CreatedByName)

	// el empleado no valida
	status, raw := s.do(http.MethodPost, "/api/payment-entries/"+entry.ID+"/validate", s.employeeToken, nil)
	s.Equal(http.StatusForbidden, status)
	s.Equal("FORBIDDEN", s.code(raw))

	status, raw = s.do(http.MethodGet, "/api/payment-entries/pending", s.managerToken, nil)
	s.Require().Equal(http.StatusOK, status)
	var pending []dto.PaymentEntryResponse
	s.decode(raw, &pending)
	s.Require().Len(pending, 1)
	s.Equal(entry.ID, pending[0].ID)

	status, raw = s.do(http.MethodPost, "/api/payment-entries/"+entry.ID+"/validate", s.managerToken, nil)
	s.Require().Equal(http.StatusOK, status, string(raw))
	var validated dto.PaymentEntryResponse
	s.decode(raw, &validated)
	s.True(validated.IsValidated)
	s.NotNil(validated.ValidatedAt)
	s.Require().NotNil(validated.ValidatedByName)
	s.Equal("Max", *validated.ValidatedByName)

	status, raw = s.do(http.MethodPost, "/api/payment-entries/"+entry.ID+"/validate", s.adminToken, nil)
	s.Equal(http.StatusBadRequest, status)
	s.Equal("ALREADY_VALIDATED", s.code(raw))

	// validada: ni el creador la edita ni la borra
	status, raw = s.do(http.MethodDelete, "/api/payment-entries/"+entry.ID, s.employeeToken, nil)
	s.Equal(http.StatusBadRequest, status)
	s.Equal("ALREADY_VALIDATED", s.code(raw))

	status, _ = s.do(http.MethodPut, "/api/payment-entries/"+entry.ID, s.employeeToken, dto.PaymentEntryRequest{
		CompanyID: s.companyID, ClientName: "Otro", InvoiceNumber: "F-001", Amount: decimal.NewFromInt(1),
	})
	s.Equal(http.StatusBadRequest, status)

	status, raw = s.do(http.MethodGet, "/api/payment-entries/pending", s.managerToken, nil)
	s.Require().Equal(http.StatusOK, status)
	s.decode(raw, &pending)
	s.Empty(pending)

	status, raw = s.do(http.MethodPost, "/api/payment-entries/no-existe/validate", s.managerToken, nil)
	s.Equal(http.StatusNotFound, status)
	s.Equal("NOT_FOUND", s.code(raw))
}

func (s *RouterSuite) TestEdicionYBorradoPendiente() {
	s.seed()
	entry := s.createEntry(s.employeeToken, "F-010", "20")

	status, raw := s.do(http.MethodPut, "/api/payment-entries/"+entry.ID, s.employeeToken, dto.PaymentEntryRequest{
		CompanyID: s.companyID, ClientName: "Martin", InvoiceNumber: "F-010b", Amount: decimal.RequireFromString("25.75"),
	})
	s.Require().Equal(http.StatusOK, status, string(raw))
	var updated dto.PaymentEntryResponse
	s.decode(raw, &updated)
	s.Equal("Martin", updated.ClientName)
	s.True(updated.Amount.Equal(decimal.RequireFromString("25.75")))

	// ni el admin modifica entradas ajenas
	status, _ = s.do(http.MethodDelete, "/api/payment-entries/"+entry.ID, s.adminToken, nil)
	s.Equal(http.StatusForbidden, status)

	status, raw = s.do(http.MethodPost, "/api/payment-entries", s.employeeToken, dto.PaymentEntryRequest{
		CompanyID: s.companyID, ClientName: "X", InvoiceNumber: "F-011", Amount: decimal.NewFromInt(-1),
	})
	s.Equal(http.StatusBadRequest, status)
	s.Equal("VALIDATION", s.code(raw))

	status, raw = s.do(http.MethodDelete, "/api/payment-entries/"+entry.ID, s.employeeToken, nil)
	s.Equal(http.StatusOK, status, string(raw))

	status, _ = s.do(http.MethodGet, "/api/payment-entries/"+entry.ID, s.employeeToken, nil)
	s.Equal(http.StatusNotFound, status)
}

func (s *RouterSuite) TestVisibilidadPorRol() {
	s.seed()
	s.createUser(s.adminToken, "EMP000002", "Léa", "employee")
	otherToken := s.login("EMP000002", "secreto1")

	mine := s.createEntry(s.employeeToken, "F-100", "10")
	s.createEntry(s.employeeToken, "F-101", "11")
	s.createEntry(otherToken, "F-200", "12")

	status, _ := s.do(http.MethodPost, "/api/payment-entries/"+mine.ID+"/validate", s.managerToken, nil)
	s.Require().Equal(http.StatusOK, status)

	var list []dto.PaymentEntryResponse
	status, raw := s.do(http.MethodGet, "/api/payment-entries", s.employeeToken, nil)
	s.Require().Equal(http.StatusOK, status)
	s.decode(raw, &list)
	s.Len(list, 2, "el empleado solo ve las suyas")

	status, raw = s.do(http.MethodGet, "/api/payment-entries?validated_only=true", s.employeeToken, nil)
	s.Require().Equal(http.StatusOK, status)
	s.decode(raw, &list)
	s.Require().Len(list, 1)
	s.Equal(mine.ID, list[0].ID)

	status, raw = s.do(http.MethodGet, "/api/payment-entries", s.managerToken, nil)
	s.Require().Equal(http.StatusOK, status)
	s.decode(raw, &list)
	s.Len(list, 3)

	status, _ = s.do(http.MethodGet, "/api/payment-entries/"+mine.ID, otherToken, nil)
	s.Equal(http.StatusForbidden, status)

	status, _ = s.do(http.MethodGet, "/api/payment-entries/pending", s.employeeToken, nil)
	s.Equal(http.StatusForbidden, status)
}

func (s *RouterSuite) TestUsuariosPorRol() {
	s.seed()

	status, raw := s.do(http.MethodPost, "/api/users", s.managerToken, dto.CreateUserRequest{
		LoginID: "MGR000002", Name: "Otro", Role: "manager", Password: "secreto1",
	})
	s.Equal(http.StatusForbidden, status)
	s.Equal("FORBIDDEN", s.code(raw))

	s.createUser(s.managerToken, "EMP000003", "Noé", "employee")

	status, raw = s.do(http.MethodPost, "/api/users", s.adminToken, dto.CreateUserRequest{
		LoginID: "EMP000003", Name: "Duplicado", Role: "employee", Password: "secreto1",
	})
	s.Equal(http.StatusConflict, status)
	s.Equal("CONFLICT", s.code(raw))

	status, raw = s.do(http.MethodPost, "/api/users", s.adminToken, dto.CreateUserRequest{
		LoginID: "EMP000004", Name: "Corto", Role: "employee", Password: "123",
	})
	s.Equal(http.StatusBadRequest, status)
	s.Equal("VALIDATION", s.code(raw))

	var users []dto.UserResponse
	status, raw = s.do(http.MethodGet, "/api/users", s.managerToken, nil)
	s.Require().Equal(http.StatusOK, status)
	s.decode(raw, &users)
	s.Len(users, 2)
	for _, u := range users {
		s.Equal("employee", u.Role)
	}

	status, raw = s.do(http.MethodGet, "/api/users", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, status)
	s.decode(raw, &users)
	s.Len(users, 4)

	status, _ = s.do(http.MethodGet, "/api/users", s.employeeToken, nil)
	s.Equal(http.StatusForbidden, status)

	// cambio de rol por el admin: el siguiente request ya usa el rol nuevo
	employee := users[0]
	for _, u := range users {
		if u.LoginID == "EMP000001" {
			employee = u
		}
	}
	newRole := "manager"
	status, raw = s.do(http.MethodPut, "/api/users/"+employee.ID, s.adminToken, dto.UpdateUserRequest{Role: &newRole})
	s.Require().Equal(http.StatusOK, status, string(raw))

	status, _ = s.do(http.MethodGet, "/api/payment-entries/pending", s.employeeToken, nil)
	s.Equal(http.StatusOK, status)

	status, _ = s.do(http.MethodPut, "/api/users/"+employee.ID, s.managerToken, dto.UpdateUserRequest{Role: &newRole})
	s.Equal(http.StatusForbidden, status)
}

func (s *RouterSuite) TestUltimoAdminNoSeDegrada() {
	s.seed()
	status, raw := s.do(http.MethodGet, "/api/me", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, status)
	var me dto.UserResponse
	s.decode(raw, &me)

	demote := "employee"
	status, raw = s.do(http.MethodPut, "/api/users/"+me.ID, s.adminToken, dto.UpdateUserRequest{Role: &demote})
	s.Equal(http.StatusConflict, status, string(raw))
	s.Equal("CONFLICT", s.code(raw))

	status, raw = s.do(http.MethodPost, "/api/init-admin", "", nil)
	s.Equal(http.StatusConflict, status)
	s.Equal("ADMIN_EXISTS", s.code(raw))
}

func (s *RouterSuite) TestMontoFueraDeRango() {
	s.seed()
	for _, amount := range []string{"1.005", "10000000000000000"} {
		status, raw := s.do(http.MethodPost, "/api/payment-entries", s.employeeToken, dto.PaymentEntryRequest{
			CompanyID: s.companyID, ClientName: "X", InvoiceNumber: "F-099", Amount: decimal.RequireFromString(amount),
		})
		s.Equal(http.StatusBadRequest, status, amount)
		s.Equal("VALIDATION", s.code(raw))
	}
}

func (s *RouterSuite) TestEmpresas() {
	s.seed()

	status, _ := s.do(http.MethodPost, "/api/companies", s.employeeToken, dto.CompanyRequest{Name: "Nope"})
	s.Equal(http.StatusForbidden, status)

	status, raw := s.do(http.MethodPut, "/api/companies/"+s.companyID, s.managerToken, dto.CompanyRequest{Name: "Acme SA"})
	s.Require().Equal(http.StatusOK, status, string(raw))

	status, _ = s.do(http.MethodPut, "/api/companies/no-existe", s.managerToken, dto.CompanyRequest{Name: "X"})
	s.Equal(http.StatusNotFound, status)

	var companies []dto.CompanyResponse
	status, raw = s.do(http.MethodGet, "/api/companies", s.employeeToken, nil)
	s.Require().Equal(http.StatusOK, status)
	s.decode(raw, &companies)
	s.Require().Len(companies, 1)
	s.Equal("Acme SA", companies[0].Name)
}

func (s *RouterSuite) TestRecordatorios() {
	s.seed()
	entry := s.createEntry(s.employeeToken, "F-300", "99.99")

	note := "  llamar al cliente  "
	status, raw := s.do(http.MethodPost, "/api/reminders", s.managerToken, dto.CreateReminderRequest{PaymentEntryID: entry.ID, Note: &note})
	s.Require().Equal(http.StatusCreated, status, string(raw))
	var reminder dto.ReminderResponse
	s.decode(raw, &reminder)
	s.Require().NotNil(reminder.Note)
	s.Equal("llamar al cliente", *reminder.Note)

	status, _ = s.do(http.MethodPost, "/api/reminders", s.employeeToken, dto.CreateReminderRequest{PaymentEntryID: entry.ID})
	s.Equal(http.StatusForbidden, status)

	status, raw = s.do(http.MethodPost, "/api/reminders", s.managerToken, dto.CreateReminderRequest{PaymentEntryID: "no-existe"})
	s.Equal(http.StatusNotFound, status)
	s.Equal("NOT_FOUND", s.code(raw))

	var reminders []dto.ReminderResponse
	status, raw = s.do(http.MethodGet, "/api/reminders/"+entry.ID, s.adminToken, nil)
	s.Require().Equal(http.StatusOK, status)
	s.decode(raw, &reminders)
	s.Require().Len(reminders, 1)
	s.Require().NotNil(reminders[0].TriggeredByName)
	s.Equal("Max", *reminders[0].TriggeredByName)

	status, _ = s.do(http.MethodPost, "/api/payment-entries/"+entry.ID+"/validate", s.managerToken, nil)
	s.Require().Equal(http.StatusOK, status)

	status, raw = s.do(http.MethodPost, "/api/reminders", s.managerToken, dto.CreateReminderRequest{PaymentEntryID: entry.ID})
	s.Equal(http.StatusBadRequest, status)
	s.Equal("INVALID_STATE", s.code(raw))
}

func (s *RouterSuite) TestAnaliticaSoloAdmin() {
	s.seed()
	first := s.createEntry(s.employeeToken, "F-400", "1500.50")
	s.createEntry(s.employeeToken, "F-401", "100")
	status, _ := s.do(http.MethodPost, "/api/payment-entries/"+first.ID+"/validate", s.managerToken, nil)
	s.Require().Equal(http.StatusOK, status)

	status, raw := s.do(http.MethodGet, "/api/analytics", s.managerToken, nil)
	s.Equal(http.StatusForbidden, status)
	s.Equal("FORBIDDEN", s.code(raw))

	status, raw = s.do(http.MethodGet, "/api/analytics", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, status, string(raw))
	var report dto.AnalyticsDTO
	s.decode(raw, &report)
	s.Equal(2, report.TotalEntries)
	s.Equal(1, report.ValidatedEntries)
	s.Equal(1, report.PendingEntries)
	s.True(report.TotalAmount.Equal(decimal.RequireFromString("1600.50")))
	s.True(report.ValidatedAmount.Equal(decimal.RequireFromString("1500.50")))
	s.Require().Len(report.ByCompany, 1)
	s.Equal("Acme", report.ByCompany[0].Name)
	s.Require().Len(report.ByEmployee, 1)
	s.Equal("Eva", report.ByEmployee[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/report.pdf", nil)
	req.Header.Set("Authorization", "Bearer "+s.adminToken)
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.True(bytes.HasPrefix(body, []byte("%PDF")))
}

func (s *RouterSuite) TestMetricas() {
	s.do(http.MethodPost, "/api/init-admin", "", nil)

	status, raw := s.do(http.MethodGet, "/metrics", "", nil)
	s.Require().Equal(http.StatusOK, status)
	s.Contains(string(raw), "paytrack_http_requests_total")
	s.Contains(string(raw), `route="/api/init-admin"`)
}
