package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/paytrack-api/internal/application/analytics"
	"github.com/jhoicas/paytrack-api/internal/application/auth"
	"github.com/jhoicas/paytrack-api/internal/application/usecase"
	"github.com/jhoicas/paytrack-api/internal/domain/policy"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	UserUC      *usecase.UserUseCase
	EntryUC     *usecase.PaymentEntryUseCase
	ReminderUC  *usecase.ReminderUseCase
	AnalyticsUC *analytics.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Públicas
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/init-admin", authHandler.InitAdmin)
	api.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.AuthUC))
	protected.Get("/me", authHandler.Me)

	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", RequirePermission(policy.CreateCompany), companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Put("/:id", RequirePermission(policy.UpdateCompany), companyHandler.Update)

	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", RequirePermission(policy.CreateUser), userHandler.Create)
	users.Get("/", RequirePermission(policy.ListUsers), userHandler.List)
	users.Put("/:id", RequirePermission(policy.UpdateUser), userHandler.Update)

	// /pending antes de /:id
	entries := protected.Group("/payment-entries")
	entryHandler := NewPaymentEntryHandler(deps.EntryUC)
	entries.Post("/", entryHandler.Create)
	entries.Get("/", entryHandler.List)
	entries.Get("/pending", RequirePermission(policy.ListPendingEntries), entryHandler.ListPending)
	entries.Get("/:id", entryHandler.GetByID)
	entries.Put("/:id", entryHandler.Update)
	entries.Delete("/:id", entryHandler.Delete)
	entries.Post("/:id/validate", RequirePermission(policy.ValidateEntry), entryHandler.Validate)

	reminders := protected.Group("/reminders")
	reminderHandler := NewReminderHandler(deps.ReminderUC)
	reminders.Post("/", RequirePermission(policy.CreateReminder), reminderHandler.Create)
	reminders.Get("/:entry_id", RequirePermission(policy.ListReminders), reminderHandler.ListByEntry)

	analyticsGroup := protected.Group("/analytics", RequirePermission(policy.ViewAnalytics))
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analyticsGroup.Get("/", analyticsHandler.Summary)
	analyticsGroup.Get("/report.pdf", analyticsHandler.ReportPDF)
}
