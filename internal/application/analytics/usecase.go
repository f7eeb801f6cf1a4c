// Package analytics contiene la vista agregada de entradas de pago (solo admin)
// y su exportación en PDF.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/paytrack-api/internal/application/dto"
	"github.com/jhoicas/paytrack-api/internal/domain/entity"
	"github.com/jhoicas/paytrack-api/internal/domain/policy"
	"github.com/jhoicas/paytrack-api/internal/domain/repository"
)

// ReportRenderer puerto para exportar la analítica como documento (PDF).
// La implementación vive en infrastructure.
type ReportRenderer interface {
	RenderAnalytics(ctx context.Context, report *dto.AnalyticsDTO, generatedAt time.Time) ([]byte, error)
}

// UseCase recalcula la analítica en cada llamada; no persiste nada.
//
// Fuentes: entradas, empresas y usuarios (lecturas en paralelo).
type UseCase struct {
	entryRepo   repository.PaymentEntryRepository
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
	renderer    ReportRenderer
	locale      language.Tag
	now         func() time.Time
}

// NewUseCase construye el caso de uso. locale es una etiqueta BCP 47 ("fr", "es")
// usada para ordenar nombres; si no se reconoce se usa el orden raíz.
func NewUseCase(
	entryRepo repository.PaymentEntryRepository,
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	renderer ReportRenderer,
	locale string,
) *UseCase {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	return &UseCase{
		entryRepo:   entryRepo,
		companyRepo: companyRepo,
		userRepo:    userRepo,
		renderer:    renderer,
		locale:      tag,
		now:         time.Now,
	}
}

// Summary devuelve totales y agrupaciones por empresa, empleado y mes.
func (uc *UseCase) Summary(ctx context.Context, actor *entity.User) (*dto.AnalyticsDTO, error) {
	if err := policy.Authorize(actor.Role, policy.ViewAnalytics); err != nil {
		return nil, err
	}

	type entriesResult struct {
		list []*entity.PaymentEntry
		err  error
	}
	type namesResult struct {
		names map[string]string
		err   error
	}
	entriesCh := make(chan entriesResult, 1)
	companiesCh := make(chan namesResult, 1)
	usersCh := make(chan namesResult, 1)

	go func() {
		list, err := uc.entryRepo.List(ctx, repository.PaymentEntryFilter{})
		entriesCh <- entriesResult{list, err}
	}()
	go func() {
		list, err := uc.companyRepo.List(ctx)
		names := make(map[string]string, len(list))
		for _, c := range list {
			names[c.ID] = c.Name
		}
		companiesCh <- namesResult{names, err}
	}()
	go func() {
		list, err := uc.userRepo.List(ctx, repository.UserFilter{})
		names := make(map[string]string, len(list))
		for _, u := range list {
			names[u.ID] = u.Name
		}
		usersCh <- namesResult{names, err}
	}()

	entries := <-entriesCh
	companies := <-companiesCh
	users := <-usersCh

	if entries.err != nil {
		return nil, fmt.Errorf("analytics: entradas: %w", entries.err)
	}
	if companies.err != nil {
		return nil, fmt.Errorf("analytics: empresas: %w", companies.err)
	}
	if users.err != nil {
		return nil, fmt.Errorf("analytics: usuarios: %w", users.err)
	}

	// Un Collator no es seguro entre goroutines: uno por llamada.
	col := collate.New(uc.locale, collate.IgnoreCase)
	return Aggregate(entries.list, MapLookup(companies.names), MapLookup(users.names), col), nil
}

// ReportPDF genera el informe PDF con los mismos datos que Summary.
func (uc *UseCase) ReportPDF(ctx context.Context, actor *entity.User) ([]byte, error) {
	report, err := uc.Summary(ctx, actor)
	if err != nil {
		return nil, err
	}
	if uc.renderer == nil {
		return nil, fmt.Errorf("analytics: sin generador de informes configurado")
	}
	return uc.renderer.RenderAnalytics(ctx, report, uc.now().UTC())
}
