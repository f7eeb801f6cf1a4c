package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/paytrack-api/internal/application/dto"
	"github.com/jhoicas/paytrack-api/internal/domain"
	"github.com/jhoicas/paytrack-api/internal/domain/entity"
	"github.com/jhoicas/paytrack-api/internal/domain/policy"
	"github.com/jhoicas/paytrack-api/internal/domain/repository"
)

// PaymentEntryUseCase ciclo de vida de las entradas de pago: pendiente → validada.
type PaymentEntryUseCase struct {
	entryRepo   repository.PaymentEntryRepository
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
	now         func() time.Time
}

// NewPaymentEntryUseCase construye el caso de uso. Empresas y usuarios solo se leen
// para enriquecer las respuestas con nombres.
func NewPaymentEntryUseCase(
	entryRepo repository.PaymentEntryRepository,
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
) *PaymentEntryUseCase {
	return &PaymentEntryUseCase{
		entryRepo:   entryRepo,
		companyRepo: companyRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// Create registra una entrada pendiente a nombre del actor.
// La empresa no se verifica: una referencia colgante se guarda tal cual.
func (uc *PaymentEntryUseCase) Create(ctx context.Context, actor *entity.User, in dto.PaymentEntryRequest) (*dto.PaymentEntryResponse, error) {
	if err := policy.Authorize(actor.Role, policy.CreateEntry); err != nil {
		return nil, err
	}
	fields, err := validateEntryFields(in)
	if err != nil {
		return nil, err
	}
	entry := &entity.PaymentEntry{
		ID:        uuid.New().String(),
		CreatedBy: actor.ID,
		CreatedAt: uc.now().UTC(),
	}
	entry.Apply(fields)
	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return uc.enrich(ctx, newNameCache(), entry)
}

// List devuelve las entradas visibles para el actor, más recientes primero.
// validatedOnly restringe el resultado al subconjunto validado.
func (uc *PaymentEntryUseCase) List(ctx context.Context, actor *entity.User, validatedOnly bool) ([]dto.PaymentEntryResponse, error) {
	if err := policy.Authorize(actor.Role, policy.ListEntries); err != nil {
		return nil, err
	}
	var filter repository.PaymentEntryFilter
	switch policy.EntryScope(actor.Role) {
	case policy.ScopeAll:
	case policy.ScopeOwn:
		id := actor.ID
		filter.CreatedBy = &id
	default:
		return nil, domain.ErrForbidden
	}
	if validatedOnly {
		v := true
		filter.Validated = &v
	}
	return uc.list(ctx, filter)
}

// ListPending cola de entradas por validar (admin y manager).
func (uc *PaymentEntryUseCase) ListPending(ctx context.Context, actor *entity.User) ([]dto.PaymentEntryResponse, error) {
	if err := policy.Authorize(actor.Role, policy.ListPendingEntries); err != nil {
		return nil, err
	}
	pending := false
	return uc.list(ctx, repository.PaymentEntryFilter{Validated: &pending})
}

// Get devuelve una entrada si el actor puede verla.
func (uc *PaymentEntryUseCase) Get(ctx context.Context, actor *entity.User, id string) (*dto.PaymentEntryResponse, error) {
	if err := policy.Authorize(actor.Role, policy.ListEntries); err != nil {
		return nil, err
	}
	entry, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	if !policy.CanView(actor, entry) {
		return nil, fmt.Errorf("%w: la entrada pertenece a otro usuario", domain.ErrForbidden)
	}
	return uc.enrich(ctx, newNameCache(), entry)
}

// Update edita una entrada pendiente. Solo su creador puede hacerlo.
func (uc *PaymentEntryUseCase) Update(ctx context.Context, actor *entity.User, id string, in dto.PaymentEntryRequest) (*dto.PaymentEntryResponse, error) {
	entry, err := uc.mutable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	fields, err := validateEntryFields(in)
	if err != nil {
		return nil, err
	}
	entry.Apply(fields)

	ok, err := uc.entryRepo.UpdatePending(ctx, entry)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, uc.resolveMiss(ctx, id)
	}
	return uc.enrich(ctx, newNameCache(), entry)
}

// Delete elimina una entrada pendiente. Mismas reglas que Update.
func (uc *PaymentEntryUseCase) Delete(ctx context.Context, actor *entity.User, id string) error {
	if _, err := uc.mutable(ctx, actor, id); err != nil {
		return err
	}
	ok, err := uc.entryRepo.DeletePending(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return uc.resolveMiss(ctx, id)
	}
	return nil
}

// Validate marca la entrada como validada por el actor. Una entrada solo se valida una vez:
// la escritura está filtrada por is_validated = false, así que de dos validaciones
// concurrentes exactamente una gana.
func (uc *PaymentEntryUseCase) Validate(ctx context.Context, actor *entity.User, id string) (*dto.PaymentEntryResponse, error) {
	if err := policy.Authorize(actor.Role, policy.ValidateEntry); err != nil {
		return nil, err
	}
	ok, err := uc.entryRepo.MarkValidated(ctx, id, actor.ID, uc.now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, uc.resolveMiss(ctx, id)
	}
	entry, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	return uc.enrich(ctx, newNameCache(), entry)
}

// mutable carga la entrada y aplica las reglas de edición: existe, el actor es el
// creador y sigue pendiente.
func (uc *PaymentEntryUseCase) mutable(ctx context.Context, actor *entity.User, id string) (*entity.PaymentEntry, error) {
	entry, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	if err := policy.CanMutateEntry(actor, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// resolveMiss traduce una escritura condicional sin efecto: la entrada desapareció
// o ya estaba validada.
func (uc *PaymentEntryUseCase) resolveMiss(ctx context.Context, id string) error {
	entry, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return domain.ErrNotFound
	}
	if !entry.IsPending() {
		return domain.ErrAlreadyValidated
	}
	return fmt.Errorf("%w: la entrada %s no cambió", domain.ErrConflict, id)
}

func (uc *PaymentEntryUseCase) list(ctx context.Context, filter repository.PaymentEntryFilter) ([]dto.PaymentEntryResponse, error) {
	entries, err := uc.entryRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	names := newNameCache()
	items := make([]dto.PaymentEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp, err := uc.enrich(ctx, names, e)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return items, nil
}

// maxEntryAmount cota exclusiva de NUMERIC(18,2).
var maxEntryAmount = decimal.New(1, 16)

func validateEntryFields(in dto.PaymentEntryRequest) (entity.PaymentEntryFields, error) {
	f := entity.PaymentEntryFields{
		CompanyID:     strings.TrimSpace(in.CompanyID),
		ClientName:    strings.TrimSpace(in.ClientName),
		InvoiceNumber: strings.TrimSpace(in.InvoiceNumber),
		Amount:        in.Amount,
	}
	switch {
	case f.CompanyID == "":
		return f, fmt.Errorf("%w: company_id es requerido", domain.ErrInvalidInput)
	case f.ClientName == "":
		return f, fmt.Errorf("%w: client_name es requerido", domain.ErrInvalidInput)
	case f.InvoiceNumber == "":
		return f, fmt.Errorf("%w: invoice_number es requerido", domain.ErrInvalidInput)
	case f.Amount.IsNegative():
		return f, fmt.Errorf("%w: amount no puede ser negativo", domain.ErrInvalidInput)
	case !f.Amount.Equal(f.Amount.Truncate(2)):
		return f, fmt.Errorf("%w: amount admite como máximo dos decimales", domain.ErrInvalidInput)
	case f.Amount.GreaterThanOrEqual(maxEntryAmount):
		return f, fmt.Errorf("%w: amount debe ser menor que %s", domain.ErrInvalidInput, maxEntryAmount)
	}
	return f, nil
}

// ── Enriquecimiento ──────────────────────────────────────────────────────────

// nameCache memoriza nombres durante una sola llamada; nil = referencia colgante.
type nameCache struct {
	companies map[string]*string
	users     map[string]*string
}

func newNameCache() *nameCache {
	return &nameCache{companies: map[string]*string{}, users: map[string]*string{}}
}

func (uc *PaymentEntryUseCase) companyName(ctx context.Context, names *nameCache, id string) (*string, error) {
	if name, ok := names.companies[id]; ok {
		return name, nil
	}
	c, err := uc.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var name *string
	if c != nil {
		name = &c.Name
	}
	names.companies[id] = name
	return name, nil
}

func (uc *PaymentEntryUseCase) userName(ctx context.Context, names *nameCache, id string) (*string, error) {
	if name, ok := names.users[id]; ok {
		return name, nil
	}
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var name *string
	if u != nil {
		name = &u.Name
	}
	names.users[id] = name
	return name, nil
}

func (uc *PaymentEntryUseCase) enrich(ctx context.Context, names *nameCache, e *entity.PaymentEntry) (*dto.PaymentEntryResponse, error) {
	resp := &dto.PaymentEntryResponse{
		ID:            e.ID,
		CompanyID:     e.CompanyID,
		ClientName:    e.ClientName,
		InvoiceNumber: e.InvoiceNumber,
		Amount:        e.Amount,
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.CreatedAt,
		IsValidated:   e.IsValidated,
		ValidatedAt:   e.ValidatedAt,
		ValidatedBy:   e.ValidatedBy,
	}
	var err error
	if resp.CompanyName, err = uc.companyName(ctx, names, e.CompanyID); err != nil {
		return nil, err
	}
	if resp.CreatedByName, err = uc.userName(ctx, names, e.CreatedBy); err != nil {
		return nil, err
	}
	if e.ValidatedBy != nil {
		if resp.ValidatedByName, err = uc.userName(ctx, names, *e.ValidatedBy); err != nil {
			return nil, err
		}
	}
	return resp, nil
}
