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

// ReminderUseCase recordatorios sobre entradas pendientes.
type ReminderUseCase struct {
	reminderRepo repository.ReminderRepository
	entryRepo    repository.PaymentEntryRepository
	userRepo     repository.UserRepository
	now          func() time.Time
}

// NewReminderUseCase construye el caso de uso.
func NewReminderUseCase(
	reminderRepo repository.ReminderRepository,
	entryRepo repository.PaymentEntryRepository,
	userRepo repository.UserRepository,
) *ReminderUseCase {
	return &ReminderUseCase{
		reminderRepo: reminderRepo,
		entryRepo:    entryRepo,
		userRepo:     userRepo,
		now:          time.Now,
	}
}

// Create registra un recordatorio. La entrada debe existir y seguir pendiente
// en el momento de la inserción.
func (uc *ReminderUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateReminderRequest) (*dto.ReminderResponse, error) {
	if err := policy.Authorize(actor.Role, policy.CreateReminder); err != nil {
		return nil, err
	}
	entryID := strings.TrimSpace(in.PaymentEntryID)
	if entryID == "" {
		return nil, fmt.Errorf("%w: payment_entry_id es requerido", domain.ErrInvalidInput)
	}
	var note *string
	if in.Note != nil {
		if n := strings.TrimSpace(*in.Note); n != "" {
			note = &n
		}
	}
	reminder := &entity.Reminder{
		ID:             uuid.New().String(),
		PaymentEntryID: entryID,
		TriggeredBy:    actor.ID,
		TriggeredAt:    uc.now().UTC(),
		Note:           note,
	}
	ok, err := uc.reminderRepo.CreateForPendingEntry(ctx, reminder)
	if err != nil {
		return nil, err
	}
	if !ok {
		entry, err := uc.entryRepo.GetByID(ctx, entryID)
		if err != nil {
			return nil, err
		}
		if entry == nil {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: no se recuerda una entrada validada", domain.ErrInvalidState)
	}
	name := actor.Name
	return entityToReminderResponse(reminder, &name), nil
}

// ListByEntry devuelve los recordatorios de una entrada, más recientes primero.
func (uc *ReminderUseCase) ListByEntry(ctx context.Context, actor *entity.User, entryID string) ([]dto.ReminderResponse, error) {
	if err := policy.Authorize(actor.Role, policy.ListReminders); err != nil {
		return nil, err
	}
	list, err := uc.reminderRepo.ListByEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	names := map[string]*string{}
	items := make([]dto.ReminderResponse, 0, len(list))
	for _, r := range list {
		name, ok := names[r.TriggeredBy]
		if !ok {
			u, err := uc.userRepo.GetByID(ctx, r.TriggeredBy)
			if err != nil {
				return nil, err
			}
			if u != nil {
				name = &u.Name
			}
			names[r.TriggeredBy] = name
		}
		items = append(items, *entityToReminderResponse(r, name))
	}
	return items, nil
}

func entityToReminderResponse(r *entity.Reminder, triggeredByName *string) *dto.ReminderResponse {
	return &dto.ReminderResponse{
		ID:              r.ID,
		PaymentEntryID:  r.PaymentEntryID,
		TriggeredBy:     r.TriggeredBy,
		TriggeredByName: triggeredByName,
		TriggeredAt:     r.TriggeredAt,
		Note:            r.Note,
	}
}
