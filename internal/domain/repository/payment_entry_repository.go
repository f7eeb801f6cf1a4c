package repository

import (
	"context"
	"time"

	"github.com/jhoicas/paytrack-api/internal/domain/entity"
)

// PaymentEntryFilter criterios de listado. Campos nil no filtran.
type PaymentEntryFilter struct {
	CreatedBy *string
	Validated *bool
}

// PaymentEntryRepository define el puerto de persistencia para PaymentEntry.
//
// Las escrituras sobre una entrada existente son condicionales: solo aplican si la
// entrada sigue pendiente en el momento de escribir. El booleano devuelto indica
// si se modificó una fila; false significa "no existe o ya está validada" y el
// llamador decide releyendo.
type PaymentEntryRepository interface {
	Create(ctx context.Context, entry *entity.PaymentEntry) error
	GetByID(ctx context.Context, id string) (*entity.PaymentEntry, error)
	// List devuelve las entradas ordenadas por fecha de creación descendente.
	List(ctx context.Context, filter PaymentEntryFilter) ([]*entity.PaymentEntry, error)
	UpdatePending(ctx context.Context, entry *entity.PaymentEntry) (bool, error)
	// MarkValidated fija is_validated, validated_at y validated_by en una sola
	// actualización filtrada por is_validated = false.
	MarkValidated(ctx context.Context, id, validatorID string, at time.Time) (bool, error)
	DeletePending(ctx context.Context, id string) (bool, error)
}
