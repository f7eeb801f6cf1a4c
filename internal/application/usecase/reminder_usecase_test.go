package usecase_test

import (
	"github.com/jhoicas/paytrack-api/internal/application/dto"
	"github.com/jhoicas/paytrack-api/internal/application/usecase"
	"github.com/jhoicas/paytrack-api/internal/domain"
)

func (s *UseCaseSuite) TestReminders() {
	entries := s.entryUC()
	uc := usecase.NewReminderUseCase(s.reminders, s.entries, s.users)

	entry, err := entries.Create(s.ctx, s.employee, s.entryRequest("F-030", "42"))
	s.Require().NoError(err)

	blank := "   "
	first, err := uc.Create(s.ctx, s.manager, dto.CreateReminderRequest{PaymentEntryID: entry.ID, Note: &blank})
	s.Require().NoError(err)
	s.Nil(first.Note, "una nota en blanco no se guarda")
	s.Require().NotNil(first.TriggeredByName)
	s.Equal("Max", *first.TriggeredByName)

	note := "segunda llamada"
	_, err = uc.Create(s.ctx, s.admin, dto.CreateReminderRequest{PaymentEntryID: entry.ID, Note: &note})
	s.Require().NoError(err)

	_, err = uc.Create(s.ctx, s.employee, dto.CreateReminderRequest{PaymentEntryID: entry.ID})
	s.ErrorIs(err, domain.ErrForbidden)

	_, err = uc.Create(s.ctx, s.manager, dto.CreateReminderRequest{})
	s.ErrorIs(err, domain.ErrInvalidInput)

	_, err = uc.Create(s.ctx, s.manager, dto.CreateReminderRequest{PaymentEntryID: "no-existe"})
	s.ErrorIs(err, domain.ErrNotFound)

	list, err := uc.ListByEntry(s.ctx, s.manager, entry.ID)
	s.Require().NoError(err)
	s.Len(list, 2)

	_, err = uc.ListByEntry(s.ctx, s.employee, entry.ID)
	s.ErrorIs(err, domain.ErrForbidden)

	_, err = entries.Validate(s.ctx, s.manager, entry.ID)
	s.Require().NoError(err)

	_, err = uc.Create(s.ctx, s.manager, dto.CreateReminderRequest{PaymentEntryID: entry.ID})
	s.ErrorIs(err, domain.ErrInvalidState)

	empty, err := uc.ListByEntry(s.ctx, s.admin, "no-existe")
	s.Require().NoError(err)
	s.Empty(empty)
}

func (s *UseCaseSuite) TestReminders_SobrevivenAlBorrarLaEntrada() {
	entries := s.entryUC()
	uc := usecase.NewReminderUseCase(s.reminders, s.entries, s.users)

	entry, err := entries.Create(s.ctx, s.employee, s.entryRequest("F-031", "12"))
	s.Require().NoError(err)
	_, err = uc.Create(s.ctx, s.manager, dto.CreateReminderRequest{PaymentEntryID: entry.ID})
	s.Require().NoError(err)

	s.Require().NoError(entries.Delete(s.ctx, s.employee, entry.ID))

	list, err := uc.ListByEntry(s.ctx, s.manager, entry.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(entry.ID, list[0].PaymentEntryID)

	_, err = uc.Create(s.ctx, s.manager, dto.CreateReminderRequest{PaymentEntryID: entry.ID})
	s.ErrorIs(err, domain.ErrNotFound, "no se añaden recordatorios a una entrada borrada")
}
