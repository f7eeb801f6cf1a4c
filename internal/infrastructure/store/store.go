// Package store elige el driver de persistencia configurado y expone sus repositorios.
package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/paytrack-api/internal/domain/repository"
	"github.com/jhoicas/paytrack-api/internal/infrastructure/postgres"
	"github.com/jhoicas/paytrack-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/paytrack-api/pkg/config"
)

// Store agrupa los repositorios de un mismo driver.
type Store struct {
	Users     repository.UserRepository
	Companies repository.CompanyRepository
	Entries   repository.PaymentEntryRepository
	Reminders repository.ReminderRepository

	ping  func(context.Context) error
	close func()
}

// Open conecta con el almacén, aplica migraciones y construye los repositorios.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.NewMigrator(pool).Run(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones PostgreSQL: %w", err)
		}
		return &Store{
			Users:     postgres.NewUserRepository(pool),
			Companies: postgres.NewCompanyRepository(pool),
			Entries:   postgres.NewPaymentEntryRepository(pool),
			Reminders: postgres.NewReminderRepository(pool),
			ping:      pool.Ping,
			close:     pool.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.NewDB(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Users:     sqlite.NewUserRepository(db),
			Companies: sqlite.NewCompanyRepository(db),
			Entries:   sqlite.NewPaymentEntryRepository(db),
			Reminders: sqlite.NewReminderRepository(db),
			ping:      db.Ping,
			close: func() {
				if err := db.Close(); err != nil {
					log.Error().Err(err).Msg("cerrar sqlite")
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("driver de almacén desconocido: %q", cfg.Store.Driver)
	}
}

// Ping verifica la conexión (health check).
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close libera las conexiones.
func (s *Store) Close() {
	s.close()
}
