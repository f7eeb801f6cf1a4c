package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrator aplica el esquema embebido y registra cada archivo en schema_migrations.
type Migrator struct {
	pool *pgxpool.Pool
}

// NewMigrator construye el migrador sobre el pool.
func NewMigrator(pool *pgxpool.Pool) *Migrator {
	return &Migrator{pool: pool}
}

// Run ejecuta, en orden alfabético, las migraciones que aún no se aplicaron.
// Varias instancias arrancando a la vez se serializan con un advisory lock.
func (m *Migrator) Run(ctx context.Context) error {
	files, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("listar migraciones: %w", err)
	}
	sort.Strings(files)

	return NewTxRunner(m.pool).RunLocked(ctx, lockMigrations, func(q Querier) error {
		if _, err := q.Exec(ctx, `
			CREATE TABLE IF NOT EXISTS schema_migrations (
				filename   TEXT PRIMARY KEY,
				applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`); err != nil {
			return fmt.Errorf("crear schema_migrations: %w", err)
		}

		applied, err := appliedMigrations(ctx, q)
		if err != nil {
			return err
		}

		ran := 0
		for _, path := range files {
			name := strings.TrimPrefix(path, "migrations/")
			if applied[name] {
				continue
			}
			content, err := migrationFS.ReadFile(path)
			if err != nil {
				return fmt.Errorf("leer migración %s: %w", name, err)
			}
			if _, err := q.Exec(ctx, string(content)); err != nil {
				return fmt.Errorf("migración %s: %w", name, err)
			}
			if _, err := q.Exec(ctx, `INSERT INTO schema_migrations (filename) VALUES ($1)`, name); err != nil {
				return fmt.Errorf("registrar migración %s: %w", name, err)
			}
			log.Info().Str("migration", name).Msg("migración aplicada")
			ran++
		}
		if ran == 0 {
			log.Debug().Msg("esquema al día")
		}
		return nil
	})
}

func appliedMigrations(ctx context.Context, q Querier) (map[string]bool, error) {
	rows, err := q.Query(ctx, `SELECT filename FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("leer schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}
	return applied, rows.Err()
}
