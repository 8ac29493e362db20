package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/lock"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate aplica con goose las migraciones embebidas pendientes.
// El session locker evita que dos instancias migren a la vez.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	provider, err := newMigrationProvider(pool)
	if err != nil {
		return err
	}
	defer provider.Close()

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	for _, r := range results {
		log.Info().
			Int64("version", r.Source.Version).
			Str("migration", r.Source.Path).
			Dur("duration", r.Duration).
			Msg("migración aplicada")
	}
	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("versión del esquema: %w", err)
	}
	log.Info().Int64("version", version).Int("applied", len(results)).Msg("esquema al día")
	return nil
}

func newMigrationProvider(pool *pgxpool.Pool) (*goose.Provider, error) {
	dir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migraciones embebidas: %w", err)
	}
	locker, err := lock.NewPostgresSessionLocker()
	if err != nil {
		return nil, fmt.Errorf("session locker: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, stdlib.OpenDBFromPool(pool), dir,
		goose.WithSessionLocker(locker),
	)
	if err != nil {
		return nil, fmt.Errorf("crear provider goose: %w", err)
	}
	return provider, nil
}
