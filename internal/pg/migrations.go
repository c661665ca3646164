package pg

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/GlebRadaev/elevatex/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// RunMigrations brings the schema up to date and logs every applied step.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			zap.L().Warn("failed to close migration db handle", zap.Error(err))
		}
	}()

	provider, err := newProvider(db, migrations.Migrations)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	for _, res := range results {
		zap.L().Info("migration applied",
			zap.Int64("version", res.Source.Version),
			zap.String("file", res.Source.Path),
			zap.Duration("took", res.Duration))
	}
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	zap.L().Info("schema is up to date", zap.Int64("version", version), zap.Int("applied", len(results)))
	return nil
}

func newProvider(db *sql.DB, fsys fs.FS) (*goose.Provider, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	return provider, nil
}
