package postgres

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// ErrMigrationFailed is returned when applying migrations fails.
var ErrMigrationFailed = errors.New("failed to apply migrations")

// Migrate applies goose migrations from the given filesystem. Goose works
// through database/sql, so a separate pgx stdlib connection is opened for
// the duration of the migration run.
func Migrate(ctx context.Context, dsn string, fsys fs.FS, log *slog.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}
	defer db.Close()

	goose.SetBaseFS(fsys)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err == nil && log != nil {
		log.InfoContext(ctx, "migrations applied", "version", version)
	}

	return nil
}
