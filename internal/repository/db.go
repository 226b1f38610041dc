package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

func CreateSqliteDb(dialect, name string) (*sql.DB, error) {
	if name == "" {
		return nil, errors.New("database name cannot be empty")
	}
	connectionString := "file:" + name + "?cache=shared&mode=rwc"
	db, err := sql.Open(dialect, connectionString)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate applies the embedded goose migrations.
func Migrate(db *sql.DB, dialect string) error {
	return RunMigrations(context.Background(), db, dialect, "up")
}

// RunMigrations runs any goose command against the embedded migrations.
func RunMigrations(ctx context.Context, db *sql.DB, dialect, command string, args ...string) error {
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	return goose.RunContext(ctx, command, db, migrationsDir, args...)
}
