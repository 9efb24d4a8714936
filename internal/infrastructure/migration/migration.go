package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	migrations := []Migration{
		{
			Name: "create_users_table",
			Up:   createUsersTable,
		},
		{
			Name: "create_cvs_table",
			Up:   createCVsTable,
		},
	}

	for _, m := range migrations {
		if err := m.Up(ctx, pool); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

func createUsersTable(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
	`
	_, err := pool.Exec(ctx, query)
	return err
}

func createCVsTable(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS cvs (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id),
			name TEXT NOT NULL,
			profession TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '',
			experience TEXT NOT NULL DEFAULT '',
			education TEXT NOT NULL DEFAULT '',
			skills TEXT NOT NULL DEFAULT '',
			languages TEXT NOT NULL DEFAULT '',
			certifications TEXT NOT NULL DEFAULT '',
			projects TEXT NOT NULL DEFAULT '',
			website TEXT NOT NULL DEFAULT '',
			linkedin TEXT NOT NULL DEFAULT '',
			github TEXT NOT NULL DEFAULT '',
			twitter TEXT NOT NULL DEFAULT '',
			photo_path TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`
	if _, err := pool.Exec(ctx, query); err != nil {
		return err
	}
	_, err := pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_cvs_owner_id ON cvs(owner_id);`)
	return err
}
