package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate creates the tables and indexes the repository needs. Every
// statement is idempotent, so it runs on each start.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	files, err := Migrations()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	for _, file := range files {
		query, err := migrationFS.ReadFile(file)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(query)); err != nil {
			return fmt.Errorf("postgres: applying %s: %w", file, err)
		}
	}
	return nil
}

// Migrations lists the embedded migration files in the order Migrate applies them.
func Migrations() ([]string, error) {
	files, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
