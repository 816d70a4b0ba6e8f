package sqlite

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/uptrace/bun"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  name TEXT PRIMARY KEY,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// ApplyMigrations runs pending *.sql files in lexical order and records each one
// in schema_migrations. An empty dir uses the migrations compiled into the binary.
func ApplyMigrations(ctx context.Context, db *DB, migrationsDir string) error {
	if strings.TrimSpace(migrationsDir) == "" {
		return ApplyEmbeddedMigrations(ctx, db)
	}
	return applyMigrationsFromFS(ctx, db, os.DirFS(migrationsDir), ".")
}

// ApplyEmbeddedMigrations runs the migrations compiled into the binary.
func ApplyEmbeddedMigrations(ctx context.Context, db *DB) error {
	return applyMigrationsFromFS(ctx, db, embeddedMigrations, "migrations")
}

func applyMigrationsFromFS(ctx context.Context, db *DB, fsys fs.FS, root string) error {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && path.Ext(entry.Name()) == ".sql" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	if _, err := db.WriteSQL.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return err
	}

	for _, name := range names {
		if applied[name] {
			continue
		}
		sqlBytes, err := fs.ReadFile(fsys, path.Join(root, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES (?)`, name)
			return err
		})
		if err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		slog.Info("applied migration", slog.String("name", name))
	}
	return nil
}

func appliedMigrations(ctx context.Context, db *DB) (map[string]bool, error) {
	var names []string
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT name FROM schema_migrations`).Scan(ctx, &names)
	})
	if err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out, nil
}
