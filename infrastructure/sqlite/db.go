package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"
)

// DB holds one serialized writer and a pool of query-only readers over the same file.
type DB struct {
	Path     string
	WriteSQL *sql.DB
	ReadSQL  *sql.DB
	W        *bun.DB
	R        *bun.DB
}

const maxReaders = 8

// OpenDB opens the snapshot database, creating its parent directory when missing.
func OpenDB(path string) (*DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	wsql, err := sql.Open("sqlite3", dsn(path, "_txlock=immediate", "_journal_mode=WAL"))
	if err != nil {
		return nil, fmt.Errorf("open write db: %w", err)
	}
	wsql.SetMaxOpenConns(1)
	wsql.SetConnMaxLifetime(15 * time.Minute)

	// The writer creates the file, so readers can always open it read-only.
	if err := wsql.Ping(); err != nil {
		wsql.Close()
		return nil, fmt.Errorf("ping write db: %w", err)
	}

	rsql, err := sql.Open("sqlite3", dsn(path, "mode=ro", "_query_only=1"))
	if err != nil {
		wsql.Close()
		return nil, fmt.Errorf("open read db: %w", err)
	}
	rsql.SetMaxOpenConns(maxReaders)
	rsql.SetConnMaxIdleTime(5 * time.Minute)
	rsql.SetConnMaxLifetime(15 * time.Minute)

	return &DB{
		Path:     path,
		WriteSQL: wsql,
		ReadSQL:  rsql,
		W:        bun.NewDB(wsql, sqlitedialect.New()),
		R:        bun.NewDB(rsql, sqlitedialect.New()),
	}, nil
}

func dsn(path string, extra ...string) string {
	params := append([]string{"_foreign_keys=on", "_busy_timeout=5000"}, extra...)
	return fmt.Sprintf("file:%s?%s", path, strings.Join(params, "&"))
}

// Close closes both handles and returns the first error.
func (db *DB) Close() error {
	if db == nil {
		return nil
	}
	var first error
	for _, h := range []*bun.DB{db.W, db.R} {
		if h == nil {
			continue
		}
		if err := h.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
