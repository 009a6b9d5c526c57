package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/stockroom/backoffice/infrastructure/service/logger"
)

const (
	MigrationUp   = "up"
	MigrationDown = "down"
)

var errInvalidMigrationName = errors.New("migration file name must look like 001_name.up.sql")

type migrationFile struct {
	version int
	name    string
	path    string
	kind    string
}

// Migrator applies NNN_name.up.sql / NNN_name.down.sql files and tracks the
// applied versions in schema_migrations. Each file runs in its own transaction.
type Migrator struct {
	db     *sql.DB
	tx     *TxManager
	files  fs.FS
	logger logger.Logger
}

func NewMigrator(db *sql.DB, files fs.FS, log logger.Logger) *Migrator {
	return &Migrator{
		db:     db,
		tx:     NewTxManager(db),
		files:  files,
		logger: log,
	}
}

// Run applies every pending up migration, or reverts every applied one.
func (m *Migrator) Run(ctx context.Context, mode string) error {
	if mode != MigrationUp && mode != MigrationDown {
		return fmt.Errorf("unknown migration mode %q", mode)
	}

	if err := m.ensureSchemaMigrations(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema_migrations: %w", err)
	}

	files, err := loadMigrationFiles(m.files, mode)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	for _, f := range files {
		applied, err := m.applied(ctx, f.version)
		if err != nil {
			return err
		}
		if applied == (mode == MigrationUp) {
			continue
		}

		m.logger.Info(ctx, "Running migration", map[string]interface{}{
			"version": f.version,
			"name":    f.name,
			"mode":    mode,
		})
		if err := m.apply(ctx, f); err != nil {
			return fmt.Errorf("migration %s failed: %w", f.path, err)
		}
	}
	return nil
}

func (m *Migrator) ensureSchemaMigrations(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

func (m *Migrator) applied(ctx context.Context, version int) (bool, error) {
	var exists bool
	err := m.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", version).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	return exists, nil
}

func (m *Migrator) apply(ctx context.Context, f migrationFile) error {
	body, err := fs.ReadFile(m.files, f.path)
	if err != nil {
		return err
	}

	return m.tx.WithinTx(ctx, func(ctx context.Context) error {
		q := conn(ctx, m.db)
		if _, err := q.ExecContext(ctx, string(body)); err != nil {
			return err
		}
		if f.kind == MigrationUp {
			_, err = q.ExecContext(ctx, "INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", f.version, f.name)
		} else {
			_, err = q.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version = $1", f.version)
		}
		return err
	})
}

// loadMigrationFiles returns the files of kind, ascending for up and
// descending for down.
func loadMigrationFiles(files fs.FS, kind string) ([]migrationFile, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, err
	}

	suffix := "." + kind + ".sql"
	var out []migrationFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), suffix) {
			continue
		}
		version, name, err := parseMigrationName(e.Name())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		out = append(out, migrationFile{version: version, name: name, path: e.Name(), kind: kind})
	}

	sort.Slice(out, func(i, j int) bool {
		if kind == MigrationDown {
			return out[i].version > out[j].version
		}
		return out[i].version < out[j].version
	})
	return out, nil
}

// parseMigrationName splits 001_create_schema.up.sql into 1 and create_schema.
func parseMigrationName(filename string) (int, string, error) {
	prefix, rest, ok := strings.Cut(filename, "_")
	if !ok {
		return 0, "", errInvalidMigrationName
	}
	version, err := strconv.Atoi(prefix)
	if err != nil || version < 1 {
		return 0, "", errInvalidMigrationName
	}
	name, _, _ := strings.Cut(rest, ".")
	if name == "" {
		return 0, "", errInvalidMigrationName
	}
	return version, name, nil
}
