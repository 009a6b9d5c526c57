package postgres

import (
	"context"
	"io"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/backoffice/infrastructure/service/logger"
)

func migrationFS() fstest.MapFS {
	return fstest.MapFS{
		"001_create_schema.up.sql":     {Data: []byte("CREATE TABLE categories (id BIGSERIAL PRIMARY KEY);")},
		"001_create_schema.down.sql":   {Data: []byte("DROP TABLE categories;")},
		"002_add_audit_index.up.sql":   {Data: []byte("CREATE INDEX audit_logs_created_at_idx ON audit_logs (created_at);")},
		"002_add_audit_index.down.sql": {Data: []byte("DROP INDEX audit_logs_created_at_idx;")},
		"README.md":                    {Data: []byte("docs")},
	}
}

func newTestMigrator(t *testing.T) (*Migrator, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.NewStructuredLogger(logger.LoggerConfig{Output: io.Discard})
	return NewMigrator(db, migrationFS(), log), mock
}

func expectApplied(mock sqlmock.Sqlmock, version int, applied bool) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)")).
		WithArgs(version).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(applied))
}

func TestMigrator_UpSkipsApplied(t *testing.T) {
	m, mock := newTestMigrator(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	expectApplied(mock, 1, true)
	expectApplied(mock, 2, false)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX audit_logs_created_at_idx")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations (version, name) VALUES ($1, $2)")).
		WithArgs(2, "add_audit_index").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, m.Run(context.Background(), MigrationUp))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_DownRevertsNewestFirst(t *testing.T) {
	m, mock := newTestMigrator(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	expectApplied(mock, 2, true)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DROP INDEX audit_logs_created_at_idx;")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schema_migrations WHERE version = $1")).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectApplied(mock, 1, true)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DROP TABLE categories;")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schema_migrations WHERE version = $1")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, m.Run(context.Background(), MigrationDown))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_FailedFileRollsBack(t *testing.T) {
	m, mock := newTestMigrator(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	expectApplied(mock, 1, false)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE categories")).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := m.Run(context.Background(), MigrationUp)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_UnknownMode(t *testing.T) {
	m, _ := newTestMigrator(t)
	assert.Error(t, m.Run(context.Background(), "sideways"))
}

func TestParseMigrationName(t *testing.T) {
	version, name, err := parseMigrationName("001_create_schema.up.sql")
	require.NoError(t, err)
	assert.Equal(t, 1, version)
	assert.Equal(t, "create_schema", name)

	for _, bad := range []string{"create_schema.up.sql", "abc_create.up.sql", "000_zero.up.sql", "003_.up.sql"} {
		_, _, err := parseMigrationName(bad)
		assert.ErrorIs(t, err, errInvalidMigrationName, bad)
	}
}
