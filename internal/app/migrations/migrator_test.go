package migrations

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const existsQuery = "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)"

func TestEmbeddedSchema(t *testing.T) {
	m := NewMigrator(nil)

	files, err := m.Versions()
	require.NoError(t, err)
	require.Equal(t, []string{"001_init.sql"}, files)

	content, err := embeddedSQL.ReadFile("sql/001_init.sql")
	require.NoError(t, err)
	schema := string(content)

	for _, table := range []string{"students", "contacts", "medical_records", "users", "guardian_children"} {
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}

	assert.Contains(t, schema, "student_id BIGINT REFERENCES students(id) ON DELETE SET NULL")
	assert.Contains(t, schema, "student_id BIGINT PRIMARY KEY REFERENCES students(id) ON DELETE CASCADE")
	assert.Contains(t, schema, "REFERENCES users(username) ON DELETE CASCADE")
	assert.Contains(t, schema, "child_id BIGINT NOT NULL REFERENCES students(id) ON DELETE CASCADE")
	assert.Contains(t, schema, "PRIMARY KEY (guardian_username, child_id)")
	assert.Contains(t, schema, "CONSTRAINT users_email_key UNIQUE (email)")
}

func TestVersionOf(t *testing.T) {
	assert.Equal(t, "001", versionOf("001_init.sql"))
	assert.Equal(t, "002", versionOf("002_add_index_on_names.sql"))
	assert.Equal(t, "003.sql", versionOf("003.sql"))
}

func TestMigrateAppliesPendingInOrder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	files := fstest.MapFS{
		"schema/002_second.sql": {Data: []byte("CREATE TABLE b (id INT);")},
		"schema/001_first.sql":  {Data: []byte("CREATE TABLE a (id INT);")},
		"schema/README.md":      {Data: []byte("not sql")},
	}

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).WithArgs("001").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE a (id INT);")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations (version) VALUES ($1)")).WithArgs("001").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).WithArgs("002").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	err = NewMigratorFS(mock, files, "schema").Migrate(context.Background())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateRollsBackFailedFile(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	files := fstest.MapFS{
		"schema/001_broken.sql": {Data: []byte("CREATE TABLE broken (")},
	}
	syntaxErr := errors.New("syntax error at end of input")

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).WithArgs("001").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE broken (")).WillReturnError(syntaxErr)
	mock.ExpectRollback()

	err = NewMigratorFS(mock, files, "schema").Migrate(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, syntaxErr)
	assert.True(t, strings.Contains(err.Error(), "001_broken.sql"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateMissingDirectory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	err = NewMigratorFS(mock, fstest.MapFS{}, "schema").Migrate(context.Background())
	assert.Error(t, err)
}
