package bootstrap

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/schoolrecords/internal/app/models"
	"github.com/yigit/schoolrecords/internal/config"
	"github.com/yigit/schoolrecords/internal/db"
	"github.com/yigit/schoolrecords/internal/pkg/auth"
)

func newStore(t *testing.T) (*db.Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return db.NewStore(mock, hasher), mock
}

func TestSeedIfEnabledSkipsWhenDisabled(t *testing.T) {
	store, mock := newStore(t)
	defer mock.Close()

	cfg := &config.Config{}
	cfg.Seed.Enabled = false

	SeedIfEnabled(context.Background(), cfg, store, zerolog.New(io.Discard))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryListsStudents(t *testing.T) {
	store, mock := newStore(t)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM students")).
		WillReturnRows(pgxmock.NewRows(models.StudentColumns).
			AddRow(int64(1), "Lovelace", "Ada", "2015-12-10", (*string)(nil), (*string)(nil)))

	require.NoError(t, Summary(context.Background(), store, zerolog.New(io.Discard)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadConfigAndSetupLoggerRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [not a map"), 0o600))
	t.Setenv(ConfigPathEnv, path)

	_, _, err := LoadConfigAndSetupLogger()
	assert.Error(t, err)
}
