package db

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/schoolrecords/internal/app/migrations"
	"github.com/yigit/schoolrecords/internal/app/models"
	"github.com/yigit/schoolrecords/internal/app/repositories"
	"github.com/yigit/schoolrecords/internal/pkg/apperrors"
	"github.com/yigit/schoolrecords/internal/pkg/auth"
	"github.com/yigit/schoolrecords/internal/pkg/helpers"
)

// newPostgresStore installs the schema into a throwaway postgres schema and
// returns a Store bound to it. Set DATABASE_URL to run these tests.
func newPostgresStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()

	admin, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(admin.Close)

	schema := "records_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+pgx.Identifier{schema}.Sanitize())
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+pgx.Identifier{schema}.Sanitize()+" CASCADE")
	})

	poolConfig, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	poolConfig.ConnConfig.RuntimeParams["search_path"] = schema
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	require.NoError(t, err)

	require.NoError(t, migrations.NewMigrator(pool).Migrate(ctx))
	// a second run finds nothing pending
	require.NoError(t, migrations.NewMigrator(pool).Migrate(ctx))

	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	store := NewStore(pool, hasher)
	t.Cleanup(store.Close)
	return store
}

func TestPostgresStudentDeleteCascades(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()

	var student, sibling *models.Student
	contact := &models.Contact{Name: "Grace Hopper", Relation: helpers.NullIfEmpty("aunt")}
	err := store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		if student, err = repos.Students.Add(ctx, "Lovelace", "Ada", "2015-12-10", "1A", ""); err != nil {
			return err
		}
		if sibling, err = repos.Students.Add(ctx, "Lovelace", "Byron", "2017-03-02", "", ""); err != nil {
			return err
		}
		contact.StudentID = &student.ID
		if err := repos.Contacts.Add(ctx, contact); err != nil {
			return err
		}
		if err := repos.Contacts.Add(ctx, &models.Contact{StudentID: &sibling.ID, Name: "Other"}); err != nil {
			return err
		}
		if err := repos.MedicalRecords.Add(ctx, &models.MedicalRecord{StudentID: student.ID, Polio: helpers.NullIfEmpty("2016-01-01")}); err != nil {
			return err
		}
		if _, err := repos.Users.Signup(ctx, "alice", "secret", "Alice", "Liddell", "alice@example.com", "555"); err != nil {
			return err
		}
		if _, err := repos.GuardianChildren.Add(ctx, "alice", student.ID); err != nil {
			return err
		}
		_, err = repos.GuardianChildren.Add(ctx, "alice", sibling.ID)
		return err
	})
	require.NoError(t, err)

	repos := store.Repos()

	fetched, err := repos.Students.GetByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultImageURL, *fetched.ImageURL)

	contacts, err := repos.Contacts.GetByStudentID(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Grace Hopper", contacts[0].Name)

	require.NoError(t, repos.Students.Delete(ctx, student.ID))

	_, err = repos.MedicalRecords.GetByStudentID(ctx, student.ID)
	assert.ErrorIs(t, err, apperrors.ErrMedicalRecordNotFound)

	links, err := repos.GuardianChildren.GetByGuardian(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, sibling.ID, links[0].ChildID)

	orphan, err := repos.Contacts.GetByID(ctx, contact.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.StudentID)
	assert.Equal(t, "Grace Hopper", orphan.Name)

	contacts, err = repos.Contacts.GetByStudentID(ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, contacts)

	siblingContacts, err := repos.Contacts.GetByStudentID(ctx, sibling.ID)
	require.NoError(t, err)
	assert.Len(t, siblingContacts, 1)
}

func TestPostgresRollbackDiscardsAndLoginWorks(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()

	uow, err := store.Begin(ctx)
	require.NoError(t, err)
	staged, err := uow.Repos.Students.Add(ctx, "Hopper", "Grace", "2016-01-02", "", "")
	require.NoError(t, err)
	require.NoError(t, uow.Rollback(ctx))

	_, err = store.Repos().Students.GetByID(ctx, staged.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	users := store.Repos().Users
	_, err = users.Signup(ctx, "alice", "secret", "Alice", "Liddell", "alice@example.com", "555")
	require.NoError(t, err)

	user, err := users.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "secret", user.Password)

	_, err = users.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = users.Login(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
