package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	appModels "github.com/yigit/schoolrecords/internal/app/models"
	appRepos "github.com/yigit/schoolrecords/internal/app/repositories"
	"github.com/yigit/schoolrecords/internal/db"
	"github.com/yigit/schoolrecords/internal/pkg/apperrors"
	"github.com/yigit/schoolrecords/internal/pkg/dberrors"
	"github.com/yigit/schoolrecords/internal/pkg/helpers"
)

// Demo guardian credentials. Change the password after first login.
const (
	DemoGuardianUsername = "demo_guardian"
	DemoGuardianPassword = "ChangeMe123!"
	DemoGuardianEmail    = "guardian@schoolrecords.local"
)

// CreateDefaultData inserts a demo guardian with one child, the child's
// emergency contact and medical record. Everything is written in a single
// unit of work; nothing happens when the demo guardian already exists.
func CreateDefaultData(ctx context.Context, store *db.Store, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (demo guardian)...")

	_, err := store.Repos().Users.GetByUsername(ctx, DemoGuardianUsername)
	switch {
	case err == nil:
		lgr.Info().Str("username", DemoGuardianUsername).Msg("Demo guardian already exists, skipping creation")
		return nil
	case !apperrors.IsNotFound(err):
		lgr.Error().Err(err).Msg("Error checking if demo guardian exists")
		return err
	}

	emailTaken, err := store.Repos().Users.EmailExists(ctx, DemoGuardianEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking demo guardian email")
		return err
	}
	if emailTaken {
		lgr.Warn().Str("email", DemoGuardianEmail).Msg("Demo guardian email belongs to another account, skipping creation")
		return nil
	}

	err = store.WithTransaction(ctx, func(ctx context.Context, repos *appRepos.Repositories) error {
		guardian, err := repos.Users.Signup(ctx, DemoGuardianUsername, DemoGuardianPassword,
			"Demo", "Guardian", DemoGuardianEmail, "555-0100")
		if err != nil {
			return fmt.Errorf("creating demo guardian: %w", err)
		}

		student, err := repos.Students.Add(ctx, "Guardian", "Demo", "2016-09-01", "1A", "")
		if err != nil {
			return fmt.Errorf("creating demo student: %w", err)
		}

		contact := &appModels.Contact{
			StudentID: helpers.NullInt64(student.ID),
			Name:      "Demo Guardian",
			Email:     helpers.NullIfEmpty(DemoGuardianEmail),
			Phone:     helpers.NullIfEmpty("555-0100"),
			Relation:  helpers.NullIfEmpty("parent"),
			IsPrimary: true,
		}
		if err := repos.Contacts.Add(ctx, contact); err != nil {
			return fmt.Errorf("creating demo contact: %w", err)
		}

		if err := repos.MedicalRecords.Add(ctx, &appModels.MedicalRecord{StudentID: student.ID}); err != nil {
			return fmt.Errorf("creating demo medical record: %w", err)
		}

		if _, err := repos.GuardianChildren.Add(ctx, guardian.Username, student.ID); err != nil {
			return fmt.Errorf("linking demo guardian: %w", err)
		}

		lgr.Info().Str("username", guardian.Username).Int64("studentID", student.ID).Msg("Demo data staged")
		return nil
	})
	if dberrors.IsDuplicateConstraintError(err, "users_pkey") {
		lgr.Info().Msg("Demo guardian created concurrently, skipping")
		return nil
	}
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default data")
		return err
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return nil
}
