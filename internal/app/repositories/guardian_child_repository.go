package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/schoolrecords/internal/app/models"
	"github.com/yigit/schoolrecords/internal/pkg/apperrors"
	"github.com/yigit/schoolrecords/internal/pkg/dberrors"
	"github.com/yigit/schoolrecords/internal/pkg/logger"
)

// GuardianChildRepository handles the guardian/student join table
type GuardianChildRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewGuardianChildRepository creates a new GuardianChildRepository
func NewGuardianChildRepository(db DBTX) *GuardianChildRepository {
	return &GuardianChildRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// GetByGuardian returns every link row of a guardian ordered by child id
func (r *GuardianChildRepository) GetByGuardian(ctx context.Context, guardianUsername string) ([]*models.GuardianChild, error) {
	sql, args, err := r.sb.Select(models.GuardianChildColumns...).
		From(models.TableGuardianChildren).
		Where(squirrel.Eq{"guardian_username": guardianUsername}).
		OrderBy("child_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get guardian children query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("guardian", guardianUsername).Msg("Error querying guardian children")
		return nil, fmt.Errorf("error retrieving guardian children: %w", err)
	}

	links, err := collectRows[models.GuardianChild](rows)
	if err != nil {
		return nil, fmt.Errorf("error scanning guardian children: %w", err)
	}
	return links, nil
}

// GetChildren resolves a guardian's links to the student rows
func (r *GuardianChildRepository) GetChildren(ctx context.Context, guardianUsername string) ([]*models.Student, error) {
	columns := make([]string, len(models.StudentColumns))
	for i, c := range models.StudentColumns {
		columns[i] = "s." + c
	}

	sql, args, err := r.sb.Select(columns...).
		From(models.TableStudents + " s").
		Join(models.TableGuardianChildren + " gc ON gc.child_id = s.id").
		Where(squirrel.Eq{"gc.guardian_username": guardianUsername}).
		OrderBy("s.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get children query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("guardian", guardianUsername).Msg("Error querying children")
		return nil, fmt.Errorf("error retrieving children: %w", err)
	}

	students, err := collectRows[models.Student](rows)
	if err != nil {
		return nil, fmt.Errorf("error scanning children: %w", err)
	}
	return students, nil
}

// Add links a guardian to a child. Missing endpoints fail with a
// foreign-key violation from the database.
func (r *GuardianChildRepository) Add(ctx context.Context, guardianUsername string, childID int64) (*models.GuardianChild, error) {
	link := &models.GuardianChild{GuardianUsername: guardianUsername, ChildID: childID}

	sql, args, err := r.sb.Insert(models.TableGuardianChildren).
		Columns(models.GuardianChildColumns...).
		Values(link.GuardianUsername, link.ChildID).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build add guardian child query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		switch {
		case dberrors.IsForeignKeyViolation(err):
			logger.Warn().Str("guardian", guardianUsername).Int64("childID", childID).Str("constraint", dberrors.ConstraintName(err)).Msg("Guardian or child does not exist")
		case dberrors.IsUniqueViolation(err):
			logger.Warn().Str("guardian", guardianUsername).Int64("childID", childID).Msg("Guardian already linked to child")
		default:
			logger.Error().Err(err).Str("guardian", guardianUsername).Int64("childID", childID).Msg("Error linking guardian and child")
		}
		return nil, fmt.Errorf("error adding guardian child: %w", err)
	}

	logger.Info().Str("guardian", guardianUsername).Int64("childID", childID).Msg("Guardian linked to child")
	return link, nil
}

// Remove deletes a single link
func (r *GuardianChildRepository) Remove(ctx context.Context, guardianUsername string, childID int64) error {
	sql, args, err := r.sb.Delete(models.TableGuardianChildren).
		Where(squirrel.Eq{"guardian_username": guardianUsername}).
		Where(squirrel.Eq{"child_id": childID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove guardian child query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("guardian", guardianUsername).Int64("childID", childID).Msg("Error unlinking guardian and child")
		return fmt.Errorf("error removing guardian child: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGuardianChildNotFound
	}

	return nil
}
