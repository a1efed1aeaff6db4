package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/schoolrecords/internal/app/models"
	"github.com/yigit/schoolrecords/internal/pkg/apperrors"
	"github.com/yigit/schoolrecords/internal/pkg/helpers"
	"github.com/yigit/schoolrecords/internal/pkg/logger"
)

// StudentRepository handles student database operations
type StudentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db DBTX) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(models.StudentColumns...).
		From(models.TableStudents).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	var student models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(student.ScanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Debug().Int64("studentID", id).Msg("Student not found")
			return nil, apperrors.NewNotFoundError(apperrors.ErrStudentNotFound, "id", id)
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// Add inserts a student and returns it with its generated id. An empty
// classroom means "not given" and is stored as NULL, never as ''. An empty
// imageURL is stored as models.DefaultImageURL.
// The row is only durable once the surrounding unit of work commits.
func (r *StudentRepository) Add(ctx context.Context, lastName, firstName, birthDate, classroom, imageURL string) (*models.Student, error) {
	image := helpers.StringOrDefault(&imageURL, models.DefaultImageURL)
	student := &models.Student{
		LastName:  lastName,
		FirstName: firstName,
		BirthDate: birthDate,
		Classroom: helpers.NullIfEmpty(classroom),
		ImageURL:  &image,
	}

	sql, args, err := r.sb.Insert(models.TableStudents).
		Columns("last_name", "first_name", "birth_date", "classroom", "image_url").
		Values(student.LastName, student.FirstName, student.BirthDate, student.Classroom, student.ImageURL).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building add student SQL")
		return nil, fmt.Errorf("failed to build add student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&student.ID); err != nil {
		logger.Error().Err(err).Str("lastName", lastName).Str("firstName", firstName).Msg("Error executing add student query")
		return nil, fmt.Errorf("error adding student: %w", err)
	}

	logger.Info().Int64("studentID", student.ID).Msg("Student added")
	return student, nil
}

// GetAll retrieves every student ordered by name
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(models.StudentColumns...).
		From(models.TableStudents).
		OrderBy("last_name", "first_name", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing students")
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	students, err := collectRows[models.Student](rows)
	if err != nil {
		return nil, fmt.Errorf("error scanning students: %w", err)
	}
	return students, nil
}

// Update writes every column of student back to its row
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update(models.TableStudents).
		Set("last_name", student.LastName).
		Set("first_name", student.FirstName).
		Set("birth_date", student.BirthDate).
		Set("classroom", student.Classroom).
		Set("image_url", student.ImageURL).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error updating student")
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student. The schema cascades the medical record and the
// guardian links; contacts stay behind with a NULL student_id.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete(models.TableStudents).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error deleting student")
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		logger.Warn().Int64("studentID", id).Msg("Delete matched no student")
		return apperrors.ErrStudentNotFound
	}

	logger.Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}
