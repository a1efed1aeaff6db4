package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/schoolrecords/internal/app/models"
	"github.com/yigit/schoolrecords/internal/pkg/apperrors"
	"github.com/yigit/schoolrecords/internal/pkg/dberrors"
	"github.com/yigit/schoolrecords/internal/pkg/logger"
)

// MedicalRecordRepository handles medical record database operations
type MedicalRecordRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewMedicalRecordRepository creates a new MedicalRecordRepository
func NewMedicalRecordRepository(db DBTX) *MedicalRecordRepository {
	return &MedicalRecordRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// GetByStudentID retrieves the record keyed by studentID
func (r *MedicalRecordRepository) GetByStudentID(ctx context.Context, studentID int64) (*models.MedicalRecord, error) {
	sql, args, err := r.sb.Select(models.MedicalRecordColumns...).
		From(models.TableMedicalRecords).
		Where(squirrel.Eq{"student_id": studentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get medical record query: %w", err)
	}

	var record models.MedicalRecord
	if err := r.db.QueryRow(ctx, sql, args...).Scan(record.ScanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Debug().Int64("studentID", studentID).Msg("Medical record not found")
			return nil, apperrors.NewNotFoundError(apperrors.ErrMedicalRecordNotFound, "student_id", studentID)
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error scanning medical record row")
		return nil, fmt.Errorf("error retrieving medical record: %w", err)
	}

	return &record, nil
}

// Add inserts record. A second record for the same student violates the
// primary key and the error is returned as-is.
func (r *MedicalRecordRepository) Add(ctx context.Context, record *models.MedicalRecord) error {
	sql, args, err := r.sb.Insert(models.TableMedicalRecords).
		Columns(models.MedicalRecordColumns...).
		Values(record.Values()...).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add medical record query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			logger.Warn().Int64("studentID", record.StudentID).Msg("Student already has a medical record")
		} else {
			logger.Error().Err(err).Int64("studentID", record.StudentID).Msg("Error executing add medical record query")
		}
		return fmt.Errorf("error adding medical record: %w", err)
	}

	logger.Info().Int64("studentID", record.StudentID).Msg("Medical record added")
	return nil
}

// Update overwrites every measurement and vaccination column
func (r *MedicalRecordRepository) Update(ctx context.Context, record *models.MedicalRecord) error {
	sql, args, err := r.sb.Update(models.TableMedicalRecords).
		Set("student_weight", record.StudentWeight).
		Set("student_height", record.StudentHeight).
		Set("polio", record.Polio).
		Set("mmr", record.MMR).
		Set("covid1", record.Covid1).
		Set("covid2", record.Covid2).
		Set("flu", record.Flu).
		Set("tb", record.TB).
		Set("tetanus", record.Tetanus).
		Where(squirrel.Eq{"student_id": record.StudentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update medical record query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", record.StudentID).Msg("Error updating medical record")
		return fmt.Errorf("error updating medical record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMedicalRecordNotFound
	}

	return nil
}
