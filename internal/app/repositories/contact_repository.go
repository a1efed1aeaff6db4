package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/schoolrecords/internal/app/models"
	"github.com/yigit/schoolrecords/internal/pkg/apperrors"
	"github.com/yigit/schoolrecords/internal/pkg/logger"
)

// ContactRepository handles emergency contact database operations
type ContactRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db DBTX) *ContactRepository {
	return &ContactRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// GetByStudentID returns all contacts of a student in insertion order.
// A student without contacts yields an empty slice, not an error.
func (r *ContactRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Contact, error) {
	sql, args, err := r.sb.Select(models.ContactColumns...).
		From(models.TableContacts).
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get contacts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error querying contacts")
		return nil, fmt.Errorf("error retrieving contacts: %w", err)
	}

	contacts, err := collectRows[models.Contact](rows)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error scanning contact rows")
		return nil, fmt.Errorf("error scanning contacts: %w", err)
	}

	return contacts, nil
}

// GetByID retrieves a single contact by its own id
func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	sql, args, err := r.sb.Select(models.ContactColumns...).
		From(models.TableContacts).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get contact query: %w", err)
	}

	var contact models.Contact
	if err := r.db.QueryRow(ctx, sql, args...).Scan(contact.ScanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(apperrors.ErrContactNotFound, "id", id)
		}
		logger.Error().Err(err).Int64("contactID", id).Msg("Error scanning contact row")
		return nil, fmt.Errorf("error retrieving contact: %w", err)
	}

	return &contact, nil
}

// Add inserts contact and fills in its generated id
func (r *ContactRepository) Add(ctx context.Context, contact *models.Contact) error {
	sql, args, err := r.sb.Insert(models.TableContacts).
		Columns("student_id", "name", "email", "phone", "other", "relation", "is_primary").
		Values(contact.StudentID, contact.Name, contact.Email, contact.Phone, contact.Other, contact.Relation, contact.IsPrimary).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add contact query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&contact.ID); err != nil {
		logger.Error().Err(err).Str("name", contact.Name).Msg("Error executing add contact query")
		return fmt.Errorf("error adding contact: %w", err)
	}

	logger.Info().Int64("contactID", contact.ID).Msg("Contact added")
	return nil
}

// Update writes every column of contact back to its row
func (r *ContactRepository) Update(ctx context.Context, contact *models.Contact) error {
	sql, args, err := r.sb.Update(models.TableContacts).
		Set("student_id", contact.StudentID).
		Set("name", contact.Name).
		Set("email", contact.Email).
		Set("phone", contact.Phone).
		Set("other", contact.Other).
		Set("relation", contact.Relation).
		Set("is_primary", contact.IsPrimary).
		Where(squirrel.Eq{"id": contact.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update contact query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("contactID", contact.ID).Msg("Error updating contact")
		return fmt.Errorf("error updating contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrContactNotFound
	}

	return nil
}

// Delete removes a contact by its own id
func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete(models.TableContacts).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete contact query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("contactID", id).Msg("Error deleting contact")
		return fmt.Errorf("error deleting contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrContactNotFound
	}

	return nil
}
