package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/schoolrecords/internal/app/models"
	"github.com/yigit/schoolrecords/internal/pkg/apperrors"
	"github.com/yigit/schoolrecords/internal/pkg/auth"
	"github.com/yigit/schoolrecords/internal/pkg/dberrors"
	"github.com/yigit/schoolrecords/internal/pkg/logger"
)

// UserRepository handles guardian account database operations
type UserRepository struct {
	db     DBTX
	sb     squirrel.StatementBuilderType
	hasher auth.PasswordHasher
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX, hasher auth.PasswordHasher) *UserRepository {
	return &UserRepository{
		db:     db,
		sb:     statementBuilder(),
		hasher: hasher,
	}
}

// Signup hashes password and inserts a guardian account. Duplicate username
// or email surface as the driver's unique-violation error.
func (r *UserRepository) Signup(ctx context.Context, username, password, firstName, lastName, email, phone string) (*models.User, error) {
	hashedPassword, err := r.hasher.Hash(password)
	if err != nil {
		logger.Error().Err(err).Str("username", username).Msg("Error hashing password")
		return nil, err
	}

	user := &models.User{
		Username:   username,
		Password:   hashedPassword,
		FirstName:  firstName,
		LastName:   lastName,
		Email:      email,
		Phone:      phone,
		IsGuardian: true,
	}

	sql, args, err := r.sb.Insert(models.TableUsers).
		Columns(models.UserColumns...).
		Values(user.Username, user.Password, user.FirstName, user.LastName, user.Email, user.Phone, user.IsGuardian).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build signup query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			logger.Warn().Str("username", username).Str("constraint", dberrors.ConstraintName(err)).Msg("Username or email already taken")
		} else {
			logger.Error().Err(err).Str("username", username).Msg("Error executing signup query")
		}
		return nil, fmt.Errorf("error signing up user: %w", err)
	}

	logger.Info().Str("username", username).Msg("User signed up")
	return user, nil
}

// Login returns the user when password matches. Unknown usernames and wrong
// passwords both yield apperrors.ErrInvalidCredentials after a bcrypt
// comparison, so neither the error nor the timing reveals which one it was.
func (r *UserRepository) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := r.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			r.hasher.CompareDummy(password)
			logger.Warn().Msg("Login failed")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !r.hasher.Compare(user.Password, password) {
		logger.Warn().Msg("Login failed")
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// GetByUsername retrieves a user by primary key
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	sql, args, err := r.sb.Select(models.UserColumns...).
		From(models.TableUsers).
		Where(squirrel.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	var user models.User
	if err := r.db.QueryRow(ctx, sql, args...).Scan(user.ScanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(apperrors.ErrUserNotFound, "username", username)
		}
		logger.Error().Err(err).Str("username", username).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	sql, args, err := r.sb.Select("1").
		From(models.TableUsers).
		Where(squirrel.Eq{"email": email}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build email exists query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Msg("Error checking email existence")
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// Delete removes the account; its guardian links cascade.
func (r *UserRepository) Delete(ctx context.Context, username string) error {
	sql, args, err := r.sb.Delete(models.TableUsers).
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("username", username).Msg("Error deleting user")
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	logger.Info().Str("username", username).Msg("User deleted")
	return nil
}
