package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/yigit/schoolrecords/internal/app/repositories"
	"github.com/yigit/schoolrecords/internal/pkg/apperrors"
	"github.com/yigit/schoolrecords/internal/pkg/auth"
	"github.com/yigit/schoolrecords/internal/pkg/logger"
)

// DefaultTransactionTimeout applies when the caller's context has no deadline
const DefaultTransactionTimeout = 30 * time.Second

// Store owns the pool and hands out repositories, either autocommit or
// bound to a unit of work.
type Store struct {
	pool   Pool
	hasher auth.PasswordHasher
	repos  *repositories.Repositories
}

// NewStore creates a Store on pool
func NewStore(pool Pool, hasher auth.PasswordHasher) *Store {
	return &Store{
		pool:   pool,
		hasher: hasher,
		repos:  repositories.NewRepositories(pool, hasher),
	}
}

// Repos returns repositories that run each statement in its own implicit
// transaction. Use Begin or WithTransaction to group writes.
func (s *Store) Repos() *repositories.Repositories {
	return s.repos
}

// Ping checks the pool can reach the database
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the pool
func (s *Store) Close() {
	s.pool.Close()
}

// UnitOfWork is an open transaction. Writes made through Repos are staged
// until Commit; Rollback discards them.
type UnitOfWork struct {
	ID    string
	Repos *repositories.Repositories

	tx   pgx.Tx
	log  zerolog.Logger
	done bool
}

// Begin opens a unit of work. The caller must Commit or Rollback it;
// deferring Rollback right after Begin is safe because Rollback after
// Commit does nothing.
func (s *Store) Begin(ctx context.Context) (*UnitOfWork, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	id := uuid.NewString()
	uow := &UnitOfWork{
		ID:    id,
		Repos: repositories.NewRepositories(tx, s.hasher),
		tx:    tx,
		log:   logger.WithField("uowID", id),
	}
	uow.log.Debug().Msg("Unit of work started")
	return uow, nil
}

// Commit makes the staged writes durable
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.done {
		return apperrors.ErrUnitOfWorkClosed
	}
	u.done = true

	if err := u.tx.Commit(ctx); err != nil {
		u.log.Error().Err(err).Msg("Failed to commit unit of work")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.log.Debug().Msg("Unit of work committed")
	return nil
}

// Rollback discards the staged writes. It is a no-op once the unit of work
// has finished.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.done {
		return nil
	}
	u.done = true

	if err := u.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		u.log.Error().Err(err).Msg("Failed to rollback unit of work")
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.log.Debug().Msg("Unit of work rolled back")
	return nil
}

// TransactionFn is a function that executes within a unit of work
type TransactionFn func(ctx context.Context, repos *repositories.Repositories) error

// WithTransaction runs fn in a unit of work, committing when fn returns nil
// and rolling back on error or panic.
func (s *Store) WithTransaction(ctx context.Context, fn TransactionFn) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()
	}

	uow, err := s.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = uow.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(ctx, uow.Repos); err != nil {
		if rbErr := uow.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %w)", err, rbErr)
		}
		return err
	}

	return uow.Commit(ctx)
}
