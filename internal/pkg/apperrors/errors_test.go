package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrStudentNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", ErrMedicalRecordNotFound)))
	assert.True(t, IsNotFound(NewNotFoundError(ErrContactNotFound, "contactID", int64(3))))
	assert.False(t, IsNotFound(ErrInvalidCredentials))
	assert.False(t, IsNotFound(nil))
}

func TestCustomError(t *testing.T) {
	err := NewNotFoundError(ErrStudentNotFound, "studentID", int64(9))

	assert.Equal(t, "student not found", err.Error())
	assert.True(t, errors.Is(err, ErrStudentNotFound))
	assert.Equal(t, int64(9), err.Details["studentID"])

	bare := &CustomError{}
	assert.Equal(t, "unknown error", bare.Error())
	assert.Equal(t, "boom", (&CustomError{Err: errors.New("boom")}).Error())
}

func TestIs(t *testing.T) {
	other := errors.New("other")
	assert.True(t, Is(ErrUserNotFound, other, ErrUserNotFound))
	assert.False(t, Is(ErrUserNotFound, other))
}
