package apperrors

import "errors"

// Not-found sentinels. Lookups return these instead of a nil model so callers
// can branch with errors.Is.
var (
	ErrStudentNotFound       = errors.New("student not found")
	ErrContactNotFound       = errors.New("contact not found")
	ErrMedicalRecordNotFound = errors.New("medical record not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrGuardianChildNotFound = errors.New("guardian link not found")
)

// Authentication errors
var (
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Unit of work errors
var (
	ErrUnitOfWorkClosed = errors.New("unit of work already finished")
)

// IsNotFound reports whether err is any of the entity not-found sentinels.
func IsNotFound(err error) bool {
	return Is(err, ErrStudentNotFound,
		ErrContactNotFound,
		ErrMedicalRecordNotFound,
		ErrUserNotFound,
		ErrGuardianChildNotFound,
	)
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError attaches a message and context to an underlying sentinel
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewNotFoundError wraps a not-found sentinel with the key that was looked up.
func NewNotFoundError(sentinel error, key string, value interface{}) *CustomError {
	return NewCustomError(sentinel, sentinel.Error()).
		WithDetails(map[string]interface{}{key: value})
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
