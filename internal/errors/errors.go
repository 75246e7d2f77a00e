package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when a referenced entity is not found.
// It aborts the enclosing transaction with no partial writes.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "with this name"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a request validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ConfigurationError represents an invalid recurrence or schedule
// configuration. Surfaced to the caller, never retried automatically.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// PreconditionError represents an operation attempted against incomplete
// configuration, e.g. generating tasks with an empty roster. Distinct from
// validation failures so callers can route users to the missing step.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// StorageError wraps an underlying transaction failure. The enclosing
// transaction has been rolled back; the caller may retry.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %v", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Entity Not Found Errors
var (
	ErrWorkOrderNotFound     = &NotFoundError{Entity: "work order"}
	ErrScheduleNotFound      = &NotFoundError{Entity: "work order schedule"}
	ErrAssigneeNotFound      = &NotFoundError{Entity: "work order assignee"}
	ErrTaskNotFound          = &NotFoundError{Entity: "cleaning task"}
	ErrTeamNotFound          = &NotFoundError{Entity: "team"}
	ErrMemberNotFound        = &NotFoundError{Entity: "member"}
	ErrFrequencyNotFound     = &NotFoundError{Entity: "frequency"}
	ErrAssetTaskTypeNotFound = &NotFoundError{Entity: "asset task type"}
	ErrEvidenceLevelNotFound = &NotFoundError{Entity: "evidence level"}
)

// Already Exists Errors
var (
	ErrWorkOrderExists = &AlreadyExistsError{Entity: "work order", Context: "with this name"}
)

// Configuration Errors
var (
	ErrDayStepExceedsRange = &ConfigurationError{Message: "frequency day step exceeds the scheduled date range"}
	ErrInvalidHourWindow   = &ConfigurationError{Message: "valid hour window is out of bounds"}
	ErrInvalidFrequency    = &ConfigurationError{Message: "invalid frequency configuration"}
)

// Precondition Errors
var (
	ErrRosterEmpty        = &PreconditionError{Message: "work order has no cleaners or no inspectors assigned"}
	ErrScheduleIncomplete = &PreconditionError{Message: "work order schedule is not fully configured"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// IsPrecondition checks if an error is a PreconditionError
func IsPrecondition(err error) bool {
	var preErr *PreconditionError
	return errors.As(err, &preErr)
}

// IsStorage checks if an error is a StorageError
func IsStorage(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(message string) error {
	return &ConfigurationError{Message: message}
}

// NewPreconditionError creates a new PreconditionError
func NewPreconditionError(message string) error {
	return &PreconditionError{Message: message}
}

// WrapStorage wraps a transaction failure as a StorageError
func WrapStorage(err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Err: err}
}
