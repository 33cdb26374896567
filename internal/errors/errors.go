package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrListNotFound is returned when a candidate list is not found
	ErrListNotFound = errors.New("list not found")

	// ErrListAlreadyExists is returned when trying to create a list that already exists
	ErrListAlreadyExists = errors.New("list already exists")

	// ErrSessionNotFound is returned when a typing session is not found or has expired
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrSameName is returned when trying to rename to the same name
	ErrSameName = errors.New("same name provided")
)

// ListNotFoundError represents a list not found error with context
type ListNotFoundError struct {
	ListName string
}

func (e *ListNotFoundError) Error() string {
	return fmt.Sprintf("list named '%s' not found", e.ListName)
}

func (e *ListNotFoundError) Is(target error) bool {
	return target == ErrListNotFound
}

// NewListNotFoundError creates a new ListNotFoundError
func NewListNotFoundError(listName string) *ListNotFoundError {
	return &ListNotFoundError{ListName: listName}
}

// ListAlreadyExistsError represents a list already exists error with context
type ListAlreadyExistsError struct {
	ListName string
}

func (e *ListAlreadyExistsError) Error() string {
	return fmt.Sprintf("list named '%s' already exists", e.ListName)
}

func (e *ListAlreadyExistsError) Is(target error) bool {
	return target == ErrListAlreadyExists
}

// NewListAlreadyExistsError creates a new ListAlreadyExistsError
func NewListAlreadyExistsError(listName string) *ListAlreadyExistsError {
	return &ListAlreadyExistsError{ListName: listName}
}

// SessionNotFoundError represents a session not found error with context
type SessionNotFoundError struct {
	SessionID string
	ListName  string
}

func (e *SessionNotFoundError) Error() string {
	if e.ListName != "" {
		return fmt.Sprintf("session with ID '%s' not found in list '%s'", e.SessionID, e.ListName)
	}
	return fmt.Sprintf("session with ID '%s' not found", e.SessionID)
}

func (e *SessionNotFoundError) Is(target error) bool {
	return target == ErrSessionNotFound
}

// NewSessionNotFoundError creates a new SessionNotFoundError
func NewSessionNotFoundError(sessionID string, listName ...string) *SessionNotFoundError {
	err := &SessionNotFoundError{SessionID: sessionID}
	if len(listName) > 0 {
		err.ListName = listName[0]
	}
	return err
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// SameNameError represents an error when trying to rename to the same name
type SameNameError struct {
	Name string
}

func (e *SameNameError) Error() string {
	return fmt.Sprintf("new name '%s' is the same as the current name", e.Name)
}

func (e *SameNameError) Is(target error) bool {
	return target == ErrSameName
}

// NewSameNameError creates a new SameNameError
func NewSameNameError(name string) *SameNameError {
	return &SameNameError{Name: name}
}
