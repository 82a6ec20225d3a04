package main

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error lets the sentinels below be declared as constants.
type Error string

func (err Error) Error() string { return string(err) }

const (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound Error = "not found"
	// ErrDuplicateUsername is returned when the username is already registered.
	ErrDuplicateUsername Error = "username already exists"
	// ErrUnknownAccount is returned when a message references a missing account.
	ErrUnknownAccount Error = "account does not exist"
	// ErrInvalid is wrapped by every field validation failure.
	ErrInvalid Error = "invalid input"
)

// StorageError is an underlying database failure, kept apart from ErrNotFound
// so callers can tell "no such row" from "the store is broken".
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalid, format, args...)
}

func isStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
