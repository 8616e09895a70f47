package types

import (
	"errors"
	"fmt"
)

// Input errors. Returned synchronously and never ignored.
var (
	ErrInvalidKind = errors.New("invalid record kind")
	ErrInvalidID   = errors.New("invalid record ID")
	ErrInvalidData = errors.New("invalid record data")
)

// ErrNotFound is returned by Get only. Update and Delete report an absent
// row as zero rows affected instead.
var ErrNotFound = errors.New("record not found")

// Credential errors.
var (
	ErrCredentialMismatch = errors.New("incorrect current password")
	ErrEmptyCredential    = errors.New("password must not be empty")
	ErrNoCredential       = errors.New("admin credential not initialized")
)

// ErrMalformedBackup wraps every structural problem found while validating a
// backup document.
var ErrMalformedBackup = errors.New("malformed backup document")

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")
	ErrAlreadyOpen = errors.New("store is already open")
)

// TransientError marks a storage failure caused by the engine briefly holding
// a lock on the database file. Only these errors are retried.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: database locked: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// IsTransient reports whether err, or anything it wraps, is a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
