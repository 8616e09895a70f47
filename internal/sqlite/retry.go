package sqlite

import (
	"errors"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/darzi/pkg/types"
)

// classify converts driver errors that mean "the file is locked right now"
// into *types.TransientError. Everything else is returned unchanged.
func classify(op string, err error) error {
	if err == nil || types.IsTransient(err) {
		return err
	}
	var se *msqlite.Error
	if errors.As(err, &se) {
		// Extended result codes keep the primary code in the low byte.
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return &types.TransientError{Op: op, Err: err}
		}
	}
	return err
}

// withRetry runs fn up to RetryAttempts times. Only transient lock errors are
// retried, with a linear backoff of RetryDelay*attempt between attempts.
func (b *Backend) withRetry(op string, fn func() error) error {
	attempts := b.config.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = classify(op, fn())
		if err == nil || !types.IsTransient(err) || attempt == attempts {
			return err
		}
		log.Warn("database locked, retrying", "op", op, "attempt", attempt, "max", attempts)
		b.sleep(b.config.RetryDelay * time.Duration(attempt))
	}
	return err
}

// retryValue is withRetry for operations that produce a value.
func retryValue[T any](b *Backend, op string, fn func() (T, error)) (T, error) {
	var out T
	err := b.withRetry(op, func() error {
		v, err := fn()
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}
