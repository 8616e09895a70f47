package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/darzi/pkg/types"
)

// The admin password is stored and compared as plain text, matching the
// data files the shop already has.
// TODO: hash the stored password once existing devices have a migration path.

// VerifyCredential reports whether candidate equals the stored password.
func (b *Backend) VerifyCredential(candidate string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.opened {
		return false, types.ErrStoreClosed
	}

	stored, err := retryValue(b, "login", func() (string, error) {
		return b.storedPassword(b.db)
	})
	if err != nil {
		return false, err
	}
	return candidate != "" && candidate == stored, nil
}

// ChangeCredential replaces the password after checking current against the
// stored value.
func (b *Backend) ChangeCredential(current, next string) error {
	if next == "" {
		return types.ErrEmptyCredential
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.opened {
		return types.ErrStoreClosed
	}

	return b.withRetry("change password", func() error {
		tx, err := b.db.Beginx()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		stored, err := b.storedPassword(tx)
		if err != nil {
			return err
		}
		if current != stored {
			return types.ErrCredentialMismatch
		}
		res, err := tx.Exec("UPDATE admin SET password = ? WHERE id = ?", next, adminID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n != 1 {
			return fmt.Errorf("update password: expected 1 row affected, got %d", n)
		}
		return tx.Commit()
	})
}

// queryer is satisfied by *sqlx.DB and *sqlx.Tx.
type queryer interface {
	Get(dest any, query string, args ...any) error
}

func (b *Backend) storedPassword(q queryer) (string, error) {
	var password string
	err := q.Get(&password, "SELECT password FROM admin WHERE id = ?", adminID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", types.ErrNoCredential
	}
	return password, err
}
