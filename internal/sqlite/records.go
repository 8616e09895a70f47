package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/darzi/pkg/types"
)

// Fetch returns the records of kind, filtered by search when it is not empty.
func (b *Backend) Fetch(kind types.Kind, search string) ([]types.Record, error) {
	switch kind {
	case types.KindCustomer:
		rows, err := b.FetchCustomers(search)
		if err != nil {
			return nil, err
		}
		out := make([]types.Record, len(rows))
		for i := range rows {
			out[i] = &rows[i]
		}
		return out, nil
	case types.KindWaskat:
		rows, err := b.FetchWaskats(search)
		if err != nil {
			return nil, err
		}
		out := make([]types.Record, len(rows))
		for i := range rows {
			out[i] = &rows[i]
		}
		return out, nil
	default:
		return nil, types.ErrInvalidKind
	}
}

// FetchCustomers returns customers in id order. The result is never nil.
func (b *Backend) FetchCustomers(search string) ([]types.Customer, error) {
	return fetchRows[types.Customer](b, customerTable, search)
}

// FetchWaskats returns waskat records in id order. The result is never nil.
func (b *Backend) FetchWaskats(search string) ([]types.Waskat, error) {
	return fetchRows[types.Waskat](b, waskatTable, search)
}

func fetchRows[T any](b *Backend, t *recordTable, search string) ([]T, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.opened {
		return nil, types.ErrStoreClosed
	}

	rows, err := retryValue(b, "fetch "+t.name, func() ([]T, error) {
		var rows []T
		var err error
		if search == "" {
			err = b.db.Select(&rows, t.selectAll)
		} else {
			p := likePattern(search)
			err = b.db.Select(&rows, t.search, p, p)
		}
		return rows, err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", t.name, err)
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// Count returns the number of records of kind without fetching them.
func (b *Backend) Count(kind types.Kind) (int, error) {
	t, err := tableFor(kind)
	if err != nil {
		return 0, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.opened {
		return 0, types.ErrStoreClosed
	}

	n, err := retryValue(b, "count "+t.name, func() (int, error) {
		var n int
		err := b.db.Get(&n, t.count)
		return n, err
	})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", t.name, err)
	}
	return n, nil
}

// Get returns the record of kind with id, or ErrNotFound.
func (b *Backend) Get(kind types.Kind, id int64) (types.Record, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, types.ErrInvalidID
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.opened {
		return nil, types.ErrStoreClosed
	}

	rec := kind.New()
	err = b.withRetry("get "+t.name, func() error {
		return b.db.Get(rec, t.get, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", t.name, id, err)
	}
	return rec, nil
}

// Exists reports whether a record of kind with id is present.
func (b *Backend) Exists(kind types.Kind, id int64) (bool, error) {
	t, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.opened {
		return false, types.ErrStoreClosed
	}

	ok, err := retryValue(b, "exists "+t.name, func() (bool, error) {
		var ok bool
		err := b.db.Get(&ok, t.exists, id)
		return ok, err
	})
	if err != nil {
		return false, fmt.Errorf("check %s %d: %w", t.name, id, err)
	}
	return ok, nil
}

// Insert writes rec under a new id and returns it. Missing text fields are
// stored as empty strings and an empty registration date becomes today.
func (b *Backend) Insert(rec types.Record) (int64, error) {
	t, arg, err := b.prepare(rec)
	if err != nil {
		return 0, err
	}
	arg.Normalize(b.now())

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.opened {
		return 0, types.ErrStoreClosed
	}

	id, err := retryValue(b, "insert "+t.name, func() (int64, error) {
		res, err := b.db.NamedExec(t.insert, arg)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	})
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", t.name, err)
	}
	return id, nil
}

// InsertWithID writes rec under its own id. It returns false, and writes
// nothing, when a record with that id already exists.
func (b *Backend) InsertWithID(rec types.Record) (bool, error) {
	t, arg, err := b.prepare(rec)
	if err != nil {
		return false, err
	}
	if arg.RecordID() <= 0 {
		return false, types.ErrInvalidID
	}
	arg.Normalize(b.now())

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.opened {
		return false, types.ErrStoreClosed
	}

	n, err := retryValue(b, "insert "+t.name, func() (int64, error) {
		res, err := b.db.NamedExec(t.insertWithID, arg)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	})
	if err != nil {
		return false, fmt.Errorf("insert %s %d: %w", t.name, arg.RecordID(), err)
	}
	return n > 0, nil
}

// Update overwrites every column of the record with id using rec's fields.
// It returns the number of rows affected; zero means there was no such record.
func (b *Backend) Update(id int64, rec types.Record) (int64, error) {
	if id <= 0 {
		return 0, types.ErrInvalidID
	}
	t, arg, err := b.prepare(rec)
	if err != nil {
		return 0, err
	}
	setID(arg, id)

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.opened {
		return 0, types.ErrStoreClosed
	}

	n, err := retryValue(b, "update "+t.name, func() (int64, error) {
		res, err := b.db.NamedExec(t.update, arg)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	})
	if err != nil {
		return 0, fmt.Errorf("update %s %d: %w", t.name, id, err)
	}
	return n, nil
}

// Delete removes the record of kind with id. Deleting an id that does not
// exist is not an error; it reports false.
func (b *Backend) Delete(kind types.Kind, id int64) (bool, error) {
	t, err := tableFor(kind)
	if err != nil {
		return false, err
	}
	if id <= 0 {
		return false, types.ErrInvalidID
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.opened {
		return false, types.ErrStoreClosed
	}

	n, err := retryValue(b, "delete "+t.name, func() (int64, error) {
		res, err := b.db.Exec(t.delete, id)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	})
	if err != nil {
		return false, fmt.Errorf("delete %s %d: %w", t.name, id, err)
	}
	return n > 0, nil
}

// prepare resolves rec's table and returns a private copy of rec so that
// defaults applied on write never leak back into the caller's value.
func (b *Backend) prepare(rec types.Record) (*recordTable, types.Record, error) {
	switch r := rec.(type) {
	case *types.Customer:
		if r == nil {
			return nil, nil, types.ErrInvalidData
		}
		cp := *r
		return customerTable, &cp, nil
	case *types.Waskat:
		if r == nil {
			return nil, nil, types.ErrInvalidData
		}
		cp := *r
		return waskatTable, &cp, nil
	default:
		return nil, nil, types.ErrInvalidData
	}
}

func setID(rec types.Record, id int64) {
	switch r := rec.(type) {
	case *types.Customer:
		r.ID = id
	case *types.Waskat:
		r.ID = id
	}
}
