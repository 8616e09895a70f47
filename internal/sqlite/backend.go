package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/powerman/structlog"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/darzi/pkg/types"
)

var log = structlog.New(structlog.KeyUnit, "sqlite")

// driverName is the database/sql name registered by modernc.org/sqlite.
const driverName = "sqlite"

// Backend implements types.Store on a single SQLite file.
type Backend struct {
	mu     sync.RWMutex
	opened bool
	config types.Config
	path   string
	db     *sqlx.DB

	now   func() time.Time
	sleep func(time.Duration)
}

var _ types.Store = (*Backend)(nil)

// NewBackend creates a new SQLite backend instance.
// The backend is closed; call Open with a Config to use it.
func NewBackend() *Backend {
	return &Backend{
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Open validates config, creates DataDir if needed, opens the database file
// and initializes the schema. Concurrent callers serialize on the backend
// lock and wait for the first open to finish. A caller whose config matches
// the open store then shares it; any other config gets ErrAlreadyOpen.
func (b *Backend) Open(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := config.Validate(); err != nil {
		return err
	}
	config = config.WithDefaults()

	if b.opened {
		if config == b.config {
			return nil
		}
		return types.ErrAlreadyOpen
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	path := filepath.Join(dataDir, config.DBFile)
	db, err := openDB(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	b.db = db
	b.config = config
	b.path = path

	if err := b.initializeLocked(); err != nil {
		db.Close()
		b.db = nil
		return fmt.Errorf("initialize schema: %w", err)
	}

	b.opened = true
	log.Debug("database opened", "path", path)
	return nil
}

// Close releases the connection. After Close, all operations return
// ErrStoreClosed. Close is idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.opened {
		return nil
	}
	b.opened = false
	if b.db != nil {
		err := b.db.Close()
		b.db = nil
		if err != nil {
			return err
		}
	}
	return nil
}

// Path returns the database file path, empty before Open.
func (b *Backend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// Initialize creates missing tables and seeds the admin credential if the
// admin table is empty. Open already calls it; calling it again is harmless.
func (b *Backend) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.opened {
		return types.ErrStoreClosed
	}
	return b.initializeLocked()
}

func (b *Backend) initializeLocked() error {
	return b.withRetry("initialize", func() error {
		tx, err := b.db.Beginx()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		for _, ddl := range schemaDDL {
			if _, err := tx.Exec(ddl); err != nil {
				return err
			}
		}

		var n int
		if err := tx.Get(&n, "SELECT COUNT(*) FROM admin"); err != nil {
			return err
		}
		if n == 0 {
			if _, err := tx.Exec("INSERT INTO admin (id, password) VALUES (?, ?)",
				adminID, b.config.DefaultPassword); err != nil {
				return err
			}
			log.Info("default admin password initialized")
		}
		return tx.Commit()
	})
}

// openDB opens path with the pragmas the store relies on. One connection is
// enough for a single foreground writer and keeps SQLite from contending
// with itself.
func openDB(path string) (*sqlx.DB, error) {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"
	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxIdleConns(1)
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
