package types

import (
	"errors"
	"time"
)

// Config holds backend selection and parameters for Store.Open.
type Config struct {
	Backend         string        `json:"backend" yaml:"backend"`
	DataDir         string        `json:"data_dir" yaml:"data_dir"`
	DBFile          string        `json:"db_file" yaml:"db_file"`
	DefaultPassword string        `json:"default_password" yaml:"default_password"`
	RetryAttempts   int           `json:"retry_attempts" yaml:"retry_attempts"`
	RetryDelay      time.Duration `json:"retry_delay" yaml:"retry_delay"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Defaults applied by WithDefaults.
const (
	DefaultDBFile        = "darzi.db"
	DefaultPassword      = "esmat"
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = 100 * time.Millisecond
)

// Config validation errors.
var (
	ErrBackendEmpty         = errors.New("backend must not be empty")
	ErrBackendUnknown       = errors.New("unknown backend")
	ErrRetryAttemptsInvalid = errors.New("retry attempts must not be negative")
	ErrRetryDelayInvalid    = errors.New("retry delay must not be negative")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// WithDefaults returns a copy of c with zero fields replaced by defaults.
// Backend is left alone so that an empty backend still fails Validate.
func (c Config) WithDefaults() Config {
	if c.DBFile == "" {
		c.DBFile = DefaultDBFile
	}
	if c.DefaultPassword == "" {
		c.DefaultPassword = DefaultPassword
	}
	if c.RetryAttempts == 0 {
		c.RetryAttempts = DefaultRetryAttempts
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	return c
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.RetryAttempts < 0 {
		return ErrRetryAttemptsInvalid
	}
	if c.RetryDelay < 0 {
		return ErrRetryDelayInvalid
	}
	return nil
}
