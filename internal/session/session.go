// Package session keeps the small set of device flags darzi remembers
// between runs: whether the shop owner is logged in, whether biometric
// unlock is enabled, and whether first-run setup has completed.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/powerman/structlog"

	"github.com/mesh-intelligence/darzi/internal/fileio"
)

var log = structlog.New(structlog.KeyUnit, "session")

// FileName is the flag file inside the data directory.
const FileName = "flags.json"

// Well-known keys.
const (
	KeyLoggedIn            = "isLoggedIn"
	KeyFingerprintEnabled  = "isFingerprintEnabled"
	KeyDatabaseInitialized = "isDatabaseInitialized"
	KeySessionID           = "sessionId"
)

// Flags is a string map persisted as JSON. Every Set and Delete rewrites the
// file atomically.
type Flags struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// Open loads dir/flags.json, or starts empty if the file does not exist.
func Open(dir string) (*Flags, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	f := &Flags{path: filepath.Join(dir, FileName), values: map[string]string{}}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &f.values); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.path, err)
		}
	}
	if f.values == nil {
		f.values = map[string]string{}
	}
	return f, nil
}

// Path returns the flag file location.
func (f *Flags) Path() string { return f.path }

// Get returns the value stored under key.
func (f *Flags) Get(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok
}

// Bool reports whether key holds a true value. Missing keys are false.
func (f *Flags) Bool(key string) bool {
	v, ok := f.Get(key)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// Keys returns the stored keys in sorted order.
func (f *Flags) Keys() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set stores value under key and persists the flags.
func (f *Flags) Set(key, value string) error {
	return f.update(func(m map[string]string) { m[key] = value })
}

// SetBool stores a boolean flag.
func (f *Flags) SetBool(key string, value bool) error {
	return f.Set(key, strconv.FormatBool(value))
}

// Delete removes the given keys and persists the flags.
func (f *Flags) Delete(keys ...string) error {
	return f.update(func(m map[string]string) {
		for _, k := range keys {
			delete(m, k)
		}
	})
}

func (f *Flags) update(change func(map[string]string)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := make(map[string]string, len(f.values)+1)
	for k, v := range f.values {
		next[k] = v
	}
	change(next)

	err := fileio.WriteAtomic(f.path, 0o600, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(next)
	})
	if err != nil {
		return fmt.Errorf("save flags: %w", err)
	}
	f.values = next
	return nil
}

// Login marks the session as logged in under a fresh session id and returns
// that id.
func Login(f *Flags) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	err = f.update(func(m map[string]string) {
		m[KeyLoggedIn] = "true"
		m[KeySessionID] = id.String()
	})
	if err != nil {
		return "", err
	}
	log.Debug("logged in", "session", id.String())
	return id.String(), nil
}

// Logout clears the login flag and session id.
func Logout(f *Flags) error {
	return f.Delete(KeyLoggedIn, KeySessionID)
}

// LoggedIn reports whether a login is recorded.
func LoggedIn(f *Flags) bool {
	return f.Bool(KeyLoggedIn)
}
