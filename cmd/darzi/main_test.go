package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/powerman/structlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/darzi/pkg/types"
)

type env struct {
	configDir string
	dataDir   string
}

func setupEnv(t *testing.T) env {
	t.Helper()
	root := t.TempDir()
	return env{
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
}

// runCLI executes darzi in-process with stdin and returns stdout.
func (e env) runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func (e env) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.runCLI(t, "", args...)
	require.NoError(t, err, "darzi %v", args)
	return out
}

func TestInit(t *testing.T) {
	e := setupEnv(t)

	out := e.mustRun(t, "init")
	assert.Contains(t, out, "darzi initialized")
	assert.FileExists(t, filepath.Join(e.configDir, "config.yaml"))
	assert.FileExists(t, filepath.Join(e.dataDir, types.DefaultDBFile))
	assert.FileExists(t, filepath.Join(e.dataDir, "flags.json"))

	// Idempotent.
	e.mustRun(t, "init")
}

func TestRecordCommands(t *testing.T) {
	e := setupEnv(t)

	out := e.mustRun(t, "add", "customer", `{"name":"Ali","phoneNumber":"0700000000","qad":"40"}`)
	assert.Equal(t, "1\n", out)

	out = e.mustRun(t, "list", "customer", "--search", "Ali")
	var list []types.Customer
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "40", list[0].Qad)

	out = e.mustRun(t, "get", "customer", "1")
	var c types.Customer
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, "Ali", c.Name)

	assert.Equal(t, "1\n", e.mustRun(t, "update", "customer", "1", `{"name":"Ali Khan"}`))
	assert.Equal(t, "0\n", e.mustRun(t, "update", "customer", "9", `{"name":"nobody"}`))

	assert.Equal(t, "1\n", e.mustRun(t, "count", "customer"))
	assert.Equal(t, "1\n", e.mustRun(t, "delete", "customer", "1"))
	assert.Equal(t, "0\n", e.mustRun(t, "delete", "customer", "1"))
	assert.Equal(t, "0\n", e.mustRun(t, "count", "customer"))
	assert.Equal(t, "[]\n", e.mustRun(t, "list", "customer"))
}

func TestUserErrors(t *testing.T) {
	e := setupEnv(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown kind", []string{"list", "admin"}, types.ErrInvalidKind},
		{"bad id", []string{"get", "waskat", "x"}, types.ErrInvalidID},
		{"missing record", []string{"get", "waskat", "5"}, types.ErrNotFound},
		{"unknown field", []string{"add", "waskat", `{"nmae":"typo"}`}, types.ErrInvalidData},
		{"wrong password", []string{"passwd", "--current", "wrong-current", "--new", "new"}, types.ErrCredentialMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.runCLI(t, "", tt.args...)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, exitUserError, exitCode(err))
		})
	}
}

func TestLoginAndPasswd(t *testing.T) {
	e := setupEnv(t)

	_, err := e.runCLI(t, "", "login", "--password", "nope")
	assert.ErrorIs(t, err, types.ErrCredentialMismatch)

	out, err := e.runCLI(t, "esmat\n", "login")
	require.NoError(t, err)
	assert.Equal(t, "logged in\n", out)

	e.mustRun(t, "passwd", "--current", "esmat", "--new", "dokan")
	_, err = e.runCLI(t, "", "login", "--password", "esmat")
	assert.ErrorIs(t, err, types.ErrCredentialMismatch)
	e.mustRun(t, "login", "--password", "dokan")

	assert.Equal(t, "logged out\n", e.mustRun(t, "logout"))
}

func TestBiometric(t *testing.T) {
	e := setupEnv(t)

	assert.Equal(t, "biometric off\n", e.mustRun(t, "biometric", "status"))
	assert.Equal(t, "biometric on\n", e.mustRun(t, "biometric", "on"))
	assert.Equal(t, "biometric on\n", e.mustRun(t, "biometric", "status"))
	assert.Equal(t, "biometric off\n", e.mustRun(t, "biometric", "off"))

	_, err := e.runCLI(t, "", "biometric", "maybe")
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestBackupRestore(t *testing.T) {
	e := setupEnv(t)
	e.mustRun(t, "add", "waskat", `{"name":"Karim","kamar":"34"}`)

	outDir := t.TempDir()
	out := e.mustRun(t, "backup", "--out", outDir)
	assert.Contains(t, out, "1 waskat")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	file := filepath.Join(outDir, entries[0].Name())
	assert.True(t, strings.HasPrefix(entries[0].Name(), "backup_"))

	out = e.mustRun(t, "restore", file)
	assert.Equal(t, "customers: 0 inserted, 0 errors\nwaskat: 0 inserted, 0 errors\n", out)

	other := setupEnv(t)
	out = other.mustRun(t, "restore", file)
	assert.Equal(t, "customers: 0 inserted, 0 errors\nwaskat: 1 inserted, 0 errors\n", out)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"customers": {}}`), 0o644))
	_, err = other.runCLI(t, "", "restore", bad)
	assert.ErrorIs(t, err, types.ErrMalformedBackup)
}

func TestExportCSV(t *testing.T) {
	e := setupEnv(t)
	e.mustRun(t, "add", "customer", `{"name":"Ali","registrationDate":"2024-01-01"}`)

	out := e.mustRun(t, "export", "customer")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,name,"))
	assert.True(t, strings.HasPrefix(lines[1], "1,Ali,"))

	path := filepath.Join(t.TempDir(), "customers.csv")
	e.mustRun(t, "export", "customer", "--out", path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, out, string(data))
}

func TestVersion(t *testing.T) {
	e := setupEnv(t)
	out := e.mustRun(t, "version")
	assert.True(t, strings.HasPrefix(out, "darzi "))
	assert.NoDirExists(t, e.configDir, "version reads no configuration")
}

func TestConfigFile(t *testing.T) {
	e := setupEnv(t)
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"),
		[]byte("backend: sqlite\ndb_file: shop.db\n"), 0o644))

	e.mustRun(t, "init")
	assert.FileExists(t, filepath.Join(e.dataDir, "shop.db"))
}

func TestEnvOverridesConfig(t *testing.T) {
	e := setupEnv(t)
	t.Setenv("DARZI_DB_FILE", "fromenv.db")

	e.mustRun(t, "init")
	assert.FileExists(t, filepath.Join(e.dataDir, "fromenv.db"))
}

func TestDotEnv(t *testing.T) {
	e := setupEnv(t)
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, ".env"), []byte("DARZI_DEFAULT_PASSWORD=fromdotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("DARZI_DEFAULT_PASSWORD") })

	e.mustRun(t, "login", "--password", "fromdotenv")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(usagef("bad")))
	assert.Equal(t, exitSysError, exitCode(types.ErrStoreClosed))
	assert.Equal(t, exitSysError, exitCode(&types.TransientError{Op: "x", Err: assert.AnError}))
}

func TestLogLevelName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "dbg"},
		{"DBG", "dbg"},
		{"info", "inf"},
		{"warn", "WRN"},
		{"warning", "WRN"},
		{"error", "ERR"},
		{"", "inf"},
		{"bogus", "inf"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, structlog.ParseLevel(logLevelName(tt.in)).String())
		})
	}
}

func TestLogLevelFromConfig(t *testing.T) {
	e := setupEnv(t)
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"),
		[]byte("backend: sqlite\nlog_level: warn\n"), 0o644))
	t.Cleanup(func() { structlog.DefaultLogger.SetLogLevel(structlog.INF) })

	e.mustRun(t, "count", "customer")
	assert.False(t, structlog.DefaultLogger.IsInfo())

	e2 := setupEnv(t)
	e2.mustRun(t, "count", "customer")
	assert.True(t, structlog.DefaultLogger.IsInfo())
	assert.False(t, structlog.DefaultLogger.IsDebug())
}
