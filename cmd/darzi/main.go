// Package main provides the darzi CLI: a record keeper for a tailoring shop.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/powerman/structlog"

	"github.com/mesh-intelligence/darzi/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// usageError marks errors caused by how the command was invoked.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// exitCode maps an error to exitUserError when the user can fix it by
// changing the input, and exitSysError otherwise.
func exitCode(err error) int {
	var ue *usageError
	switch {
	case err == nil:
		return exitSuccess
	case errors.As(err, &ue),
		errors.Is(err, types.ErrInvalidKind),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrCredentialMismatch),
		errors.Is(err, types.ErrEmptyCredential),
		errors.Is(err, types.ErrMalformedBackup):
		return exitUserError
	default:
		return exitSysError
	}
}

func init() {
	structlog.DefaultLogger.
		SetLogLevel(structlog.INF).
		SetPrefixKeys(
			structlog.KeyApp, structlog.KeyPID, structlog.KeyLevel, structlog.KeyUnit, structlog.KeyTime,
		).
		SetDefaultKeyvals(
			structlog.KeyApp, filepath.Base(os.Args[0]),
			structlog.KeySource, structlog.Auto,
		).
		SetSuffixKeys(structlog.KeySource).
		SetKeysFormat(map[string]string{
			structlog.KeyTime:   " %[2]s",
			structlog.KeySource: " %6[2]s",
			structlog.KeyUnit:   " %6[2]s",
		}).SetTimeFormat("15:04:05")
}

// logLevelName normalizes the log_level setting to a name structlog.ParseLevel
// accepts. Empty or unknown names fall back to info.
func logLevelName(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug", "dbg":
		return "debug"
	case "warn", "warning", "wrn":
		return "warn"
	case "error", "err":
		return "error"
	default:
		return "info"
	}
}
