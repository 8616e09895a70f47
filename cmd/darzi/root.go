package main

import (
	"fmt"

	"github.com/powerman/structlog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/darzi/internal/paths"
	"github.com/mesh-intelligence/darzi/internal/session"
	"github.com/mesh-intelligence/darzi/internal/sqlite"
	"github.com/mesh-intelligence/darzi/pkg/darzi"
)

var log = structlog.New(structlog.KeyUnit, "cli")

// app holds global flag values and the state shared by subcommands for one
// invocation.
type app struct {
	flagConfigDir string
	flagDataDir   string

	configDir string
	v         *viper.Viper

	store *sqlite.Backend
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:     "darzi",
		Short:   "Darzi keeps a tailoring shop's customer measurements",
		Long:    "Darzi stores shalwar kameez and waskat measurement profiles in a local\nSQLite file, with JSON backup and merge-only restore.",
		Version: darzi.Version,

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}

	root.PersistentFlags().StringVar(&a.flagConfigDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/darzi)")
	root.PersistentFlags().StringVar(&a.flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.darzi-db)")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newListCmd(a),
		newCountCmd(a),
		newGetCmd(a),
		newAddCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newPasswdCmd(a),
		newBiometricCmd(a),
		newBackupCmd(a),
		newRestoreCmd(a),
		newExportCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) loadConfig() error {
	configDir, err := paths.ResolveConfigDir(a.flagConfigDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	a.configDir = configDir
	a.v = v
	structlog.DefaultLogger.SetLogLevel(structlog.ParseLevel(logLevelName(v.GetString(cfgKeyLogLevel))))
	return nil
}

// dataDir resolves the data directory: --data-dir > data_dir > DARZI_DATA_DIR > default.
func (a *app) dataDir() (string, error) {
	return paths.ResolveDataDir(a.flagDataDir, a.v.GetString(cfgKeyDataDir))
}

// openStore opens the record store once per invocation.
func (a *app) openStore() (*sqlite.Backend, error) {
	if a.store != nil {
		return a.store, nil
	}
	dataDir, err := a.dataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	store := sqlite.NewBackend()
	if err := store.Open(storeConfig(a.v, dataDir)); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.store = store
	return store, nil
}

// openFlags opens the session flag file in the data directory.
func (a *app) openFlags() (*session.Flags, error) {
	dataDir, err := a.dataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	return session.Open(dataDir)
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}
