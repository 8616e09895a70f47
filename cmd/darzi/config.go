package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/darzi/internal/backup"
	"github.com/mesh-intelligence/darzi/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envFileName    = ".env"
	envPrefix      = "DARZI"
)

// Config keys.
const (
	cfgKeyBackend         = "backend"
	cfgKeyDataDir         = "data_dir"
	cfgKeyDBFile          = "db_file"
	cfgKeyDefaultPassword = "default_password"
	cfgKeyRetryAttempts   = "retry_attempts"
	cfgKeyRetryDelay      = "retry_delay"
	cfgKeyBackupDir       = "backup_dir"
	cfgKeyListenAddr      = "listen_addr"
	cfgKeyLogLevel        = "log_level"
)

const defaultListenAddr = "127.0.0.1:8080"

// envKeys are the settings DARZI_* variables may override. data_dir is left
// out because DARZI_DATA_DIR ranks below config.yaml and is handled by
// paths.ResolveDataDir.
var envKeys = []string{
	cfgKeyBackend, cfgKeyDBFile, cfgKeyDefaultPassword, cfgKeyRetryAttempts,
	cfgKeyRetryDelay, cfgKeyBackupDir, cfgKeyListenAddr, cfgKeyLogLevel,
	"s3.bucket", "s3.region", "s3.prefix", "s3.access_key_id", "s3.secret_access_key",
}

// configFile is the config.yaml written on first run.
type configFile struct {
	Backend       string `yaml:"backend"`
	DBFile        string `yaml:"db_file"`
	RetryAttempts int    `yaml:"retry_attempts"`
	RetryDelay    string `yaml:"retry_delay"`
	ListenAddr    string `yaml:"listen_addr"`
	LogLevel      string `yaml:"log_level"`
}

// loadConfig loads .env files, creates a default config.yaml if there is
// none, and reads it with Viper. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := loadEnvFiles(configDir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyDBFile, types.DefaultDBFile)
	v.SetDefault(cfgKeyDefaultPassword, types.DefaultPassword)
	v.SetDefault(cfgKeyRetryAttempts, types.DefaultRetryAttempts)
	v.SetDefault(cfgKeyRetryDelay, types.DefaultRetryDelay)
	v.SetDefault(cfgKeyListenAddr, defaultListenAddr)
	v.SetDefault(cfgKeyLogLevel, "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// loadEnvFiles loads .env from the config dir and the working directory.
// Variables already set in the environment win; missing files are skipped.
func loadEnvFiles(configDir string) error {
	for _, path := range []string{filepath.Join(configDir, envFileName), envFileName} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// ensureDefaultConfigFile writes config.yaml with default values when the
// config directory has none.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	cfg := configFile{
		Backend:       types.BackendSQLite,
		DBFile:        types.DefaultDBFile,
		RetryAttempts: types.DefaultRetryAttempts,
		RetryDelay:    types.DefaultRetryDelay.String(),
		ListenAddr:    defaultListenAddr,
		LogLevel:      "info",
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# darzi configuration\n# data_dir, backup_dir and s3.* are optional.\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}

// storeConfig builds the store configuration from v and the resolved data dir.
func storeConfig(v *viper.Viper, dataDir string) types.Config {
	return types.Config{
		Backend:         v.GetString(cfgKeyBackend),
		DataDir:         dataDir,
		DBFile:          v.GetString(cfgKeyDBFile),
		DefaultPassword: v.GetString(cfgKeyDefaultPassword),
		RetryAttempts:   v.GetInt(cfgKeyRetryAttempts),
		RetryDelay:      v.GetDuration(cfgKeyRetryDelay),
	}
}

// s3Config reads the s3 section.
func s3Config(v *viper.Viper) backup.S3Config {
	return backup.S3Config{
		Bucket:          v.GetString("s3.bucket"),
		Region:          v.GetString("s3.region"),
		Prefix:          v.GetString("s3.prefix"),
		AccessKeyID:     v.GetString("s3.access_key_id"),
		SecretAccessKey: v.GetString("s3.secret_access_key"),
	}
}
