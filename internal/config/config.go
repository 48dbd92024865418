// Package config loads the YAML configuration file and applies
// defaults. Everything here has a sensible zero-config default so the
// binary runs with no file at all.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"tqm/internal/storage"
)

// DefaultPassphrase is hashed at startup when no passphrase is
// configured. Override with TQM_PASSPHRASE or passphrase_hash.
const DefaultPassphrase = "changeme"

// Config is the top-level application configuration.
type Config struct {
	Port           int           `yaml:"port"`
	PassphraseHash string        `yaml:"passphrase_hash"`
	Storage        StorageConfig `yaml:"storage"`
}

// StorageConfig names the storage namespaces and locations. StoreName
// and KeyPrefix together identify the persisted entries, so existing
// data survives renames of everything else.
type StorageConfig struct {
	StoreName   string `yaml:"store_name"`
	KeyPrefix   string `yaml:"key_prefix"`
	DBPath      string `yaml:"db_path"`
	LegacyDir   string `yaml:"legacy_dir"`
	FileQuota   int64  `yaml:"file_quota"`
	SQLiteQuota int64  `yaml:"sqlite_quota"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port: 9000,
		Storage: StorageConfig{
			StoreName:   "tqm-db",
			KeyPrefix:   "tqm",
			DBPath:      "tqm.db",
			LegacyDir:   "legacy_data",
			FileQuota:   storage.DefaultFileQuota,
			SQLiteQuota: storage.DefaultSQLiteQuota,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path or
// a missing file yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
