// Package config defines process configuration and the koanf-backed loaders
// for both the process settings and the roster/catalog data documents.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// RosterPath and CatalogPath point at the competitor and category
	// documents. Empty or unusable paths fall back to the built-in sets.
	RosterPath  string `koanf:"roster_path"`
	CatalogPath string `koanf:"catalog_path"`

	// Seed is used by the first simulation; each simulation adds one.
	Seed int64 `koanf:"seed"`

	// LedgerSize bounds how many applied result IDs are remembered.
	LedgerSize int `koanf:"ledger_size"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:   "info",
		LogFormat:  "text",
		Addr:       ":9080",
		Seed:       1,
		LedgerSize: 4096,
	}
}
