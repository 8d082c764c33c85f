package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

type Ledger string

const (
	LedgerMemory = Ledger("memory")
	LedgerSQLite = Ledger("sqlite")
)

type Config struct {
	LogLevel     string `env:"STRUCTS_LOG_LEVEL" envDefault:"info"`
	Ledger       Ledger `env:"STRUCTS_LEDGER" envDefault:"memory"`
	SQLiteDSN    string `env:"STRUCTS_SQLITE_DSN" envDefault:"file::memory:?_foreign_keys=on"`
	PartialArray bool   `env:"STRUCTS_PARTIAL_ARRAY" envDefault:"false"`
}

// Parse loads Config from the environment.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.Ledger {
	case LedgerMemory, LedgerSQLite:
	default:
		return Config{}, fmt.Errorf("parse env: unknown ledger %q", cfg.Ledger)
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(c.LogLevel)
}
