package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"

	"pokedex/pkg/logging"
)

// DriverName is go-sqlite3 with the casefold(text) SQL function added,
// used for Unicode case-insensitive matching in queries.
const DriverName = "sqlite3_pokedex"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("casefold", casefold, true)
		},
	})
}

// casefold gets a fresh caser per call; casers keep state.
func casefold(s string) string {
	return cases.Fold().String(s)
}

type Config struct {
	Path          string
	BusyTimeoutMs int
}

// DefaultConfig reads db.path / db.busy_timeout_ms from viper
// (POKEDEX_DB_PATH, POKEDEX_DB_BUSY_TIMEOUT_MS), falling back to
// ~/.pokedex/data.db.
func DefaultConfig() Config {
	cfg := Config{
		Path:          viper.GetString("db.path"),
		BusyTimeoutMs: viper.GetInt("db.busy_timeout_ms"),
	}
	if cfg.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			home = "."
		}
		cfg.Path = filepath.Join(home, ".pokedex", "data.db")
	}
	if cfg.BusyTimeoutMs <= 0 {
		cfg.BusyTimeoutMs = 5000
	}
	return cfg
}

func EnsureDataDir(cfg Config) error {
	return os.MkdirAll(filepath.Dir(cfg.Path), 0o755)
}

// dsn sets the pragmas per connection so every pooled connection gets
// them. _txlock=immediate makes BeginTx take the write lock up front.
func dsn(cfg Config) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=%d&_txlock=immediate",
		cfg.Path, cfg.BusyTimeoutMs)
}

func Open(cfg Config) (*sql.DB, error) {
	if err := EnsureDataDir(cfg); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	db, err := sql.Open(DriverName, dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

func MustOpen(cfg Config) *sql.DB {
	db, err := Open(cfg)
	if err != nil {
		logging.Default().Fatal().Err(err).Str("path", cfg.Path).Msg("failed to open db")
	}
	return db
}
