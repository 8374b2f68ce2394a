package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables read by the CLI. Flags take precedence over them.
const (
	EnvDB         = "MATCH3_DB"
	EnvConfig     = "MATCH3_CONFIG"
	EnvDifficulty = "MATCH3_DIFFICULTY"
	EnvSSHAddr    = "MATCH3_SSH_ADDR"
	EnvHTTPAddr   = "MATCH3_HTTP_ADDR"
	EnvLogLevel   = "MATCH3_LOG_LEVEL"
)

// Env holds process-level settings.
type Env struct {
	DBPath     string
	ConfigPath string
	Difficulty string
	SSHAddr    string
	HTTPAddr   string
	LogLevel   string
}

// LoadEnv reads .env files (default ./.env) into the process environment and
// returns the resolved settings. Missing files are fine; variables already
// set in the environment win over file values.
func LoadEnv(files ...string) (Env, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Env{}, fmt.Errorf("config: loading env: %w", err)
	}

	return Env{
		DBPath:     getEnv(EnvDB, filepath.Join(DataDir(), "match3.db")),
		ConfigPath: os.Getenv(EnvConfig),
		Difficulty: getEnv(EnvDifficulty, string(DifficultyNormal)),
		SSHAddr:    getEnv(EnvSSHAddr, ":2222"),
		HTTPAddr:   getEnv(EnvHTTPAddr, ":8080"),
		LogLevel:   getEnv(EnvLogLevel, "info"),
	}, nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
