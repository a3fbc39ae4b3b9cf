// Package config handles configuration loading for the build orchestrator.
// It supports a workspace-level .mountaineer.yaml and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// ConfigFileName is the workspace configuration file. It is found by
// walking up from the working directory, and the directory holding it
// doubles as the workspace root.
const ConfigFileName = ".mountaineer.yaml"

// Config holds all configuration for the build orchestrator.
type Config struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Wait     WaitConfig     `mapstructure:"wait"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Log      LogConfig      `mapstructure:"log"`
}

// PostgresConfig locates the database the integration tests depend on.
type PostgresConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// WaitConfig bounds the readiness poll.
type WaitConfig struct {
	// TimeoutSeconds is the poll budget, one attempt per second.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	// Debounce is the quiet period after the last file event before the
	// checks run.
	Debounce time.Duration `mapstructure:"debounce"`
}

// LogConfig controls where debug logs go.
type LogConfig struct {
	// Dir holds debug logs. Relative paths resolve against the workspace
	// root.
	Dir string `mapstructure:"dir"`
}

// Load loads configuration for the workspace rooted at root.
// Precedence (highest to lowest):
// 1. Environment variables (MOUNTAINEER_*)
// 2. Workspace config (.mountaineer.yaml at the workspace root)
// 3. Built-in defaults
func Load(root string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	configPath := filepath.Join(root, ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading workspace config: %w", err)
		}
	}

	bindEnv(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// LoadFromPath loads configuration from a specific file (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// FindWorkspaceRoot walks up from dir looking for .mountaineer.yaml and
// returns the directory containing it. Without a config file anywhere
// above, dir itself is the workspace root, the way make treats the
// directory it is invoked from.
func FindWorkspaceRoot(dir string) string {
	current := dir
	for {
		if _, err := os.Stat(filepath.Join(current, ConfigFileName)); err == nil {
			return current
		}

		parent := filepath.Dir(current)
		if parent == current {
			return dir
		}
		current = parent
	}
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	// The workspace's compose file maps postgres to 5438 to stay clear of
	// a locally installed server on 5432.
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5438)

	v.SetDefault("wait.timeout_seconds", 30)

	v.SetDefault("watch.debounce", "500ms")

	v.SetDefault("log.dir", filepath.Join(".mountaineer", "logs"))
}

// bindEnv maps environment variable overrides onto config keys.
func bindEnv(v *viper.Viper) {
	v.BindEnv("postgres.host", "MOUNTAINEER_POSTGRES_HOST")
	v.BindEnv("postgres.port", "MOUNTAINEER_POSTGRES_PORT")
	v.BindEnv("wait.timeout_seconds", "MOUNTAINEER_WAIT_TIMEOUT")
	v.BindEnv("watch.debounce", "MOUNTAINEER_WATCH_DEBOUNCE")
	v.BindEnv("log.dir", "MOUNTAINEER_LOG_DIR")
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Postgres: PostgresConfig{
			Host: "localhost",
			Port: 5438,
		},
		Wait: WaitConfig{
			TimeoutSeconds: 30,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Log: LogConfig{
			Dir: filepath.Join(".mountaineer", "logs"),
		},
	}
}
