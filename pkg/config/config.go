package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App      App      `yaml:"app"`
	Database Database `yaml:"database"`
	Allows   Allows   `yaml:"allows"`
	Log      Log      `yaml:"log"`
	Tracker  Tracker  `yaml:"tracker"`
}

type App struct {
	Name string `yaml:"name"`
	Port string `yaml:"port"`
	Host string `yaml:"host"`
	Mode string `yaml:"mode"`
}

// Database selects where the durable connection status records live.
// Driver is "postgres" or "sqlite"; Path is only used by sqlite.
type Database struct {
	Driver string `yaml:"driver"`
	Host   string `yaml:"host"`
	Port   string `yaml:"port"`
	User   string `yaml:"user"`
	Pass   string `yaml:"pass"`
	Name   string `yaml:"name"`
	Path   string `yaml:"path"`
}

type Allows struct {
	Methods []string `yaml:"methods"`
	Origins []string `yaml:"origins"`
	Headers []string `yaml:"headers"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Tracker holds the simulated connect/extract durations.
type Tracker struct {
	ConnectDelay time.Duration `yaml:"connect_delay"`
	ExtractDelay time.Duration `yaml:"extract_delay"`
	// RestoreOnStart replays stored selections that never reached the connected state.
	RestoreOnStart *bool `yaml:"restore_on_start"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// InitConfig reads ./config.yaml (or CONFIG_PATH), applies environment
// overrides and fills defaults. A missing file is not an error.
func InitConfig() (*Config, error) {
	var configs Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config.yaml"
	}
	file_name, _ := filepath.Abs(path)
	yaml_file, err := os.ReadFile(file_name)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(yaml_file, &configs); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", file_name, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("config: read %s: %w", file_name, err)
	}

	if err := configs.applyEnv(); err != nil {
		return nil, err
	}
	configs.applyDefaults()

	if err := configs.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &configs, nil
}

func (c *Config) applyEnv() error {
	// Database
	if dbDriver := os.Getenv("DB_DRIVER"); dbDriver != "" {
		c.Database.Driver = dbDriver
	}
	if dbHost := os.Getenv("DB_HOST"); dbHost != "" {
		c.Database.Host = dbHost
	}
	if dbPort := os.Getenv("DB_PORT"); dbPort != "" {
		c.Database.Port = dbPort
	}
	if dbUser := os.Getenv("DB_USER"); dbUser != "" {
		c.Database.User = dbUser
	}
	if dbPassword := os.Getenv("DB_PASSWORD"); dbPassword != "" {
		c.Database.Pass = dbPassword
	}
	if dbName := os.Getenv("DB_NAME"); dbName != "" {
		c.Database.Name = dbName
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		c.Database.Path = dbPath
	}

	// App
	if appHost := os.Getenv("APP_HOST"); appHost != "" {
		c.App.Host = appHost
	}
	if appPort := os.Getenv("APP_PORT"); appPort != "" {
		c.App.Port = appPort
	}
	if appName := os.Getenv("APP_NAME"); appName != "" {
		c.App.Name = appName
	}
	if appMode := os.Getenv("APP_MODE"); appMode != "" {
		c.App.Mode = appMode
	}

	// Log
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		c.Log.Format = format
	}

	// Tracker
	if v := os.Getenv("TRACKER_CONNECT_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: TRACKER_CONNECT_DELAY: %w", err)
		}
		c.Tracker.ConnectDelay = d
	}
	if v := os.Getenv("TRACKER_EXTRACT_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: TRACKER_EXTRACT_DELAY: %w", err)
		}
		c.Tracker.ExtractDelay = d
	}
	if v := os.Getenv("TRACKER_RESTORE_ON_START"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: TRACKER_RESTORE_ON_START: %w", err)
		}
		c.Tracker.RestoreOnStart = &b
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "platform-admin"
	}
	if c.App.Port == "" {
		c.App.Port = "8000"
	}
	if c.App.Mode == "" {
		c.App.Mode = "debug"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Database.Driver == DriverSQLite && c.Database.Path == "" {
		c.Database.Path = "platform-admin.db"
	}
	if len(c.Allows.Origins) == 0 {
		c.Allows.Origins = []string{"*"}
	}
	if len(c.Allows.Methods) == 0 {
		c.Allows.Methods = []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"}
	}
	if len(c.Allows.Headers) == 0 {
		c.Allows.Headers = []string{"Content-Type", "Authorization", "X-Requested-With", "Origin", "Accept"}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Tracker.ConnectDelay == 0 {
		c.Tracker.ConnectDelay = 2000 * time.Millisecond
	}
	if c.Tracker.ExtractDelay == 0 {
		c.Tracker.ExtractDelay = 3000 * time.Millisecond
	}
	if c.Tracker.RestoreOnStart == nil {
		restore := true
		c.Tracker.RestoreOnStart = &restore
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("database.driver %q: must be %q or %q", c.Database.Driver, DriverPostgres, DriverSQLite)
	}
	if c.Tracker.ConnectDelay < 0 || c.Tracker.ExtractDelay < 0 {
		return errors.New("tracker delays must not be negative")
	}
	return nil
}

// ShouldRestore reports whether stored selections are replayed at startup.
func (t Tracker) ShouldRestore() bool {
	return t.RestoreOnStart == nil || *t.RestoreOnStart
}
