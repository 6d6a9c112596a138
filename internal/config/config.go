package config

import (
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // reference zones must resolve without system tzdata

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the capture API.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port the HTTP API listens on.
// - TimeZone: Name of the reference zone used to interpret date filters.
// - Location: TimeZone resolved to a *time.Location.
// - CORS: Cross-origin settings handed to the HTTP boundary.
// - ShutdownTimeout: How long in-flight requests may take once a stop signal arrives.
// - Database: Storage settings.
type Config struct {
	Env             string         `yaml:"env"`              // Env is the current environment: local, development, production.
	Port            int            `yaml:"http.port"`        // Port is the HTTP API port.
	TimeZone        string         `yaml:"timezone"`         // TimeZone is the IANA name of the reference zone.
	Location        *time.Location `yaml:"-"`                // Location is the loaded reference zone.
	CORS            CORSConfig     `yaml:"cors"`             // CORS holds cross-origin settings.
	ShutdownTimeout time.Duration  `yaml:"shutdown_timeout"` // ShutdownTimeout bounds graceful shutdown.
	Database        DatabaseConfig `yaml:"database"`         // Database holds the storage configuration.
}

// CORSConfig lists the cross-origin policy of the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"` // "*" allows any origin.
	AllowedMethods []string `yaml:"allowed_methods"`
}

// DatabaseConfig struct holds the configuration details for the capture storage.
type DatabaseConfig struct {
	Driver     string `yaml:"driver"`      // Driver is postgres or sqlite.
	Host       string `yaml:"host"`        // Host is the database server address.
	Port       string `yaml:"port"`        // Port is the database server port.
	User       string `yaml:"user"`        // User is the database user.
	Password   string `yaml:"password"`    // Password is the database user's password.
	Name       string `yaml:"db_name"`     // Name is the name of the database.
	SQLitePath string `yaml:"sqlite_path"` // SQLitePath is the database file for the sqlite driver.
}

// Supported storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// bindings maps configuration keys to the environment variables that override them.
var bindings = map[string]string{
	"env":                  "WAYPOINT_ENV",
	"http.port":            "WAYPOINT_HTTP_PORT",
	"timezone":             "WAYPOINT_TIMEZONE",
	"cors.allowed_origins": "WAYPOINT_CORS_ORIGINS",
	"shutdown_timeout":     "WAYPOINT_SHUTDOWN_TIMEOUT",
	"database.driver":      "DB_DRIVER",
	"database.host":        "DB_HOST",
	"database.port":        "DB_PORT",
	"database.user":        "DB_USERNAME",
	"database.password":    "DB_PASSWORD",
	"database.db_name":     "DB_NAME",
	"database.sqlite_path": "DB_SQLITE_PATH",
}

// MustLoad reads the configuration from the environment (and an optional .env file),
// layered over an optional YAML file named by WAYPOINT_CONFIG. It panics on invalid values.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("env", "production")
	v.SetDefault("http.port", "3000")
	v.SetDefault("timezone", "America/Bogota")
	v.SetDefault("cors.allowed_origins", "*")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sqlite_path", "waypoint.db")

	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			panic("failed to bind configuration key " + key)
		}
	}

	if path, ok := os.LookupEnv("WAYPOINT_CONFIG"); ok && path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	port, err := strconv.Atoi(v.GetString("http.port"))
	if err != nil {
		panic("failed to parse http port from configuration")
	}

	shutdownTimeout, err := time.ParseDuration(v.GetString("shutdown_timeout"))
	if err != nil {
		panic("failed to parse shutdown timeout from configuration")
	}

	timeZone := v.GetString("timezone")
	location, err := time.LoadLocation(timeZone)
	if err != nil {
		panic("failed to load time zone from configuration")
	}

	driver := strings.ToLower(v.GetString("database.driver"))
	if driver != DriverPostgres && driver != DriverSQLite {
		panic("unsupported database driver, must be postgres or sqlite")
	}

	return &Config{
		Env:             v.GetString("env"),
		Port:            port,
		TimeZone:        timeZone,
		Location:        location,
		ShutdownTimeout: shutdownTimeout,
		CORS: CORSConfig{
			AllowedOrigins: splitList(strings.Join(v.GetStringSlice("cors.allowed_origins"), ",")),
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		},
		Database: DatabaseConfig{
			Driver:     driver,
			Host:       v.GetString("database.host"),
			Port:       v.GetString("database.port"),
			User:       v.GetString("database.user"),
			Password:   v.GetString("database.password"),
			Name:       v.GetString("database.db_name"),
			SQLitePath: v.GetString("database.sqlite_path"),
		},
	}
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
