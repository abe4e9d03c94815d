package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Supported values for DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds everything the server reads from the environment.
type Config struct {
	AppPort        string
	DBDriver       string
	DatabaseDSN    string
	RabbitMQURL    string
	AuthEnabled    bool
	JWTSecret      string
	ForbiddenWords []string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "katalog.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("FORBIDDEN_WORDS", "")
}

// New returns a viper instance with defaults set that reads the environment.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return v
}

// Load reads a Config out of v and checks it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppPort:        v.GetString("APP_PORT"),
		DBDriver:       strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		RabbitMQURL:    strings.TrimSpace(v.GetString("RABBITMQ_URL")),
		AuthEnabled:    v.GetBool("AUTH_ENABLED"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		ForbiddenWords: splitList(v.GetString("FORBIDDEN_WORDS")),
	}

	switch cfg.DBDriver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.DBDriver != DriverMemory && cfg.DatabaseDSN == "" {
		return Config{}, fmt.Errorf("DATABASE_DSN is required for driver %s", cfg.DBDriver)
	}
	if cfg.AuthEnabled && cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required when AUTH_ENABLED is set")
	}
	return cfg, nil
}

// HistoryEnabled reports whether product events should be published.
func (c Config) HistoryEnabled() bool {
	return c.RabbitMQURL != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
