package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string `toml:"server_port"`

	// DatabaseURL wins over the DB* parts when set. A value that is not a
	// postgres DSN is opened as a SQLite file.
	DatabaseURL string `toml:"database_url"`
	DBHost      string `toml:"db_host"`
	DBPort      string `toml:"db_port"`
	DBUser      string `toml:"db_user"`
	DBPassword  string `toml:"db_password"`
	DBName      string `toml:"db_name"`
	DBSSLMode   string `toml:"db_sslmode"`

	// RabbitURL is optional; without it the service runs without the broker.
	RabbitURL string `toml:"rabbitmq_url"`

	JWTSecret string        `toml:"jwt_secret"`
	JWTTTL    time.Duration `toml:"jwt_ttl"`

	CORSAllowedOrigins []string      `toml:"cors_allowed_origins"`
	RequestTimeout     time.Duration `toml:"request_timeout"`
	ShutdownTimeout    time.Duration `toml:"shutdown_timeout"`
}

func defaults() *Config {
	return &Config{
		ServerPort:         "8082",
		DBHost:             "localhost",
		DBPort:             "5432",
		DBUser:             "postgres",
		DBPassword:         "postgres",
		DBName:             "booking_db",
		DBSSLMode:          "disable",
		JWTTTL:             24 * time.Hour,
		CORSAllowedOrigins: []string{"*"},
		RequestTimeout:     10 * time.Second,
		ShutdownTimeout:    10 * time.Second,
	}
}

// Load reads ./.env when present, then the TOML file named by CONFIG_FILE,
// then the environment.
func Load() (*Config, error) {
	return LoadWithFiles(".env", "")
}

// LoadWithFiles is Load with explicit file locations. An empty configFile
// falls back to CONFIG_FILE.
func LoadWithFiles(envFile, configFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := defaults()

	if configFile == "" {
		configFile = os.Getenv("CONFIG_FILE")
	}
	if configFile != "" {
		if _, err := toml.DecodeFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configFile, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.ServerPort, "SERVER_PORT")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.DBHost, "DB_HOST")
	setString(&c.DBPort, "DB_PORT")
	setString(&c.DBUser, "DB_USER")
	setString(&c.DBPassword, "DB_PASSWORD")
	setString(&c.DBName, "DB_NAME")
	setString(&c.DBSSLMode, "DB_SSLMODE")
	setString(&c.RabbitURL, "RABBITMQ_URL")
	setString(&c.JWTSecret, "JWT_SECRET")

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.CORSAllowedOrigins = splitList(v)
	}

	return errors.Join(
		setDuration(&c.JWTTTL, "JWT_TTL"),
		setDuration(&c.RequestTimeout, "REQUEST_TIMEOUT"),
		setDuration(&c.ShutdownTimeout, "SHUTDOWN_TIMEOUT"),
	)
}

// Validate checks if all required fields are set.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.DatabaseURL == "" && c.DBHost == "" {
		return fmt.Errorf("DATABASE_URL or DB_HOST is required")
	}
	for name, d := range map[string]time.Duration{
		"JWT_TTL":          c.JWTTTL,
		"REQUEST_TIMEOUT":  c.RequestTimeout,
		"SHUTDOWN_TIMEOUT": c.ShutdownTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}

func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: invalid duration %q", key, v)
	}
	*dst = d
	return nil
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
