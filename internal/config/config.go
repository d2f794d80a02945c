package config

import (
	"fmt"
	"os"
)

// Config holds runtime configuration, loaded from the environment.
type Config struct {
	Logger     LoggerConfig
	Postgres   PostgresConfig
	Clickhouse ClickhouseConfig
	Report     ReportConfig
	Metrics    MetricsConfig
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ClickhouseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type ReportConfig struct {
	OutputDir string
}

type MetricsConfig struct {
	Addr string
}

// LoadEnv builds the configuration from environment variables with
// development defaults. Call godotenv.Load first if a .env file is used.
func LoadEnv() *Config {
	return &Config{
		Logger: LoggerConfig{
			Level:    getEnv("LOGGER_LEVEL", "info"),
			Encoding: getEnv("LOGGER_ENCODING", "console"),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "retail"),
			Password: getEnv("POSTGRES_PASSWORD", "retail"),
			DBName:   getEnv("POSTGRES_DB", "retail_metrics"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Clickhouse: ClickhouseConfig{
			Host:     getEnv("CLICKHOUSE_HOST", "localhost"),
			Port:     getEnv("CLICKHOUSE_PORT", "9000"),
			User:     getEnv("CLICKHOUSE_USER", "default"),
			Password: getEnv("CLICKHOUSE_PASSWORD", ""),
			DBName:   getEnv("CLICKHOUSE_DB", "retail_metrics"),
		},
		Report: ReportConfig{
			OutputDir: getEnv("REPORT_OUTPUT_DIR", "docs"),
		},
		Metrics: MetricsConfig{
			Addr: getEnv("METRICS_ADDR", ""),
		},
	}
}

// DSN renders the pgx connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// DSN renders the native-protocol ClickHouse connection string.
func (c ClickhouseConfig) DSN() string {
	return fmt.Sprintf("clickhouse://%s:%s@%s:%s/%s",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
