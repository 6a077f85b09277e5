package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Fraud    FraudConfig    `mapstructure:"fraud"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// FraudConfig holds the fraud rule settings. Each value is threaded into the
// matching specification at construction time.
type FraudConfig struct {
	// HistoryCount is the max number of prior invoices the unusual amount
	// rule averages over.
	HistoryCount int `mapstructure:"history_count"`

	// VariationPercent is the allowed percentage band above double the
	// historical average before an amount counts as unusual.
	VariationPercent float64 `mapstructure:"variation_percent"`

	// TimeframeHours is the trailing window for the frequency rule.
	TimeframeHours float64 `mapstructure:"timeframe_hours"`

	// InvoiceCountLimit is the count above which the frequency rule fires.
	InvoiceCountLimit int `mapstructure:"invoice_count_limit"`

	// AnalysisTimeout bounds one end-to-end invoice submission.
	AnalysisTimeout time.Duration `mapstructure:"analysis_timeout"`
}

// Timeframe returns the frequency rule window as a duration
func (c *FraudConfig) Timeframe() time.Duration {
	return time.Duration(c.TimeframeHours * float64(time.Hour))
}

// Variation returns the variation percentage as a decimal
func (c *FraudConfig) Variation() decimal.Decimal {
	return decimal.NewFromFloat(c.VariationPercent)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "antifraud_user",
			Password:        "",
			Name:            "antifraud",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			Host:         "localhost",
			Port:         6379,
			Password:     "",
			DB:           0,
			PoolSize:     10,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Fraud: FraudConfig{
			HistoryCount:      10,
			VariationPercent:  50,
			TimeframeHours:    24,
			InvoiceCountLimit: 10,
			AnalysisTimeout:   5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
