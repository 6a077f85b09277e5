package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()

	setDefaults(v, cfg)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// Config file not found is ok - we use defaults and env vars
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix("ANTIFRAUD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The fraud settings also answer to their canonical variable names.
	bindFraudEnv(v)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func bindFraudEnv(v *viper.Viper) {
	v.BindEnv("fraud.history_count", "ANTIFRAUD_FRAUD_HISTORY_COUNT", "INVOICES_HISTORY_COUNT")
	v.BindEnv("fraud.variation_percent", "ANTIFRAUD_FRAUD_VARIATION_PERCENT", "SUSPICIOUS_VARIATION_PERCENTAGE")
	v.BindEnv("fraud.timeframe_hours", "ANTIFRAUD_FRAUD_TIMEFRAME_HOURS", "SUSPICIOUS_TIMEFRAME_HOURS")
	v.BindEnv("fraud.invoice_count_limit", "ANTIFRAUD_FRAUD_INVOICE_COUNT_LIMIT", "SUSPICIOUS_INVOICES_COUNT")
}

func setDefaults(v *viper.Viper, cfg *Config) {
	// Server defaults
	v.SetDefault("server.host", cfg.Server.Host)
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", cfg.Server.ShutdownTimeout)

	// Database defaults
	v.SetDefault("database.host", cfg.Database.Host)
	v.SetDefault("database.port", cfg.Database.Port)
	v.SetDefault("database.user", cfg.Database.User)
	v.SetDefault("database.name", cfg.Database.Name)
	v.SetDefault("database.ssl_mode", cfg.Database.SSLMode)
	v.SetDefault("database.max_open_conns", cfg.Database.MaxOpenConns)
	v.SetDefault("database.max_idle_conns", cfg.Database.MaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", cfg.Database.ConnMaxLifetime)

	// Redis defaults
	v.SetDefault("redis.host", cfg.Redis.Host)
	v.SetDefault("redis.port", cfg.Redis.Port)
	v.SetDefault("redis.db", cfg.Redis.DB)
	v.SetDefault("redis.pool_size", cfg.Redis.PoolSize)

	// Fraud defaults
	v.SetDefault("fraud.history_count", cfg.Fraud.HistoryCount)
	v.SetDefault("fraud.variation_percent", cfg.Fraud.VariationPercent)
	v.SetDefault("fraud.timeframe_hours", cfg.Fraud.TimeframeHours)
	v.SetDefault("fraud.invoice_count_limit", cfg.Fraud.InvoiceCountLimit)
	v.SetDefault("fraud.analysis_timeout", cfg.Fraud.AnalysisTimeout)

	// Log defaults
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
}
