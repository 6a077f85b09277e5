package config

import (
	"errors"
)

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	if c.Fraud.HistoryCount < 0 {
		return errors.New("history_count cannot be negative")
	}

	if c.Fraud.VariationPercent < 0 {
		return errors.New("variation_percent cannot be negative")
	}

	if c.Fraud.TimeframeHours <= 0 {
		return errors.New("timeframe_hours must be positive")
	}

	if c.Fraud.InvoiceCountLimit < 0 {
		return errors.New("invoice_count_limit cannot be negative")
	}

	if c.Fraud.AnalysisTimeout <= 0 {
		return errors.New("analysis_timeout must be positive")
	}

	return nil
}
