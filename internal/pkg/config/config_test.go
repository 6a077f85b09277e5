package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Fraud.HistoryCount)
	assert.Equal(t, float64(50), cfg.Fraud.VariationPercent)
	assert.Equal(t, float64(24), cfg.Fraud.TimeframeHours)
	assert.Equal(t, 10, cfg.Fraud.InvoiceCountLimit)
	assert.Equal(t, 5*time.Second, cfg.Fraud.AnalysisTimeout)
}

func TestLoad_CanonicalEnvNames(t *testing.T) {
	t.Setenv("INVOICES_HISTORY_COUNT", "5")
	t.Setenv("SUSPICIOUS_VARIATION_PERCENTAGE", "25")
	t.Setenv("SUSPICIOUS_TIMEFRAME_HOURS", "12")
	t.Setenv("SUSPICIOUS_INVOICES_COUNT", "3")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Fraud.HistoryCount)
	assert.Equal(t, float64(25), cfg.Fraud.VariationPercent)
	assert.Equal(t, float64(12), cfg.Fraud.TimeframeHours)
	assert.Equal(t, 3, cfg.Fraud.InvoiceCountLimit)
}

func TestLoad_PrefixedEnvNames(t *testing.T) {
	t.Setenv("ANTIFRAUD_SERVER_PORT", "9090")
	t.Setenv("ANTIFRAUD_FRAUD_HISTORY_COUNT", "7")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 7, cfg.Fraud.HistoryCount)
}

func TestFraudConfig_Timeframe(t *testing.T) {
	cfg := FraudConfig{TimeframeHours: 1.5}
	assert.Equal(t, 90*time.Minute, cfg.Timeframe())
}

func TestFraudConfig_Variation(t *testing.T) {
	cfg := FraudConfig{VariationPercent: 50}
	assert.True(t, cfg.Variation().Equal(decimal.NewFromInt(50)))
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"negative history count", func(c *Config) { c.Fraud.HistoryCount = -1 }},
		{"negative variation", func(c *Config) { c.Fraud.VariationPercent = -1 }},
		{"zero timeframe", func(c *Config) { c.Fraud.TimeframeHours = 0 }},
		{"negative invoice count limit", func(c *Config) { c.Fraud.InvoiceCountLimit = -1 }},
		{"zero analysis timeout", func(c *Config) { c.Fraud.AnalysisTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_ZeroHistoryCountAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fraud.HistoryCount = 0
	cfg.Fraud.InvoiceCountLimit = 0
	assert.NoError(t, cfg.Validate())
}
