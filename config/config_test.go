package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "sqlite", cfg.Ledger.Type)
	assert.Equal(t, "Unknown", cfg.Extract.DefaultLot)
	assert.Equal(t, 0.30, cfg.Analytics.TaxRate)
	assert.Equal(t, "Strong Uptrend Confirmation", cfg.Insight.BuyProfit)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:   "memory ledger needs no path",
			mutate: func(c *Config) { c.Ledger = LedgerConfig{Type: "memory"} },
		},
		{
			name:   "unknown ledger type",
			mutate: func(c *Config) { c.Ledger.Type = "postgres" },
			errMsg: "ledger.type must be",
		},
		{
			name:   "sqlite without path",
			mutate: func(c *Config) { c.Ledger.DBPath = "" },
			errMsg: "ledger.db_path required for sqlite type",
		},
		{
			name:   "gorm without path",
			mutate: func(c *Config) { c.Ledger = LedgerConfig{Type: "gorm"} },
			errMsg: "ledger.db_path required for gorm type",
		},
		{
			name:   "csv without path",
			mutate: func(c *Config) { c.Ledger = LedgerConfig{Type: "csv", DBPath: "x.db"} },
			errMsg: "ledger.csv_path required",
		},
		{
			name:   "empty default lot",
			mutate: func(c *Config) { c.Extract.DefaultLot = "" },
			errMsg: "extract.default_lot is required",
		},
		{
			name:   "tax rate above one",
			mutate: func(c *Config) { c.Analytics.TaxRate = 1.5 },
			errMsg: "analytics.tax_rate must be between 0 and 1",
		},
		{
			name:   "negative tax rate",
			mutate: func(c *Config) { c.Analytics.TaxRate = -0.1 },
			errMsg: "analytics.tax_rate must be between 0 and 1",
		},
		{
			name:   "missing ocr command",
			mutate: func(c *Config) { c.OCR.Command = "" },
			errMsg: "ocr.command is required",
		},
		{
			name:   "bad log encoding",
			mutate: func(c *Config) { c.Log.Encoding = "xml" },
			errMsg: "log.encoding must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLedgerPath(t *testing.T) {
	assert.Equal(t, "a.db", LedgerConfig{Type: "sqlite", DBPath: "a.db", CSVPath: "b.csv"}.Path())
	assert.Equal(t, "b.csv", LedgerConfig{Type: "csv", DBPath: "a.db", CSVPath: "b.csv"}.Path())
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Ledger = LedgerConfig{Type: "csv", CSVPath: "./trade_data.csv"}
			cfg.Extract.DefaultLot = "0.01"
			cfg.Insight.Loss = "Loss Trade - Check Entry Confirmation"
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Ledger, loaded.Ledger)
			assert.Equal(t, "0.01", loaded.Extract.DefaultLot)
			assert.Equal(t, cfg.Insight, loaded.Insight)
			assert.Equal(t, cfg.Analytics.TaxRate, loaded.Analytics.TaxRate)
			assert.Equal(t, cfg.OCR, loaded.OCR)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ledger:\n  type: memory\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Ledger.Type)
	assert.Equal(t, 0.30, cfg.Analytics.TaxRate)
	assert.Equal(t, "tesseract", cfg.OCR.Command)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analytics:\n  tax_rate: 3\n"), 0o644))
	_, err = LoadFromFile(path)
	assert.ErrorContains(t, err, "invalid config")
}
