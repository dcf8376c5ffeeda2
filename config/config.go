package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradetrack/trade"
)

// Config is the complete tradetrack configuration.
type Config struct {
	Ledger    LedgerConfig    `json:"ledger" yaml:"ledger"`
	Extract   ExtractConfig   `json:"extract" yaml:"extract"`
	Insight   trade.Labels    `json:"insight" yaml:"insight"`
	Analytics AnalyticsConfig `json:"analytics" yaml:"analytics"`
	OCR       OCRConfig       `json:"ocr" yaml:"ocr"`
	Log       LogConfig       `json:"log" yaml:"log"`
}

// LedgerConfig selects where confirmed trades are stored.
type LedgerConfig struct {
	Type    string `json:"type" yaml:"type"` // "memory", "sqlite", "gorm" or "csv"
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	CSVPath string `json:"csv_path,omitempty" yaml:"csv_path,omitempty"`
}

// Path returns the storage location for the configured ledger type.
func (l LedgerConfig) Path() string {
	if l.Type == "csv" {
		return l.CSVPath
	}
	return l.DBPath
}

type ExtractConfig struct {
	// DefaultLot is recorded when no lot size is recognized. Some setups
	// prefer "0.01" over "Unknown".
	DefaultLot string `json:"default_lot" yaml:"default_lot"`
}

type AnalyticsConfig struct {
	TaxRate float64 `json:"tax_rate" yaml:"tax_rate"`
}

// OCRConfig names the external recognizer binary. Images are passed on
// stdin and text is read from stdout.
type OCRConfig struct {
	Command string   `json:"command" yaml:"command"`
	Args    []string `json:"args,omitempty" yaml:"args,omitempty"`
}

type LogConfig struct {
	Level    string `json:"level" yaml:"level"`       // debug, info, warn, error
	Encoding string `json:"encoding" yaml:"encoding"` // json or console
}

// LoadFromFile loads configuration from a YAML or JSON file and validates it.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes YAML for .yaml/.yml paths and indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	switch c.Ledger.Type {
	case "memory":
	case "sqlite", "gorm":
		if c.Ledger.DBPath == "" {
			return fmt.Errorf("ledger.db_path required for %s type", c.Ledger.Type)
		}
	case "csv":
		if c.Ledger.CSVPath == "" {
			return fmt.Errorf("ledger.csv_path required for csv type")
		}
	default:
		return fmt.Errorf("ledger.type must be 'memory', 'sqlite', 'gorm' or 'csv'")
	}
	if c.Extract.DefaultLot == "" {
		return fmt.Errorf("extract.default_lot is required")
	}
	if c.Analytics.TaxRate < 0 || c.Analytics.TaxRate > 1 {
		return fmt.Errorf("analytics.tax_rate must be between 0 and 1")
	}
	if c.OCR.Command == "" {
		return fmt.Errorf("ocr.command is required")
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("log.encoding must be 'json' or 'console'")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			Type:   "sqlite",
			DBPath: "./tradetrack.sqlite",
		},
		Extract: ExtractConfig{
			DefaultLot: trade.Unknown,
		},
		Insight: trade.DefaultLabels(),
		Analytics: AnalyticsConfig{
			TaxRate: 0.30,
		},
		OCR: OCRConfig{
			Command: "tesseract",
			Args:    []string{"stdin", "stdout"},
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}
