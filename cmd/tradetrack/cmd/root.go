package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradetrack/config"
	"github.com/rustyeddy/tradetrack/ledger"
	"github.com/rustyeddy/tradetrack/logging"
	"github.com/rustyeddy/tradetrack/ocr"
	"github.com/rustyeddy/tradetrack/tracker"
)

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	ConfigPath string
	LedgerType string
	DBPath     string
	LogLevel   string
}

var (
	flags rootFlags
	cfg   *config.Config
	log   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tradetrack",
	Short: "Turn trading-platform screenshots into a trade ledger with P/L analytics",
	Long: `Tradetrack reads the text an OCR engine recognized on a trading-platform
screenshot and recovers the trade from it.

It provides tools for:
  - Extracting amount, lot size, symbol, side, platform and date from OCR text
  - Saving confirmed trades to an append-only ledger (SQLite, gorm or CSV)
  - Win rate, equity curve, monthly P/L and a flat-rate tax estimate
  - Exporting the ledger as CSV and importing older trade_data.csv files`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.ConfigPath, "config", "", "path to config file (optional)")
	pf.StringVar(&flags.LedgerType, "ledger", "", "ledger type: memory|sqlite|gorm|csv (overrides config)")
	pf.StringVar(&flags.DBPath, "db", "", "ledger database or CSV path (overrides config)")
	pf.StringVar(&flags.LogLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
}

// setup loads configuration and builds the logger before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if flags.ConfigPath != "" {
		if cfg, err = config.LoadFromFile(flags.ConfigPath); err != nil {
			return err
		}
	} else {
		cfg = config.Default()
	}

	if flags.LedgerType != "" {
		cfg.Ledger.Type = flags.LedgerType
	}
	if flags.DBPath != "" {
		if cfg.Ledger.Type == ledger.TypeCSV {
			cfg.Ledger.CSVPath = flags.DBPath
		} else {
			cfg.Ledger.DBPath = flags.DBPath
		}
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if log, err = logging.New(cfg.Log); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	return nil
}

// openTracker opens the configured ledger. The caller must close the ledger.
func openTracker(rec ocr.Recognizer) (*tracker.Tracker, error) {
	l, err := ledger.Open(cfg.Ledger.Type, cfg.Ledger.Path())
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	log.Debug("opened ledger", zap.String("type", cfg.Ledger.Type), zap.String("path", cfg.Ledger.Path()))
	return tracker.New(cfg, rec, l, log), nil
}
