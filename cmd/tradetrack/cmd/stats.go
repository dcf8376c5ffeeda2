package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradetrack/analytics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the performance dashboard",
	Long: `Recompute analytics over the whole ledger: total P/L, wins and losses,
win rate, equity curve, max drawdown, monthly P/L and a flat-rate tax estimate.

The tax estimate is a fixed share of a positive total, not a tax calculation.

Examples:
  tradetrack stats
  tradetrack stats --monthly-csv monthly.csv --equity-csv equity.csv`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var (
	statsMonthlyCSV string
	statsEquityCSV  string
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsMonthlyCSV, "monthly-csv", "", "also write monthly P/L to this CSV file")
	statsCmd.Flags().StringVar(&statsEquityCSV, "equity-csv", "", "also write the equity curve to this CSV file")
}

func runStats(cmd *cobra.Command, args []string) error {
	t, err := openTracker(nil)
	if err != nil {
		return err
	}
	defer t.Ledger.Close()

	s, err := t.Analytics(cmd.Context())
	if err != nil {
		return err
	}

	if err := s.WriteOrg(cmd.OutOrStdout(), time.Now()); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if statsMonthlyCSV != "" {
		if err := writeFile(statsMonthlyCSV, s, analytics.Snapshot.WriteMonthlyCSV); err != nil {
			return err
		}
	}
	if statsEquityCSV != "" {
		if err := writeFile(statsEquityCSV, s, analytics.Snapshot.WriteEquityCSV); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, s analytics.Snapshot, write func(analytics.Snapshot, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(s, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
