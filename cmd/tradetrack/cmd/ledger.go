package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradetrack/ledger"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "List, export, import or clear saved trades",
	Long: `Work with the trade ledger.

Subcommands:
  list    - Show every saved trade in save order
  export  - Write the ledger as CSV
  import  - Append trades from an older trade_data.csv file
  clear   - Delete every saved trade

Examples:
  tradetrack ledger list
  tradetrack ledger export -o trades.csv
  tradetrack ledger import trade_data.csv
  tradetrack ledger clear --yes`,
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every saved trade",
	Args:  cobra.NoArgs,
	RunE:  runLedgerList,
}

var ledgerExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the ledger as CSV",
	Args:  cobra.NoArgs,
	RunE:  runLedgerExport,
}

var ledgerImportCmd = &cobra.Command{
	Use:   "import <trade_data.csv>",
	Short: "Append trades from an older trade_data.csv file",
	Args:  cobra.ExactArgs(1),
	RunE:  runLedgerImport,
}

var ledgerClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved trade (irreversible)",
	Args:  cobra.NoArgs,
	RunE:  runLedgerClear,
}

var (
	exportOutput string
	clearYes     bool
)

func init() {
	rootCmd.AddCommand(ledgerCmd)
	ledgerCmd.AddCommand(ledgerListCmd)
	ledgerCmd.AddCommand(ledgerExportCmd)
	ledgerCmd.AddCommand(ledgerImportCmd)
	ledgerCmd.AddCommand(ledgerClearCmd)

	ledgerExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "-", "output file, - for stdout")
	ledgerClearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm deleting every trade")
}

func runLedgerList(cmd *cobra.Command, args []string) error {
	t, err := openTracker(nil)
	if err != nil {
		return err
	}
	defer t.Ledger.Close()

	recs, err := t.Records(cmd.Context())
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No trades saved yet.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), ledger.FormatRecordsOrg(recs, t.Labels))
	return nil
}

func runLedgerExport(cmd *cobra.Command, args []string) error {
	t, err := openTracker(nil)
	if err != nil {
		return err
	}
	defer t.Ledger.Close()

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "-" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return t.Export(cmd.Context(), w)
}

func runLedgerImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open legacy file: %w", err)
	}
	defer f.Close()

	recs, err := ledger.ImportLegacyCSV(f)
	if err != nil {
		return err
	}

	t, err := openTracker(nil)
	if err != nil {
		return err
	}
	defer t.Ledger.Close()

	n, err := t.SaveAll(cmd.Context(), recs)
	if err != nil {
		return fmt.Errorf("imported %d of %d trades: %w", n, len(recs), err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d trades from %s\n", n, args[0])
	return nil
}

func runLedgerClear(cmd *cobra.Command, args []string) error {
	if !clearYes {
		return fmt.Errorf("refusing to delete every trade without --yes")
	}

	t, err := openTracker(nil)
	if err != nil {
		return err
	}
	defer t.Ledger.Close()

	if err := t.Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Ledger cleared")
	return nil
}
