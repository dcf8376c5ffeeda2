package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradetrack/extract"
	"github.com/rustyeddy/tradetrack/ledger"
	"github.com/rustyeddy/tradetrack/ocr"
	"github.com/rustyeddy/tradetrack/tracker"
)

var scanCmd = &cobra.Command{
	Use:   "scan <screenshot>",
	Short: "Recognize a screenshot and extract the trade",
	Long: `Run the configured OCR command over a screenshot and show the trade
recovered from the recognized text. Nothing is saved unless --save is given.

Examples:
  tradetrack scan trade.png
  tradetrack scan trade.png --save`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

var extractCmd = &cobra.Command{
	Use:   "extract [transcript|-]",
	Short: "Extract the trade from already recognized text",
	Long: `Read OCR text from a file, or stdin when no file or "-" is given, and show
the trade recovered from it. Nothing is saved unless --save is given.

Examples:
  tesseract trade.png stdout | tradetrack extract
  tradetrack extract trade.txt --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

var (
	scanSave    bool
	extractSave bool
)

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(extractCmd)

	scanCmd.Flags().BoolVarP(&scanSave, "save", "s", false, "save the extracted trade to the ledger")
	extractCmd.Flags().BoolVarP(&extractSave, "save", "s", false, "save the extracted trade to the ledger")
}

func runScan(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open screenshot: %w", err)
	}
	defer f.Close()

	fmt.Fprintln(cmd.ErrOrStderr(), "Recognizing text, this can take a while...")
	return scanAndReport(cmd, ocr.NewCommand(cfg.OCR.Command, cfg.OCR.Args...), f, scanSave)
}

func runExtract(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open transcript: %w", err)
		}
		defer f.Close()
		in = f
	}
	return scanAndReport(cmd, ocr.Transcript{}, in, extractSave)
}

func scanAndReport(cmd *cobra.Command, rec ocr.Recognizer, in io.Reader, save bool) error {
	t, err := openTracker(rec)
	if err != nil {
		return err
	}
	defer t.Ledger.Close()

	c, err := t.Scan(cmd.Context(), in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ledger.FormatRecordOrg(c.Record, t.Labels))
	fmt.Fprintf(out, "Detected: %s\n", detectedSummary(c))

	if !save {
		fmt.Fprintln(out, "Not saved (use --save to add it to the ledger)")
		return nil
	}

	saved, err := t.Save(cmd.Context(), c.Record)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Saved trade %s\n", saved.ID)
	return nil
}

func detectedSummary(c tracker.Candidate) string {
	if len(c.Detected) == 0 {
		return "nothing, all fields defaulted"
	}
	names := make([]string, 0, len(c.Detected))
	for f := range c.Detected {
		names = append(names, string(f))
	}
	sort.Strings(names)

	var missing []string
	for _, r := range extract.Rules {
		if _, ok := c.Detected[r.Field]; !ok {
			missing = append(missing, string(r.Field))
		}
	}
	if len(missing) == 0 {
		return strings.Join(names, ", ")
	}
	return strings.Join(names, ", ") + " (defaulted: " + strings.Join(missing, ", ") + ")"
}
