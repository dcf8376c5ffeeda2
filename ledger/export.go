package ledger

import (
	"encoding/csv"
	"io"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradetrack/trade"
)

// ExportColumns is the column order of WriteCSV. External tools read it, so
// the order is fixed.
var ExportColumns = []string{"date", "amount", "type", "lot", "symbol", "order", "platform"}

// WriteCSV writes recs as a flat table with an ExportColumns header.
func WriteCSV(w io.Writer, recs []trade.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return err
	}
	for _, r := range recs {
		if err := cw.Write([]string{
			r.Date,
			exportAmount(r.Amount),
			string(r.Kind()),
			r.Lot,
			r.Symbol,
			string(r.Order),
			string(r.Platform),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// exportAmount writes at least two decimal places and never rounds.
func exportAmount(d decimal.Decimal) string {
	return d.StringFixed(max(2, -d.Exponent()))
}
