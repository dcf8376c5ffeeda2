package ledger

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/tradetrack/trade"
)

// FormatRecordOrg renders a record as an Org-mode block suitable for pasting
// into a journal. Structured facts go in the PROPERTIES drawer so they stay
// searchable; the Review heading is left for notes.
func FormatRecordOrg(r trade.Record, labels trade.Labels) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Trade: %s %s (%s)\n", r.Symbol, r.Date, shortID(r.ID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", r.ID)
	fmt.Fprintf(&b, ":DATE: %s\n", r.Date)
	fmt.Fprintf(&b, ":AMOUNT: %s\n", r.Amount.StringFixed(2))
	fmt.Fprintf(&b, ":TYPE: %s\n", r.Kind())
	fmt.Fprintf(&b, ":LOT: %s\n", r.Lot)
	fmt.Fprintf(&b, ":SYMBOL: %s\n", r.Symbol)
	fmt.Fprintf(&b, ":ORDER: %s\n", r.Order)
	fmt.Fprintf(&b, ":PLATFORM: %s\n", r.Platform)
	fmt.Fprintf(&b, ":INSIGHT: %s\n", labels.Insight(r))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Review\n- \n")
	return b.String()
}

// FormatRecordsOrg renders multiple records separated by blank lines.
func FormatRecordsOrg(recs []trade.Record, labels trade.Labels) string {
	var b strings.Builder
	for i, r := range recs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatRecordOrg(r, labels))
	}
	return b.String()
}

func shortID(full string) string {
	if full == "" {
		return "unsaved"
	}
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
