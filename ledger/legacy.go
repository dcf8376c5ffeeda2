package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradetrack/extract"
	"github.com/rustyeddy/tradetrack/trade"
)

// legacyDateLayout is the day-month-year format older trade_data.csv files
// were saved with.
const legacyDateLayout = "02-01-2006"

// ImportLegacyCSV reads a trade_data.csv file with the columns
// date,platform,symbol,lot,order,today_pl (any order). Columns are looked up
// by header name. Platform text such as "MT5 / Dark Trading App" goes through
// the platform rule; unreadable amounts become zero.
func ImportLegacyCSV(r io.Reader) ([]trade.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read legacy csv: %w", err)
	}
	if len(rows) == 0 {
		return []trade.Record{}, nil
	}

	col := map[string]int{}
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, need := range []string{"date", "today_pl"} {
		if _, ok := col[need]; !ok {
			return nil, fmt.Errorf("legacy csv: missing %q column", need)
		}
	}

	get := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	orUnknown := func(s string) string {
		if s == "" {
			return trade.Unknown
		}
		return s
	}

	out := make([]trade.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		amount, err := decimal.NewFromString(get(row, "today_pl"))
		if err != nil {
			amount = decimal.Zero
		}
		side := trade.UnknownSide
		if v, ok := extract.MatchOrder(get(row, "order")); ok {
			side = trade.Side(v)
		}
		out = append(out, trade.Record{
			Date:     legacyDate(get(row, "date")),
			Amount:   amount,
			Lot:      orUnknown(get(row, "lot")),
			Symbol:   orUnknown(get(row, "symbol")),
			Order:    side,
			Platform: extract.DetectPlatform(get(row, "platform")),
		})
	}
	return out, nil
}

// legacyDate converts DD-MM-YYYY to the ledger layout. Dates already in the
// ledger layout, or unreadable ones, are kept as they are.
func legacyDate(s string) string {
	if t, err := time.Parse(legacyDateLayout, s); err == nil {
		return trade.FormatDate(t)
	}
	return s
}
