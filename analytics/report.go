package analytics

import (
	"encoding/csv"
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/shopspring/decimal"
)

var reportFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"pct":   func(x float64) string { return fmt.Sprintf("%.2f", x) },
	"mul100": func(d decimal.Decimal) string {
		return d.Mul(decimal.NewFromInt(100)).StringFixed(0)
	},
	"inc": func(i int) int { return i + 1 },
	"last": func(curve []decimal.Decimal) decimal.Decimal {
		if len(curve) == 0 {
			return decimal.Zero
		}
		return curve[len(curve)-1]
	},
}

var reportTmpl = template.Must(template.New("report").Funcs(reportFuncs).Parse(ReportOrgTemplate))

type reportView struct {
	Snapshot
	Created time.Time
}

// WriteOrg renders the snapshot as an Org-mode performance report.
func (s Snapshot) WriteOrg(w io.Writer, created time.Time) error {
	return reportTmpl.Execute(w, reportView{Snapshot: s, Created: created})
}

const ReportOrgTemplate = `* PERFORMANCE DASHBOARD
:PROPERTIES:
:TRADES:      {{.Trades}}
:TOTAL_PL:    {{money .TotalPL}}
:WINS:        {{.Wins}}
:LOSSES:      {{.Losses}}
:BREAK_EVEN:  {{.BreakEven}}
:WIN_RATE:    {{pct .WinRate}}
:MAX_DD:      {{money .MaxDrawdown}}
:TAX_EST:     {{money .TaxEstimate}}
:CREATED:     [{{.Created.Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Total P/L:        *{{money .TotalPL}}*
- Win Rate:         *{{pct .WinRate}}%*
- Max Drawdown:     *{{money .MaxDrawdown}}*
- Final Equity:     *{{money (last .EquityCurve)}}*
- Tax Estimate:     *{{money .TaxEstimate}}* ({{mul100 .TaxRate}}% flat of positive total)

** Trade Distribution
| Outcome    | Count |
|------------+-------|
| Wins       | {{.Wins}} |
| Losses     | {{.Losses}} |
| Break even | {{.BreakEven}} |
| Total      | {{.Trades}} |

** Monthly P/L
{{- if .Monthly }}
| Month   | Trades | P/L |
|---------+--------+-----|
{{- range .Monthly }}
| {{.Month}} | {{.Trades}} | {{money .Amount}} |
{{- end }}
{{- else }}
- no dated trades
{{- end }}
{{- if .Undated }}
- {{.Undated}} trade(s) without a readable date
{{- end }}

** Equity Curve
{{- if .EquityCurve }}
| Trade | Equity |
|-------+--------|
{{- range $i, $e := .EquityCurve }}
| {{inc $i}} | {{money $e}} |
{{- end }}
{{- else }}
- no trades saved yet
{{- end }}
`

// WriteMonthlyCSV writes the monthly sums as month,trades,amount rows.
func (s Snapshot) WriteMonthlyCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", "trades", "amount"}); err != nil {
		return err
	}
	for _, m := range s.Monthly {
		if err := cw.Write([]string{m.Month.String(), fmt.Sprint(m.Trades), m.Amount.StringFixed(2)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEquityCSV writes the equity curve as trade,equity rows.
func (s Snapshot) WriteEquityCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"trade", "equity"}); err != nil {
		return err
	}
	for i, e := range s.EquityCurve {
		if err := cw.Write([]string{fmt.Sprint(i + 1), e.StringFixed(2)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
