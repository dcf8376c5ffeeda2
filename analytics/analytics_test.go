package analytics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradetrack/trade"
)

func records(amounts ...string) []trade.Record {
	out := make([]trade.Record, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, trade.Record{Date: "01/01/2024", Amount: decimal.RequireFromString(a)})
	}
	return out
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimals(t *testing.T, want []string, got []decimal.Decimal) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, dec(want[i]).Equal(got[i]), "index %d: want %s got %s", i, want[i], got[i])
	}
}

func TestComputeEmptyLedger(t *testing.T) {
	t.Parallel()

	s := New(DefaultTaxRate).Compute(nil)

	assert.Equal(t, 0, s.Trades)
	assert.True(t, s.TotalPL.IsZero())
	assert.Equal(t, 0, s.Wins)
	assert.Equal(t, 0, s.Losses)
	assert.Equal(t, 0.0, s.WinRate)
	assert.NotNil(t, s.EquityCurve)
	assert.Empty(t, s.EquityCurve)
	assert.Empty(t, s.Monthly)
	assert.True(t, s.TaxEstimate.IsZero())
	assert.True(t, s.MaxDrawdown.IsZero())
}

func TestComputeTotals(t *testing.T) {
	t.Parallel()

	s := New(DefaultTaxRate).Compute(records("100.0", "-40.0", "-10.0"))

	assert.True(t, dec("50").Equal(s.TotalPL), s.TotalPL.String())
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 2, s.Losses)
	assert.Equal(t, 0, s.BreakEven)
	assert.InDelta(t, 33.3333, s.WinRate, 1e-3)
	assert.True(t, dec("15").Equal(s.TaxEstimate), s.TaxEstimate.String())
}

func TestComputeZeroAmountIsBreakEven(t *testing.T) {
	t.Parallel()

	s := New(DefaultTaxRate).Compute(records("10", "0", "-3"))

	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 1, s.BreakEven)
	assert.Equal(t, s.Trades, s.Wins+s.Losses+s.BreakEven)
}

func TestComputeEquityCurve(t *testing.T) {
	t.Parallel()

	s := New(DefaultTaxRate).Compute(records("100", "-50", "25"))
	assertDecimals(t, []string{"100", "50", "75"}, s.EquityCurve)
	assert.True(t, dec("50").Equal(s.MaxDrawdown), s.MaxDrawdown.String())
}

func TestEquityCurveMonotonicIffNoNegatives(t *testing.T) {
	t.Parallel()

	// The curve starts from a flat zero balance.
	monotonic := func(curve []decimal.Decimal) bool {
		prev := decimal.Zero
		for _, e := range curve {
			if e.LessThan(prev) {
				return false
			}
			prev = e
		}
		return true
	}

	tests := []struct {
		amounts []string
		want    bool
	}{
		{[]string{"1", "0", "2.5", "0"}, true},
		{[]string{"5", "-0.01", "10"}, false},
		{[]string{"-1"}, false},
		{[]string{}, true},
	}

	agg := New(DefaultTaxRate)
	for _, tt := range tests {
		s := agg.Compute(records(tt.amounts...))
		assert.Equal(t, tt.want, monotonic(s.EquityCurve), "%v", tt.amounts)
		assert.Len(t, s.EquityCurve, len(tt.amounts))
	}
}

func TestComputeNegativeTotalHasNoTax(t *testing.T) {
	t.Parallel()

	s := New(DefaultTaxRate).Compute(records("-10", "5"))
	assert.True(t, s.TaxEstimate.IsZero())

	s = New(DefaultTaxRate).Compute(records("0"))
	assert.True(t, s.TaxEstimate.IsZero())
}

func TestComputeCustomTaxRate(t *testing.T) {
	t.Parallel()

	s := New(0.25).Compute(records("200"))
	assert.True(t, dec("50").Equal(s.TaxEstimate), s.TaxEstimate.String())
}

func TestComputeMonthly(t *testing.T) {
	t.Parallel()

	recs := []trade.Record{
		{Date: "20/04/2024", Amount: dec("7")},
		{Date: "03/03/2024", Amount: dec("100")},
		{Date: "28/03/2024", Amount: dec("-40")},
		{Date: "not a date", Amount: dec("1000")},
		{Date: "15/12/2023", Amount: dec("2")},
	}
	s := New(DefaultTaxRate).Compute(recs)

	require.Len(t, s.Monthly, 3)
	assert.Equal(t, "2023-12", s.Monthly[0].Month.String())
	assert.Equal(t, "2024-03", s.Monthly[1].Month.String())
	assert.Equal(t, "2024-04", s.Monthly[2].Month.String())
	assert.True(t, dec("60").Equal(s.Monthly[1].Amount))
	assert.Equal(t, 2, s.Monthly[1].Trades)
	assert.Equal(t, 1, s.Undated)

	// Undated records still count everywhere else.
	assert.Equal(t, 5, s.Trades)
	assert.True(t, dec("1069").Equal(s.TotalPL))

	byKey := s.MonthlyPL()
	assert.Len(t, byKey, 3)
	assert.True(t, dec("7").Equal(byKey["2024-04"]))
}

func TestComputeIsStateless(t *testing.T) {
	t.Parallel()

	agg := New(DefaultTaxRate)
	first := agg.Compute(records("10", "20"))
	second := agg.Compute(records("-5"))

	assert.True(t, dec("30").Equal(first.TotalPL))
	assert.True(t, dec("-5").Equal(second.TotalPL))
	assert.Len(t, second.EquityCurve, 1)
}

func TestWriteOrg(t *testing.T) {
	t.Parallel()

	recs := []trade.Record{
		{Date: "03/03/2024", Amount: dec("100")},
		{Date: "04/03/2024", Amount: dec("-50")},
		{Date: "bad", Amount: dec("25")},
	}
	s := New(DefaultTaxRate).Compute(recs)

	var buf bytes.Buffer
	require.NoError(t, s.WriteOrg(&buf, time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)))
	out := buf.String()

	assert.Contains(t, out, ":TOTAL_PL:    75.00")
	assert.Contains(t, out, ":WIN_RATE:    66.67")
	assert.Contains(t, out, ":TAX_EST:     22.50")
	assert.Contains(t, out, "[2024-03-05 Tue 09:30]")
	assert.Contains(t, out, "(30% flat of positive total)")
	assert.Contains(t, out, "| 2024-03 | 2 | 50.00 |")
	assert.Contains(t, out, "| 3 | 75.00 |")
	assert.Contains(t, out, "- 1 trade(s) without a readable date")
}

func TestWriteOrgEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, New(DefaultTaxRate).Compute(nil).WriteOrg(&buf, time.Now()))
	assert.Contains(t, buf.String(), "- no trades saved yet")
	assert.Contains(t, buf.String(), "- no dated trades")
}

func TestWriteMonthlyAndEquityCSV(t *testing.T) {
	t.Parallel()

	s := New(DefaultTaxRate).Compute([]trade.Record{
		{Date: "03/03/2024", Amount: dec("100")},
		{Date: "01/04/2024", Amount: dec("-40.5")},
	})

	var monthly bytes.Buffer
	require.NoError(t, s.WriteMonthlyCSV(&monthly))
	assert.Equal(t, "month,trades,amount\n2024-03,1,100.00\n2024-04,1,-40.50\n", monthly.String())

	var equity bytes.Buffer
	require.NoError(t, s.WriteEquityCSV(&equity))
	assert.Equal(t, []string{"trade,equity", "1,100.00", "2,59.50", ""}, strings.Split(equity.String(), "\n"))
}
