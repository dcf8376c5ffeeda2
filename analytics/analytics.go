package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradetrack/trade"
)

// DefaultTaxRate is the flat share of a positive total set aside as tax.
const DefaultTaxRate = 0.30

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) before(o Month) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

// MonthPL is the summed amount of the records dated in one month.
type MonthPL struct {
	Month  Month
	Amount decimal.Decimal
	Trades int
}

// Snapshot is the analytics view of a ledger at one point in time.
type Snapshot struct {
	Trades    int
	TotalPL   decimal.Decimal
	Wins      int // amount > 0
	Losses    int // amount < 0
	BreakEven int // amount == 0
	WinRate   float64

	// EquityCurve[i] is the sum of amounts of records 0..i in ledger order.
	EquityCurve []decimal.Decimal
	MaxDrawdown decimal.Decimal

	// Monthly is ordered by ascending month. Records whose date does not
	// parse are counted in Undated instead.
	Monthly []MonthPL
	Undated int

	TaxRate     decimal.Decimal
	TaxEstimate decimal.Decimal
}

// Aggregator computes snapshots. It keeps no state between calls.
type Aggregator struct {
	TaxRate decimal.Decimal
}

func New(taxRate float64) *Aggregator {
	return &Aggregator{TaxRate: decimal.NewFromFloat(taxRate)}
}

// Compute builds a snapshot from recs, which must be in ledger order. An
// empty ledger yields zero values and empty sequences.
func (a *Aggregator) Compute(recs []trade.Record) Snapshot {
	s := Snapshot{
		Trades:      len(recs),
		TotalPL:     decimal.Zero,
		EquityCurve: make([]decimal.Decimal, 0, len(recs)),
		MaxDrawdown: decimal.Zero,
		Monthly:     []MonthPL{},
		TaxRate:     a.TaxRate,
		TaxEstimate: decimal.Zero,
	}

	peak := decimal.Zero
	months := map[Month]*MonthPL{}

	for _, r := range recs {
		switch r.Amount.Sign() {
		case 1:
			s.Wins++
		case -1:
			s.Losses++
		default:
			s.BreakEven++
		}

		s.TotalPL = s.TotalPL.Add(r.Amount)
		s.EquityCurve = append(s.EquityCurve, s.TotalPL)

		peak = decimal.Max(peak, s.TotalPL)
		s.MaxDrawdown = decimal.Max(s.MaxDrawdown, peak.Sub(s.TotalPL))

		t, ok := r.Time()
		if !ok {
			s.Undated++
			continue
		}
		key := Month{Year: t.Year(), Month: t.Month()}
		m, ok := months[key]
		if !ok {
			m = &MonthPL{Month: key, Amount: decimal.Zero}
			months[key] = m
		}
		m.Amount = m.Amount.Add(r.Amount)
		m.Trades++
	}

	if s.Trades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Trades) * 100
	}

	for _, m := range months {
		s.Monthly = append(s.Monthly, *m)
	}
	sort.Slice(s.Monthly, func(i, j int) bool {
		return s.Monthly[i].Month.before(s.Monthly[j].Month)
	})

	if s.TotalPL.IsPositive() {
		s.TaxEstimate = s.TotalPL.Mul(a.TaxRate)
	}
	return s
}

// MonthlyPL returns the monthly sums keyed by "YYYY-MM".
func (s Snapshot) MonthlyPL() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(s.Monthly))
	for _, m := range s.Monthly {
		out[m.Month.String()] = m.Amount
	}
	return out
}
