package trade

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the day/month/year layout trading platforms print and the
// ledger stores.
const DateLayout = "02/01/2006"

// Unknown is the value of every optional text field nothing was detected for.
const Unknown = "Unknown"

type Side string

const (
	Buy         Side = "Buy"
	Sell        Side = "Sell"
	UnknownSide Side = Unknown
)

type Platform string

const (
	MT4             Platform = "MT4"
	MT5             Platform = "MT5"
	Binance         Platform = "Binance"
	UnknownPlatform Platform = Unknown
)

// Kind is the profit/loss type of a record. It is always derived from the
// amount and never stored as an editable field.
type Kind string

const (
	Profit Kind = "Profit"
	Loss   Kind = "Loss"
)

// Record is one trade observation recovered from a single screenshot.
type Record struct {
	ID       string
	Date     string // DateLayout
	Amount   decimal.Decimal
	Lot      string
	Symbol   string
	Order    Side
	Platform Platform
}

// Kind is Profit when the amount is strictly positive and Loss otherwise,
// so a zero amount reads as Loss.
func (r Record) Kind() Kind {
	if r.Amount.IsPositive() {
		return Profit
	}
	return Loss
}

// Time parses Date. ok is false when the stored text is not a calendar date.
func (r Record) Time() (t time.Time, ok bool) {
	t, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Equal compares records field by field, amounts by numeric value.
func (r Record) Equal(o Record) bool {
	return r.ID == o.ID &&
		r.Date == o.Date &&
		r.Amount.Equal(o.Amount) &&
		r.Lot == o.Lot &&
		r.Symbol == o.Symbol &&
		r.Order == o.Order &&
		r.Platform == o.Platform
}

// FormatDate renders t the way records store dates.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
