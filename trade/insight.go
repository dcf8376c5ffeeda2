package trade

import "github.com/shopspring/decimal"

// Bucket is the (side, sign of amount) cell an insight label is chosen from.
type Bucket int

const (
	BucketBuyProfit Bucket = iota
	BucketSellProfit
	BucketProfit
	BucketLoss
	BucketBreakEven
)

func (b Bucket) String() string {
	switch b {
	case BucketBuyProfit:
		return "buy_profit"
	case BucketSellProfit:
		return "sell_profit"
	case BucketProfit:
		return "profit"
	case BucketLoss:
		return "loss"
	case BucketBreakEven:
		return "break_even"
	}
	return "unknown"
}

// Classify maps a side and an amount to its bucket.
//
//	amount > 0:  Buy -> BuyProfit, Sell -> SellProfit, otherwise Profit
//	amount < 0:  Loss
//	amount == 0: Buy or Sell -> Loss, otherwise BreakEven
func Classify(side Side, amount decimal.Decimal) Bucket {
	switch {
	case amount.IsPositive():
		switch side {
		case Buy:
			return BucketBuyProfit
		case Sell:
			return BucketSellProfit
		}
		return BucketProfit
	case amount.IsNegative():
		return BucketLoss
	}
	if side == Buy || side == Sell {
		return BucketLoss
	}
	return BucketBreakEven
}

// Labels holds the text shown for each bucket. Label wording varies between
// deployments; only the bucket logic is fixed.
type Labels struct {
	BuyProfit  string `json:"buy_profit" yaml:"buy_profit"`
	SellProfit string `json:"sell_profit" yaml:"sell_profit"`
	Profit     string `json:"profit" yaml:"profit"`
	Loss       string `json:"loss" yaml:"loss"`
	BreakEven  string `json:"break_even" yaml:"break_even"`
}

func DefaultLabels() Labels {
	return Labels{
		BuyProfit:  "Strong Uptrend Confirmation",
		SellProfit: "Strong Downtrend Confirmation",
		Profit:     "Strong Trade Execution",
		Loss:       "Volatile / Weak Structure",
		BreakEven:  "Break Even / Minimal Movement",
	}
}

// Label returns the text for b, falling back to the default wording when the
// configured label is empty.
func (l Labels) Label(b Bucket) string {
	def := DefaultLabels()
	pick := func(s, fallback string) string {
		if s == "" {
			return fallback
		}
		return s
	}
	switch b {
	case BucketBuyProfit:
		return pick(l.BuyProfit, def.BuyProfit)
	case BucketSellProfit:
		return pick(l.SellProfit, def.SellProfit)
	case BucketProfit:
		return pick(l.Profit, def.Profit)
	case BucketLoss:
		return pick(l.Loss, def.Loss)
	}
	return pick(l.BreakEven, def.BreakEven)
}

// Insight is the label for r. It is recomputed on every call.
func (l Labels) Insight(r Record) string {
	return l.Label(Classify(r.Order, r.Amount))
}
