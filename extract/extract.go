package extract

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradetrack/trade"
)

// Extractor turns normalized OCR text into a trade record. It never fails:
// every field has a default.
type Extractor struct {
	// DefaultLot is used when no lot size is found.
	DefaultLot string

	// Now supplies the processing date used when no date is found.
	Now func() time.Time
}

func New(defaultLot string) *Extractor {
	if defaultLot == "" {
		defaultLot = trade.Unknown
	}
	return &Extractor{DefaultLot: defaultLot, Now: time.Now}
}

// Detect runs every rule over text and returns the fields that matched.
func (e *Extractor) Detect(text string) map[Field]string {
	found := make(map[Field]string, len(Rules))
	for _, r := range Rules {
		if v, ok := r.Match(text); ok {
			found[r.Field] = v
		}
	}
	return found
}

// Extract builds a record from text, filling in defaults for anything the
// rules did not detect. The record has no ID yet.
func (e *Extractor) Extract(text string) trade.Record {
	rec, _ := e.ExtractFields(text)
	return rec
}

// ExtractFields is Extract that also returns the fields the rules matched,
// before defaults were applied.
func (e *Extractor) ExtractFields(text string) (trade.Record, map[Field]string) {
	found := e.Detect(text)

	rec := trade.Record{
		Date:     e.today(),
		Amount:   decimal.Zero,
		Lot:      e.DefaultLot,
		Symbol:   trade.Unknown,
		Order:    trade.UnknownSide,
		Platform: trade.UnknownPlatform,
	}
	if rec.Lot == "" {
		rec.Lot = trade.Unknown
	}

	if v, ok := found[FieldAmount]; ok {
		rec.Amount = parseAmount(v)
	}
	if v, ok := found[FieldLot]; ok {
		rec.Lot = v
	}
	if v, ok := found[FieldSymbol]; ok {
		rec.Symbol = v
	}
	if v, ok := found[FieldOrder]; ok {
		rec.Order = trade.Side(v)
	}
	if v, ok := found[FieldDate]; ok {
		rec.Date = v
	}
	if v, ok := found[FieldPlatform]; ok {
		rec.Platform = trade.Platform(v)
	}
	return rec, found
}

func (e *Extractor) today() string {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	return trade.FormatDate(now())
}

// parseAmount degrades malformed numbers to zero.
func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimPrefix(s, "+"))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DetectPlatform applies the platform rule alone.
func DetectPlatform(text string) trade.Platform {
	if v, ok := MatchPlatform(text); ok {
		return trade.Platform(v)
	}
	return trade.UnknownPlatform
}
