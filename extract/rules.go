package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/rustyeddy/tradetrack/trade"
)

// Field names one extracted value of a trade record.
type Field string

const (
	FieldAmount   Field = "amount"
	FieldLot      Field = "lot"
	FieldSymbol   Field = "symbol"
	FieldOrder    Field = "order"
	FieldPlatform Field = "platform"
	FieldDate     Field = "date"
)

// Matcher looks for one field in normalized text. Only the first match
// counts; ok is false when nothing matched.
type Matcher func(text string) (value string, ok bool)

type Rule struct {
	Field Field
	Match Matcher
}

// Rules is the rule table Extract applies. Each rule is independent of the
// others; a rule that does not match leaves its field at the default.
var Rules = []Rule{
	{FieldAmount, MatchAmount},
	{FieldLot, MatchLot},
	{FieldSymbol, MatchSymbol},
	{FieldOrder, MatchOrder},
	{FieldDate, MatchDate},
	{FieldPlatform, MatchPlatform},
}

var (
	amountPattern = regexp.MustCompile(`[-+]?\d+\.\d+`)
	lotPattern    = regexp.MustCompile(`0\.\d+|[1-9]\d*\.\d+`)
	symbolPattern = regexp.MustCompile(`[A-Z]{3,6}`)
	datePattern   = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
)

// MatchAmount finds the first signed or unsigned decimal number, e.g.
// -125.40 or 300.00.
func MatchAmount(text string) (string, bool) {
	return first(amountPattern, text)
}

// MatchLot finds the first lot size: "0." followed by digits, or a number
// with a nonzero leading digit and a fractional part.
func MatchLot(text string) (string, bool) {
	return first(lotPattern, text)
}

// MatchSymbol finds the first run of 3 to 6 uppercase letters.
func MatchSymbol(text string) (string, bool) {
	return first(symbolPattern, text)
}

var sideTokens = []struct {
	token string
	side  trade.Side
}{
	{"buy", trade.Buy},
	{"sell", trade.Sell},
}

// MatchOrder searches case-insensitively for "buy" and then "sell". Text
// holding both reads as a buy.
func MatchOrder(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, st := range sideTokens {
		if strings.Contains(lower, st.token) {
			return string(st.side), true
		}
	}
	return "", false
}

var platformTokens = []trade.Platform{trade.MT4, trade.MT5, trade.Binance}

// MatchPlatform checks for the literal tokens MT4, MT5 and Binance in that
// order, case-sensitively. The first token present wins.
func MatchPlatform(text string) (string, bool) {
	for _, p := range platformTokens {
		if strings.Contains(text, string(p)) {
			return string(p), true
		}
	}
	return "", false
}

// MatchDate finds the first DD/MM/YYYY substring that is a real calendar
// date. Candidates like 31/02/2024 are skipped.
func MatchDate(text string) (string, bool) {
	for _, m := range datePattern.FindAllString(text, -1) {
		if _, err := time.Parse(trade.DateLayout, m); err == nil {
			return m, true
		}
	}
	return "", false
}

func first(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindString(text)
	return m, m != ""
}
