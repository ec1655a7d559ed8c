package grammar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"symbol-mapper/internal/core"
)

func matchOption(tokens []string) bool {
	n := len(tokens)
	if n < 5 || n > 6 {
		return false
	}
	last := tokens[n-1]
	if last != equitySuffix && !isClassSuffix(last) {
		return false
	}
	if !isOptionDate(tokens[2]) {
		return false
	}
	if n == 6 {
		right := strings.ToUpper(tokens[3])
		return (right == "C" || right == "P") && isStrike(tokens[4])
	}
	tok := tokens[3]
	if len(tok) < 2 {
		return false
	}
	right := tok[0]
	return (right == 'C' || right == 'P' || right == 'c' || right == 'p') && isStrike(tok[1:])
}

func isOptionDate(tok string) bool {
	parts := strings.Split(tok, "/")
	if len(parts) != 3 {
		return false
	}
	return allDigits(parts[0]) && allDigits(parts[1]) && len(parts[2]) == 2 && allDigits(parts[2])
}

func isStrike(tok string) bool {
	if tok == "" {
		return false
	}
	whole, frac, dotted := strings.Cut(tok, ".")
	if !allDigits(whole) {
		return false
	}
	return !dotted || allDigits(frac)
}

func parseOption(ctx Context, tokens []string) (core.Instrument, error) {
	underlying := tokens[0]
	venue := strings.ToUpper(tokens[1])
	market, ok := marketForExchangeCode[venue]
	if !ok {
		market = ctx.Markets.Option
	}
	expiry, err := parseOptionDate(ctx, tokens[2])
	if err != nil {
		return core.Instrument{}, err
	}
	var rightTok, strikeTok string
	if len(tokens) == 6 {
		rightTok = strings.ToUpper(tokens[3])
		strikeTok = tokens[4]
	} else {
		rightTok = strings.ToUpper(tokens[3][:1])
		strikeTok = tokens[3][1:]
	}
	right := core.Call
	if rightTok == "P" {
		right = core.Put
	}
	strike, err := decimal.NewFromString(strikeTok)
	if err != nil || strike.Cmp(decimal.Zero) <= 0 {
		return core.Instrument{}, fmt.Errorf("%w: option strike %q", core.ErrInvalidArgument, strikeTok)
	}
	root := underlying
	if internal, ok := ctx.Table.RootForAlias(underlying); ok {
		root = internal
	} else {
		root = ctx.Table.CanonicalRoot(underlying)
	}
	return core.Instrument{
		Root:       root,
		Type:       core.Option,
		Market:     market,
		Underlying: root,
		Expiry:     expiry,
		Right:      right,
		Strike:     strike,
	}, nil
}

// parseOptionDate reads the vendor MM/DD/YY form; the two-digit year shares
// the futures century pivot.
func parseOptionDate(ctx Context, tok string) (time.Time, error) {
	parts := strings.Split(tok, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: expiry date %q", core.ErrInvalidArgument, tok)
	}
	month, err1 := strconv.Atoi(parts[0])
	day, err2 := strconv.Atoi(parts[1])
	yy, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("%w: expiry date %q", core.ErrInvalidArgument, tok)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("%w: expiry date %q", core.ErrInvalidArgument, tok)
	}
	year := ctx.Resolver.PivotYear(yy, ctx.AsOf)
	expiry := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if expiry.Month() != time.Month(month) || expiry.Day() != day {
		return time.Time{}, fmt.Errorf("%w: expiry date %q", core.ErrInvalidArgument, tok)
	}
	return expiry, nil
}

func FormatOption(ctx Context, inst core.Instrument) (string, error) {
	if !inst.HasExpiry() {
		return "", fmt.Errorf("%w: option requires an expiry", core.ErrInvalidArgument)
	}
	if inst.Right != core.Call && inst.Right != core.Put {
		return "", fmt.Errorf("%w: option right must be call or put", core.ErrInvalidArgument)
	}
	if inst.Strike.Cmp(decimal.Zero) <= 0 {
		return "", fmt.Errorf("%w: option strike must be > 0", core.ErrInvalidArgument)
	}
	underlying := inst.Underlying
	if underlying == "" {
		underlying = inst.Root
	}
	underlying = ctx.Table.CanonicalRoot(underlying)
	info, ok := ctx.Table.Lookup(underlying)
	if ok && info.Alias != "" {
		underlying = info.Alias
	}
	market := inst.Market
	if market == "" {
		market = ctx.Markets.Option
	}
	venue, okVenue := exchangeCodeForMarket[market]
	if !okVenue {
		return "", fmt.Errorf("%w: no option venue code for market %q", core.ErrUnsupportedInstrument, market)
	}
	suffix := equitySuffix
	if ok && isClassSuffix(info.TickerSuffix) {
		suffix = info.TickerSuffix
	}
	right := "C"
	if inst.Right == core.Put {
		right = "P"
	}
	return fmt.Sprintf("%s %s %s %s %s %s",
		underlying, venue, inst.Expiry.Format("01/02/06"), right, inst.Strike.StringFixed(2), suffix), nil
}
