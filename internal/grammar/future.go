package grammar

import (
	"fmt"
	"strings"
	"time"

	"symbol-mapper/internal/core"
	"symbol-mapper/internal/futures"
	"symbol-mapper/internal/mapping"
)

const canonicalDigit = "1"

// stripComb removes the optional exchange token so that spellings with and
// without it parse identically.
func stripComb(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if strings.ToUpper(tok) == combToken {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func matchFutureCanonical(tokens []string) bool {
	tokens = stripComb(tokens)
	if len(tokens) != 2 || !isClassSuffix(tokens[1]) {
		return false
	}
	tick := tokens[0]
	return len(tick) >= 2 && strings.HasSuffix(tick, canonicalDigit) && allLetters(tick[:len(tick)-1])
}

func matchFutureDated(tokens []string) bool {
	tokens = stripComb(tokens)
	switch len(tokens) {
	case 2:
		if !isClassSuffix(tokens[1]) {
			return false
		}
		_, _, _, ok := splitContractTicker(tokens[0])
		return ok
	case 3:
		// Single-character roots are padded with a literal space, so the
		// contract code arrives as its own token: "C H0 Comdty".
		if !isClassSuffix(tokens[2]) || len(tokens[0]) != 1 || !allLetters(tokens[0]) {
			return false
		}
		return isContractCode(tokens[1])
	}
	return false
}

func isContractCode(tok string) bool {
	if len(tok) < 2 || len(tok) > 3 {
		return false
	}
	return isMonthLetter(tok[0]) && allDigits(tok[1:])
}

func parseFutureCanonical(ctx Context, tokens []string) (core.Instrument, error) {
	tokens = stripComb(tokens)
	alias := strings.TrimSuffix(tokens[0], canonicalDigit)
	root, info := resolveFutureRoot(ctx, alias)
	return core.Instrument{
		Root:       root,
		Type:       core.Future,
		Market:     futureMarket(ctx, info),
		Underlying: root,
		Canonical:  true,
	}, nil
}

func parseFutureDated(ctx Context, tokens []string) (core.Instrument, error) {
	tokens = stripComb(tokens)
	var alias, digits string
	var letter byte
	if len(tokens) == 3 {
		alias = tokens[0]
		letter = tokens[1][0]
		digits = tokens[1][1:]
	} else {
		var ok bool
		alias, letter, digits, ok = splitContractTicker(tokens[0])
		if !ok {
			return core.Instrument{}, fmt.Errorf("%w: %q is not a dated contract ticker", core.ErrInvalidArgument, tokens[0])
		}
	}
	month, err := futures.MonthForLetter(letter)
	if err != nil {
		return core.Instrument{}, err
	}
	year, err := ctx.Resolver.ResolveYear(letter, digits, ctx.AsOf)
	if err != nil {
		return core.Instrument{}, err
	}
	root, info := resolveFutureRoot(ctx, alias)
	return core.Instrument{
		Root:       root,
		Type:       core.Future,
		Market:     futureMarket(ctx, info),
		Underlying: root,
		Expiry:     lastDayOfMonth(year, month),
	}, nil
}

func resolveFutureRoot(ctx Context, alias string) (string, mapping.Info) {
	root := alias
	if internal, ok := ctx.Table.RootForAlias(alias); ok {
		root = internal
	}
	info, _ := ctx.Table.Lookup(root)
	return root, info
}

func futureMarket(ctx Context, info mapping.Info) string {
	if info.Market != "" {
		return info.Market
	}
	return ctx.Markets.Future
}

func classSuffix(info mapping.Info) string {
	if isClassSuffix(info.TickerSuffix) {
		return info.TickerSuffix
	}
	return "Comdty"
}

func futureAlias(ctx Context, root string) string {
	if info, ok := ctx.Table.Lookup(root); ok && info.Alias != "" {
		return info.Alias
	}
	return ctx.Table.CanonicalRoot(root)
}

func FormatFuture(ctx Context, inst core.Instrument) (string, error) {
	alias := futureAlias(ctx, inst.Root)
	info, _ := ctx.Table.Lookup(inst.Root)
	if inst.Canonical {
		return alias + canonicalDigit + " " + combToken + " " + classSuffix(info), nil
	}
	if !inst.HasExpiry() {
		return "", fmt.Errorf("%w: dated future requires an expiry", core.ErrInvalidArgument)
	}
	letter, err := futures.MonthLetter(inst.Expiry.Month())
	if err != nil {
		return "", err
	}
	if len(alias) == 1 {
		// Vendor grammar pads single-character roots to keep column widths.
		alias += " "
	}
	return fmt.Sprintf("%s%c%02d %s %s", alias, letter, inst.Expiry.Year()%100, combToken, classSuffix(info)), nil
}

func lastDayOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}
