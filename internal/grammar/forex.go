package grammar

import (
	"fmt"
	"strings"

	"symbol-mapper/internal/core"
)

const (
	curncySuffix = "Curncy"
	bvalToken    = "BVAL"
	pairLength   = 6
	legLength    = 3
)

func matchForex(tokens []string) bool {
	if tokens[len(tokens)-1] != curncySuffix {
		return false
	}
	switch len(tokens) {
	case 2:
		return allLetters(tokens[0]) && len(tokens[0]) >= pairLength
	case 3:
		return strings.ToUpper(tokens[1]) == bvalToken && allLetters(tokens[0]) && len(tokens[0]) == legLength
	}
	return false
}

func parseForex(ctx Context, tokens []string) (core.Instrument, error) {
	if len(tokens) == 3 {
		return parseForexLeg(ctx, tokens[0])
	}
	return parseForexPair(ctx, tokens[0])
}

// parseForexLeg handles the vendor's single-leg valuation form: the ticker
// carries only the base currency, the quote side comes from the mapping
// record or the configured default.
func parseForexLeg(ctx Context, leg string) (core.Instrument, error) {
	leg = strings.ToUpper(leg)
	pair := leg + ctx.DefaultQuote
	if root, ok := ctx.Table.RootForAlias(leg); ok && len(root) == pairLength {
		pair = strings.ToUpper(root)
	}
	return core.Instrument{
		Root:   pair,
		Type:   core.Forex,
		Market: forexMarket(ctx, pair),
	}, nil
}

func parseForexPair(ctx Context, tok string) (core.Instrument, error) {
	pair := strings.ToUpper(tok)
	if len(pair) > pairLength {
		// Pair rendered with a vendor pricing-source suffix; only a mapping
		// record can say where the pair ends and the suffix begins.
		root, ok := ctx.Table.RootForAlias(pair)
		if !ok || len(root) != pairLength {
			return core.Instrument{}, fmt.Errorf("%w: unknown currency ticker %q", core.ErrInvalidArgument, tok)
		}
		pair = strings.ToUpper(root)
	}
	return core.Instrument{
		Root:   pair,
		Type:   core.Forex,
		Market: forexMarket(ctx, pair),
	}, nil
}

func forexMarket(ctx Context, pair string) string {
	if info, ok := ctx.Table.Lookup(pair); ok && info.Market != "" {
		return info.Market
	}
	return ctx.Markets.Forex
}

func FormatForex(ctx Context, inst core.Instrument) (string, error) {
	pair := strings.ToUpper(strings.TrimSpace(inst.Root))
	if len(pair) != pairLength || !allLetters(pair) {
		return "", fmt.Errorf("%w: %q is not a 6-letter currency pair", core.ErrInvalidArgument, inst.Root)
	}
	info, ok := ctx.Table.Lookup(pair)
	if ok && strings.EqualFold(info.TickerSuffix, bvalToken) {
		leg := strings.ToUpper(info.Alias)
		if leg == "" {
			leg = pair[:legLength]
		}
		return leg + " " + bvalToken + " " + curncySuffix, nil
	}
	if ok && info.TickerSuffix != "" {
		return pair + info.TickerSuffix + " " + curncySuffix, nil
	}
	return pair + " " + curncySuffix, nil
}
