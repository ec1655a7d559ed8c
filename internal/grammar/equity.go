package grammar

import (
	"fmt"
	"strings"

	"symbol-mapper/internal/core"
)

const equitySuffix = "Equity"

// Vendor exchange codes resolve to internal market codes through a fixed
// table; composite US venues all collapse onto the USA market.
var marketForExchangeCode = map[string]string{
	"US": core.MarketUSA,
	"UN": core.MarketUSA,
	"UW": core.MarketUSA,
	"UA": core.MarketUSA,
	"UQ": core.MarketUSA,
	"UO": core.MarketUSA,
	"LN": core.MarketUK,
	"CN": core.MarketCAN,
}

var exchangeCodeForMarket = map[string]string{
	core.MarketUSA: "US",
	core.MarketUK:  "LN",
	core.MarketCAN: "CN",
}

func matchEquity(tokens []string) bool {
	if len(tokens) < 3 || tokens[len(tokens)-1] != equitySuffix {
		return false
	}
	for _, tok := range tokens {
		if strings.Contains(tok, "/") {
			return false
		}
	}
	_, ok := marketForExchangeCode[strings.ToUpper(tokens[len(tokens)-2])]
	return ok
}

func parseEquity(ctx Context, tokens []string) (core.Instrument, error) {
	code := strings.ToUpper(tokens[len(tokens)-2])
	market, ok := marketForExchangeCode[code]
	if !ok {
		return core.Instrument{}, fmt.Errorf("%w: unknown exchange code %q", core.ErrUnsupportedInstrument, code)
	}
	root := strings.Join(tokens[:len(tokens)-2], " ")
	if internal, ok := ctx.Table.RootForAlias(root); ok {
		root = internal
	} else {
		root = ctx.Table.CanonicalRoot(root)
	}
	if info, ok := ctx.Table.Lookup(root); ok && info.Market != "" {
		market = info.Market
	}
	return core.Instrument{
		Root:   root,
		Type:   core.Equity,
		Market: market,
	}, nil
}

func FormatEquity(ctx Context, inst core.Instrument) (string, error) {
	root := ctx.Table.CanonicalRoot(inst.Root)
	if info, ok := ctx.Table.Lookup(inst.Root); ok && info.Alias != "" {
		root = info.Alias
	}
	market := inst.Market
	if market == "" {
		market = ctx.Markets.Equity
	}
	code, ok := exchangeCodeForMarket[market]
	if !ok {
		return "", fmt.Errorf("%w: no equity exchange code for market %q", core.ErrUnsupportedInstrument, market)
	}
	return root + " " + code + " " + equitySuffix, nil
}
