package grammar

import (
	"time"

	"symbol-mapper/internal/core"
	"symbol-mapper/internal/futures"
	"symbol-mapper/internal/mapping"
)

// Context carries the read-only collaborators a grammar needs. Grammars hold
// no state of their own; the same tokens and context always produce the same
// result.
type Context struct {
	Table        *mapping.Table
	Resolver     futures.Resolver
	DefaultQuote string
	Markets      MarketDefaults
	AsOf         time.Time
}

// MarketDefaults supplies the market assumed when a root has no mapping record.
type MarketDefaults struct {
	Equity string
	Forex  string
	Future string
	Option string
}

// Grammar pairs a token-shape predicate with a parser for one instrument
// class. Match must be cheap and side-effect free; Parse may still reject a
// matching shape with a typed error.
type Grammar struct {
	Type  core.SecurityType
	Match func(tokens []string) bool
	Parse func(ctx Context, tokens []string) (core.Instrument, error)
}

// All returns the grammars in dispatch precedence order: equity, forex,
// canonical future, dated future, option.
func All() []Grammar {
	return []Grammar{
		{Type: core.Equity, Match: matchEquity, Parse: parseEquity},
		{Type: core.Forex, Match: matchForex, Parse: parseForex},
		{Type: core.Future, Match: matchFutureCanonical, Parse: parseFutureCanonical},
		{Type: core.Future, Match: matchFutureDated, Parse: parseFutureDated},
		{Type: core.Option, Match: matchOption, Parse: parseOption},
	}
}

const combToken = "COMB"

func isClassSuffix(tok string) bool {
	switch tok {
	case "Comdty", "Curncy", "Index":
		return true
	}
	return false
}

func allLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isMonthLetter(b byte) bool {
	_, err := futures.MonthForLetter(b)
	return err == nil
}

// splitContractTicker splits a dated contract ticker like "BOH0" or "ZLH24"
// into alias, month letter, and year digits.
func splitContractTicker(tok string) (alias string, letter byte, digits string, ok bool) {
	i := len(tok)
	for i > 0 && tok[i-1] >= '0' && tok[i-1] <= '9' {
		i--
	}
	digits = tok[i:]
	if len(digits) < 1 || len(digits) > 2 {
		return "", 0, "", false
	}
	if i < 2 {
		return "", 0, "", false
	}
	letter = tok[i-1]
	if !isMonthLetter(letter) {
		return "", 0, "", false
	}
	alias = tok[:i-1]
	if !allLetters(alias) {
		return "", 0, "", false
	}
	return alias, letter, digits, true
}
