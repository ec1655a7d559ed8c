package symbol

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"symbol-mapper/internal/core"
	"symbol-mapper/internal/mapping"
)

var testAsOf = time.Date(2019, time.August, 15, 0, 0, 0, 0, time.UTC)

const testMapping = `
{
	"ZL": {"Alias": "BO", "Market": "CBOT", "SecurityType": "Future", "TickerSuffix": "Comdty", "RootLookupSuffix": "16"},
	"6A": {"Alias": "AD", "Market": "CME", "SecurityType": "Future", "TickerSuffix": "Curncy"},
	"C":  {"Alias": "C", "Market": "CBOT", "SecurityType": "Future", "TickerSuffix": "Comdty"},
	"EURUSD": {"Alias": "EUR", "Market": "FXCM", "SecurityType": "Forex", "TickerSuffix": "BVAL"},
	"SPY": {"Market": "USA", "SecurityType": "Equity"}
}
`

func newTestMapper(t *testing.T) *Mapper {
	t.Helper()
	table, err := mapping.Parse([]byte(testMapping))
	if err != nil {
		t.Fatalf("mapping.Parse() error = %v", err)
	}
	return New(table, Options{Now: func() time.Time { return testAsOf }})
}

func TestGetBrokerageSymbolEquity(t *testing.T) {
	m := newTestMapper(t)
	got, err := m.GetBrokerageSymbol(core.Instrument{Root: "SPY", Type: core.Equity, Market: core.MarketUSA})
	if err != nil {
		t.Fatalf("GetBrokerageSymbol() error = %v", err)
	}
	if got != "SPY US Equity" {
		t.Fatalf("GetBrokerageSymbol() = %q, want %q", got, "SPY US Equity")
	}
}

func TestGetLeanSymbolValuationLegCompletesPair(t *testing.T) {
	m := newTestMapper(t)
	inst, err := m.GetLeanSymbol("EUR BVAL Curncy", "")
	if err != nil {
		t.Fatalf("GetLeanSymbol() error = %v", err)
	}
	if inst.Type != core.Forex || inst.Root != "EURUSD" || inst.Market != core.MarketFXCM {
		t.Fatalf("GetLeanSymbol() = %+v, want EURUSD forex on FXCM", inst)
	}
}

func TestGetBrokerageSymbolCanonicalFutureUsesAlias(t *testing.T) {
	m := newTestMapper(t)
	inst := core.Instrument{
		Root:       "ZL",
		Type:       core.Future,
		Market:     core.MarketCBOT,
		Underlying: "ZL",
		Canonical:  true,
	}
	got, err := m.GetBrokerageSymbol(inst)
	if err != nil {
		t.Fatalf("GetBrokerageSymbol() error = %v", err)
	}
	if got != "BO1 COMB Comdty" {
		t.Fatalf("GetBrokerageSymbol() = %q, want %q", got, "BO1 COMB Comdty")
	}
}

func TestGetLeanSymbolOption(t *testing.T) {
	m := newTestMapper(t)
	inst, err := m.GetLeanSymbol("SPY UO 12/31/19 C 200.00 Equity", "")
	if err != nil {
		t.Fatalf("GetLeanSymbol() error = %v", err)
	}
	if inst.Type != core.Option || inst.Underlying != "SPY" {
		t.Fatalf("GetLeanSymbol() = %+v, want SPY option", inst)
	}
	if inst.Right != core.Call {
		t.Fatalf("right = %q, want %q", inst.Right, core.Call)
	}
	if !inst.Strike.Equal(decimal.RequireFromString("200.00")) {
		t.Fatalf("strike = %s, want 200.00", inst.Strike)
	}
	if inst.Expiry != time.Date(2019, time.December, 31, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("expiry = %s, want 2019-12-31", inst.Expiry)
	}
	if inst.Market != core.MarketUSA {
		t.Fatalf("market = %q, want %q", inst.Market, core.MarketUSA)
	}
}

func TestGetLeanSymbolExchangeTokenIsOptional(t *testing.T) {
	m := newTestMapper(t)
	with, err := m.GetLeanSymbol("BOH0 COMB Comdty", core.Future)
	if err != nil {
		t.Fatalf("GetLeanSymbol(with COMB) error = %v", err)
	}
	without, err := m.GetLeanSymbol("BOH0 Comdty", core.Future)
	if err != nil {
		t.Fatalf("GetLeanSymbol(without COMB) error = %v", err)
	}
	if with.Root != without.Root || with.Market != without.Market || with.Expiry != without.Expiry {
		t.Fatalf("spellings differ: %+v vs %+v", with, without)
	}
	if with.Root != "ZL" {
		t.Fatalf("root = %q, want ZL", with.Root)
	}
	if with.Expiry != time.Date(2020, time.March, 31, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("expiry = %s, want 2020-03-31", with.Expiry)
	}
}

func TestRoundTripPerSecurityType(t *testing.T) {
	m := newTestMapper(t)
	cases := []core.Instrument{
		{Root: "SPY", Type: core.Equity, Market: core.MarketUSA},
		{Root: "EURUSD", Type: core.Forex, Market: core.MarketFXCM},
		{Root: "GBPUSD", Type: core.Forex, Market: core.MarketFXCM},
		{Root: "ZL", Type: core.Future, Market: core.MarketCBOT, Underlying: "ZL", Canonical: true},
		{Root: "ZL", Type: core.Future, Market: core.MarketCBOT, Underlying: "ZL",
			Expiry: time.Date(2020, time.March, 31, 0, 0, 0, 0, time.UTC)},
		{Root: "C", Type: core.Future, Market: core.MarketCBOT, Underlying: "C",
			Expiry: time.Date(2020, time.March, 31, 0, 0, 0, 0, time.UTC)},
		{Root: "6A", Type: core.Future, Market: core.MarketCME, Underlying: "6A",
			Expiry: time.Date(2020, time.June, 30, 0, 0, 0, 0, time.UTC)},
		{Root: "SPY", Type: core.Option, Market: core.MarketUSA, Underlying: "SPY",
			Expiry: time.Date(2019, time.December, 31, 0, 0, 0, 0, time.UTC),
			Right:  core.Put, Strike: decimal.RequireFromString("275.50")},
	}
	for _, want := range cases {
		ticker, err := m.GetBrokerageSymbol(want)
		if err != nil {
			t.Fatalf("GetBrokerageSymbol(%+v) error = %v", want, err)
		}
		again, err := m.GetBrokerageSymbol(want)
		if err != nil {
			t.Fatalf("GetBrokerageSymbol(%+v) second call error = %v", want, err)
		}
		if ticker != again {
			t.Fatalf("formatting is not idempotent: %q vs %q", ticker, again)
		}
		got, err := m.GetLeanSymbol(ticker, want.Type)
		if err != nil {
			t.Fatalf("GetLeanSymbol(%q) error = %v", ticker, err)
		}
		if got.Root != want.Root || got.Type != want.Type || got.Market != want.Market {
			t.Fatalf("round trip of %q = %+v, want %+v", ticker, got, want)
		}
		if got.Expiry != want.Expiry || got.Canonical != want.Canonical {
			t.Fatalf("round trip of %q lost expiry/canonical: %+v, want %+v", ticker, got, want)
		}
		if want.Type == core.Option {
			if got.Right != want.Right || !got.Strike.Equal(want.Strike) {
				t.Fatalf("round trip of %q lost right/strike: %+v, want %+v", ticker, got, want)
			}
		}
	}
}

func TestGetLeanSymbolUnknownRootFallsBack(t *testing.T) {
	m := newTestMapper(t)
	inst, err := m.GetLeanSymbol("XYZU9 Comdty", core.Future)
	if err != nil {
		t.Fatalf("GetLeanSymbol() error = %v", err)
	}
	if inst.Root != "XYZ" {
		t.Fatalf("root = %q, want literal XYZ", inst.Root)
	}
	if inst.Market != core.MarketCME {
		t.Fatalf("market = %q, want default %q", inst.Market, core.MarketCME)
	}
}

func TestGetLeanSymbolRejectsEmptyTicker(t *testing.T) {
	m := newTestMapper(t)
	if _, err := m.GetLeanSymbol("   ", ""); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("GetLeanSymbol(blank) error = %v, want %v", err, core.ErrInvalidArgument)
	}
}

func TestGetBrokerageSymbolRejectsEmptyAndUnsupported(t *testing.T) {
	m := newTestMapper(t)
	if _, err := m.GetBrokerageSymbol(core.Instrument{}); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("GetBrokerageSymbol(zero) error = %v, want %v", err, core.ErrInvalidArgument)
	}
	cfd := core.Instrument{Root: "SPX", Type: core.Cfd, Market: core.MarketUSA}
	if _, err := m.GetBrokerageSymbol(cfd); !errors.Is(err, core.ErrUnsupportedInstrument) {
		t.Fatalf("GetBrokerageSymbol(cfd) error = %v, want %v", err, core.ErrUnsupportedInstrument)
	}
}

func TestGetLeanSymbolUnmatchedShapeIsAmbiguous(t *testing.T) {
	m := newTestMapper(t)
	if _, err := m.GetLeanSymbol("definitely not a ticker", ""); !errors.Is(err, core.ErrAmbiguousFormat) {
		t.Fatalf("GetLeanSymbol(garbage) error = %v, want %v", err, core.ErrAmbiguousFormat)
	}
	if _, err := m.GetLeanSymbol("SPY US Equity", core.Forex); !errors.Is(err, core.ErrAmbiguousFormat) {
		t.Fatalf("GetLeanSymbol(hint mismatch) error = %v, want %v", err, core.ErrAmbiguousFormat)
	}
}

func TestGetLeanSymbolCanonicalTakesPrecedenceOverDated(t *testing.T) {
	// "SF1" reads as both chain symbol "SF" and January contract of root
	// "S"; the canonical grammar wins without a more specific hint.
	m := newTestMapper(t)
	inst, err := m.GetLeanSymbol("SF1 Comdty", core.Future)
	if err != nil {
		t.Fatalf("GetLeanSymbol() error = %v", err)
	}
	if !inst.Canonical {
		t.Fatalf("GetLeanSymbol(SF1) = %+v, want canonical chain symbol", inst)
	}
	if inst.Root != "SF" {
		t.Fatalf("root = %q, want SF", inst.Root)
	}
}

func TestInternalTickerUsesConfiguredInfix(t *testing.T) {
	m := newTestMapper(t)
	dated := core.Instrument{
		Root:       "ZL",
		Type:       core.Future,
		Market:     core.MarketCBOT,
		Underlying: "ZL",
		Expiry:     time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
	}
	got, err := m.InternalTicker(dated)
	if err != nil {
		t.Fatalf("InternalTicker() error = %v", err)
	}
	if got != "ZL16H24" {
		t.Fatalf("InternalTicker() = %q, want %q", got, "ZL16H24")
	}

	plain := core.Instrument{
		Root:       "6A",
		Type:       core.Future,
		Market:     core.MarketCME,
		Underlying: "6A",
		Expiry:     time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
	}
	got, err = m.InternalTicker(plain)
	if err != nil {
		t.Fatalf("InternalTicker() error = %v", err)
	}
	if got != "6AH24" {
		t.Fatalf("InternalTicker() = %q, want %q", got, "6AH24")
	}
}
