package symbol

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"symbol-mapper/internal/core"
	"symbol-mapper/internal/futures"
	"symbol-mapper/internal/gateway"
	"symbol-mapper/internal/grammar"
	"symbol-mapper/internal/mapping"
)

// Options configures a Mapper. Zero fields fall back to defaults matching
// the vendor's conventions.
type Options struct {
	DefaultQuote string
	Markets      grammar.MarketDefaults
	YearHorizon  int
	Provider     gateway.ChainProvider
	Now          func() time.Time
	Logger       *zap.Logger
}

// Mapper translates between vendor terminal tickers and internal
// instruments. It owns an immutable mapping table and performs no I/O after
// construction, so calls may run concurrently without locking.
type Mapper struct {
	table    *mapping.Table
	grammars []grammar.Grammar
	opts     Options
	logger   *zap.Logger
}

func New(table *mapping.Table, opts Options) *Mapper {
	if table == nil {
		table, _ = mapping.Parse(nil)
	}
	if opts.DefaultQuote == "" {
		opts.DefaultQuote = "USD"
	}
	if opts.Markets.Equity == "" {
		opts.Markets.Equity = core.MarketUSA
	}
	if opts.Markets.Forex == "" {
		opts.Markets.Forex = core.MarketFXCM
	}
	if opts.Markets.Future == "" {
		opts.Markets.Future = core.MarketCME
	}
	if opts.Markets.Option == "" {
		opts.Markets.Option = core.MarketUSA
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Mapper{
		table:    table,
		grammars: grammar.All(),
		opts:     opts,
		logger:   opts.Logger,
	}
}

func (m *Mapper) context() grammar.Context {
	return grammar.Context{
		Table:        m.table,
		Resolver:     futures.Resolver{Horizon: m.opts.YearHorizon},
		DefaultQuote: m.opts.DefaultQuote,
		Markets:      m.opts.Markets,
		AsOf:         m.opts.Now().UTC(),
	}
}

// GetBrokerageSymbol renders an internal instrument as a vendor ticker.
func (m *Mapper) GetBrokerageSymbol(inst core.Instrument) (string, error) {
	if err := inst.Validate(); err != nil {
		return "", err
	}
	ctx := m.context()
	switch inst.Type {
	case core.Equity:
		return grammar.FormatEquity(ctx, inst)
	case core.Forex:
		return grammar.FormatForex(ctx, inst)
	case core.Future:
		return grammar.FormatFuture(ctx, inst)
	case core.Option:
		return grammar.FormatOption(ctx, inst)
	default:
		return "", fmt.Errorf("%w: security type %q", core.ErrUnsupportedInstrument, inst.Type)
	}
}

// GetLeanSymbol parses a vendor ticker into an internal instrument. Without
// a hint, grammars run in fixed precedence order; a shape acceptable to more
// than one security type is rejected as ambiguous.
func (m *Mapper) GetLeanSymbol(ticker string, hint core.SecurityType) (core.Instrument, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return core.Instrument{}, fmt.Errorf("%w: empty ticker", core.ErrInvalidArgument)
	}
	tokens := strings.Fields(ticker)
	ctx := m.context()
	if hint != "" {
		for _, g := range m.grammars {
			if g.Type != hint || !g.Match(tokens) {
				continue
			}
			return g.Parse(ctx, tokens)
		}
		return core.Instrument{}, fmt.Errorf("%w: %q does not parse as %s", core.ErrAmbiguousFormat, ticker, hint)
	}
	var matched []grammar.Grammar
	types := make(map[core.SecurityType]struct{})
	for _, g := range m.grammars {
		if g.Match(tokens) {
			matched = append(matched, g)
			types[g.Type] = struct{}{}
		}
	}
	if len(matched) == 0 {
		return core.Instrument{}, fmt.Errorf("%w: %q matches no known grammar", core.ErrAmbiguousFormat, ticker)
	}
	if len(types) > 1 {
		m.logger.Debug("ticker shape is ambiguous", zap.String("ticker", ticker), zap.Int("grammars", len(matched)))
		return core.Instrument{}, fmt.Errorf("%w: %q matches %d grammars, a security type hint is required",
			core.ErrAmbiguousFormat, ticker, len(matched))
	}
	return matched[0].Parse(ctx, tokens)
}

// InternalTicker renders the instrument's internal display ticker. For dated
// futures the per-root sequence infix comes from the mapping table; it is
// configuration data, never derived from the vendor year digit.
func (m *Mapper) InternalTicker(inst core.Instrument) (string, error) {
	if err := inst.Validate(); err != nil {
		return "", err
	}
	root := m.table.CanonicalRoot(inst.Root)
	switch inst.Type {
	case core.Equity, core.Forex:
		return root, nil
	case core.Future:
		if inst.Canonical {
			return root, nil
		}
		letter, err := futures.MonthLetter(inst.Expiry.Month())
		if err != nil {
			return "", err
		}
		infix := ""
		if info, ok := m.table.Lookup(root); ok {
			infix = info.RootLookupSuffix
		}
		return fmt.Sprintf("%s%s%c%02d", root, infix, letter, inst.Expiry.Year()%100), nil
	case core.Option:
		right := "C"
		if inst.Right == core.Put {
			right = "P"
		}
		return fmt.Sprintf("%s %s%s%s", root, inst.Expiry.Format("060102"), right, inst.Strike.StringFixed(2)), nil
	default:
		return "", fmt.Errorf("%w: security type %q", core.ErrUnsupportedInstrument, inst.Type)
	}
}
