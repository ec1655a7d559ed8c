package symbol

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"go.uber.org/zap"

	"symbol-mapper/internal/core"
)

// LookupSymbols yields the instruments of a contract chain. The sequence is
// lazy and restartable: each range re-queries the chain provider, so a
// second iteration observes the gateway's current view. Chain discovery
// itself stays with the gateway; the mapper only parses what it returns.
func (m *Mapper) LookupSymbols(ctx context.Context, root string, securityType core.SecurityType, includeExpired bool) iter.Seq2[core.Instrument, error] {
	return func(yield func(core.Instrument, error) bool) {
		if strings.TrimSpace(root) == "" {
			yield(core.Instrument{}, fmt.Errorf("%w: empty root", core.ErrInvalidArgument))
			return
		}
		if m.opts.Provider == nil {
			yield(core.Instrument{}, fmt.Errorf("%w: no chain provider configured", core.ErrInvalidArgument))
			return
		}
		tickers, err := m.opts.Provider.Chain(ctx, root, securityType, includeExpired)
		if err != nil {
			yield(core.Instrument{}, err)
			return
		}
		now := m.opts.Now().UTC()
		for _, ticker := range tickers {
			inst, err := m.GetLeanSymbol(ticker, securityType)
			if err != nil {
				m.logger.Debug("chain element did not parse", zap.String("ticker", ticker), zap.Error(err))
				if !yield(core.Instrument{}, err) {
					return
				}
				continue
			}
			if !includeExpired && inst.HasExpiry() && inst.Expiry.Before(now) {
				continue
			}
			if !yield(inst, nil) {
				return
			}
		}
	}
}
