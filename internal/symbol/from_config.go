package symbol

import (
	"go.uber.org/zap"

	"symbol-mapper/internal/config"
	"symbol-mapper/internal/gateway"
	"symbol-mapper/internal/grammar"
	"symbol-mapper/internal/mapping"
)

// NewFromConfig loads the mapping table named by cfg and builds a mapper
// with the configured defaults. This is the one-time initialization step;
// the returned mapper performs no further I/O.
func NewFromConfig(cfg config.Config, provider gateway.ChainProvider, logger *zap.Logger) (*Mapper, error) {
	table, err := mapping.Load(cfg.MappingFile, logger)
	if err != nil {
		return nil, err
	}
	return New(table, Options{
		DefaultQuote: cfg.DefaultQuoteCurrency,
		Markets: grammar.MarketDefaults{
			Equity: cfg.DefaultMarkets.Equity,
			Forex:  cfg.DefaultMarkets.Forex,
			Future: cfg.DefaultMarkets.Future,
			Option: cfg.DefaultMarkets.Option,
		},
		YearHorizon: cfg.YearHorizon,
		Provider:    provider,
		Logger:      logger,
	}), nil
}
