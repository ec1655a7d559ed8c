package gateway

import (
	"context"
	"strings"

	"symbol-mapper/internal/core"
)

// ChainProvider is the published interface of the execution/market-data
// gateway. It answers which vendor contracts exist for a root; the mapper
// never implements it, only consumes it.
type ChainProvider interface {
	Chain(ctx context.Context, root string, securityType core.SecurityType, includeExpired bool) ([]string, error)
}

type chainKey struct {
	root         string
	securityType core.SecurityType
}

// Static serves fixed in-memory chains. It backs tests and offline tooling
// where no live gateway is available.
type Static struct {
	chains map[chainKey][]string
}

func NewStatic() *Static {
	return &Static{chains: make(map[chainKey][]string)}
}

func (s *Static) Add(root string, securityType core.SecurityType, tickers ...string) {
	key := chainKey{root: strings.ToUpper(strings.TrimSpace(root)), securityType: securityType}
	s.chains[key] = append(s.chains[key], tickers...)
}

func (s *Static) Chain(_ context.Context, root string, securityType core.SecurityType, _ bool) ([]string, error) {
	key := chainKey{root: strings.ToUpper(strings.TrimSpace(root)), securityType: securityType}
	chain := s.chains[key]
	out := make([]string, len(chain))
	copy(out, chain)
	return out, nil
}
