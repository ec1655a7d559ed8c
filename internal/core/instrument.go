package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Validate checks the structural invariants an Instrument must hold before it
// can be rendered as a vendor ticker.
func (i Instrument) Validate() error {
	if i.IsZero() {
		return fmt.Errorf("%w: empty instrument", ErrInvalidArgument)
	}
	if i.Root == "" {
		return fmt.Errorf("%w: instrument root is required", ErrInvalidArgument)
	}
	switch i.Type {
	case Equity, Forex:
		if i.HasExpiry() {
			return fmt.Errorf("%w: %s must not carry an expiry", ErrInvalidArgument, i.Type)
		}
	case Future:
		if i.Canonical && i.HasExpiry() {
			return fmt.Errorf("%w: canonical future must not carry an expiry", ErrInvalidArgument)
		}
		if !i.Canonical && !i.HasExpiry() {
			return fmt.Errorf("%w: dated future requires an expiry", ErrInvalidArgument)
		}
		if i.Right != "" || i.Strike.Cmp(decimal.Zero) != 0 {
			return fmt.Errorf("%w: future must not carry right or strike", ErrInvalidArgument)
		}
	case Option:
		if !i.HasExpiry() {
			return fmt.Errorf("%w: option requires an expiry", ErrInvalidArgument)
		}
		if i.Right != Call && i.Right != Put {
			return fmt.Errorf("%w: option right must be call or put", ErrInvalidArgument)
		}
		if i.Strike.Cmp(decimal.Zero) <= 0 {
			return fmt.Errorf("%w: option strike must be > 0", ErrInvalidArgument)
		}
	case Cfd:
		return fmt.Errorf("%w: security type %q", ErrUnsupportedInstrument, i.Type)
	default:
		return fmt.Errorf("%w: security type %q", ErrUnsupportedInstrument, i.Type)
	}
	return nil
}
