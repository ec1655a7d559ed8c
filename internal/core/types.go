package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type SecurityType string

type OptionRight string

const (
	Equity SecurityType = "EQUITY"
	Forex  SecurityType = "FOREX"
	Future SecurityType = "FUTURE"
	Option SecurityType = "OPTION"
	Cfd    SecurityType = "CFD"
)

const (
	Call OptionRight = "CALL"
	Put  OptionRight = "PUT"
)

const (
	MarketUSA  = "USA"
	MarketUK   = "UK"
	MarketCAN  = "CAN"
	MarketFXCM = "FXCM"
	MarketCME  = "CME"
	MarketCBOT = "CBOT"
	MarketICE  = "ICE"
)

// Instrument is the internal identifier a vendor ticker maps to and from.
// Values are built fresh per call and never mutated afterwards.
type Instrument struct {
	Root       string
	Type       SecurityType
	Market     string
	Underlying string
	Expiry     time.Time
	Right      OptionRight
	Strike     decimal.Decimal
	Canonical  bool
}

func (i Instrument) IsZero() bool {
	return i.Root == "" && i.Type == ""
}

func (i Instrument) HasExpiry() bool {
	return !i.Expiry.IsZero()
}
