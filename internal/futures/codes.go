package futures

import (
	"fmt"
	"strconv"
	"time"

	"symbol-mapper/internal/core"
)

// Contract month codes in calendar order, January through December.
const monthCodes = "FGHJKMNQUVXZ"

// DefaultHorizon bounds how many years past the as-of date single-digit year
// resolution will search before giving up.
const DefaultHorizon = 20

func MonthLetter(m time.Month) (byte, error) {
	if m < time.January || m > time.December {
		return 0, fmt.Errorf("%w: month %d has no contract code", core.ErrUnsupportedInstrument, int(m))
	}
	return monthCodes[m-1], nil
}

func MonthForLetter(letter byte) (time.Month, error) {
	for i := 0; i < len(monthCodes); i++ {
		if monthCodes[i] == letter {
			return time.Month(i + 1), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown contract month code %q", core.ErrUnsupportedInstrument, string(letter))
}

// Resolver turns the 1- or 2-digit year of a vendor contract ticker into a
// full calendar year. The zero value is ready to use.
type Resolver struct {
	Horizon int
}

func (r Resolver) horizon() int {
	if r.Horizon > 0 {
		return r.Horizon
	}
	return DefaultHorizon
}

// ResolveYear resolves yearDigits relative to asOf. Two digits are
// unambiguous and use a fixed century pivot. A single digit is matched
// against decades searching forward from asOf, preferring the earliest
// candidate whose contract month has not already passed.
func (r Resolver) ResolveYear(monthLetter byte, yearDigits string, asOf time.Time) (int, error) {
	month, err := MonthForLetter(monthLetter)
	if err != nil {
		return 0, err
	}
	switch len(yearDigits) {
	case 1:
		digit := int(yearDigits[0] - '0')
		if digit < 0 || digit > 9 {
			return 0, fmt.Errorf("%w: year digits %q", core.ErrInvalidArgument, yearDigits)
		}
		return r.resolveDecade(month, digit, asOf)
	case 2:
		value, err := strconv.Atoi(yearDigits)
		if err != nil || value < 0 {
			return 0, fmt.Errorf("%w: year digits %q", core.ErrInvalidArgument, yearDigits)
		}
		return r.PivotYear(value, asOf), nil
	default:
		return 0, fmt.Errorf("%w: year digits %q", core.ErrInvalidArgument, yearDigits)
	}
}

// PivotYear maps a two-digit year into the century containing asOf, sliding
// back one century when the candidate lands beyond the forward horizon.
func (r Resolver) PivotYear(twoDigit int, asOf time.Time) int {
	century := asOf.Year() - asOf.Year()%100
	year := century + twoDigit%100
	if year > asOf.Year()+r.horizon() {
		year -= 100
	}
	return year
}

func (r Resolver) resolveDecade(month time.Month, digit int, asOf time.Time) (int, error) {
	year := asOf.Year() - asOf.Year()%10 + digit
	limit := asOf.Year() + r.horizon()
	for ; year <= limit; year += 10 {
		if year > asOf.Year() || (year == asOf.Year() && month >= asOf.Month()) {
			return year, nil
		}
	}
	return 0, fmt.Errorf("%w: no %s contract year ending in %d within %d years of %s",
		core.ErrAmbiguousYear, month, digit, r.horizon(), asOf.Format("2006-01-02"))
}
