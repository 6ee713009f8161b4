package asset

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// MaxDecimals bounds the decimal precision any coin in the protocol
// may declare.
const MaxDecimals = 18

// ScaleToBaseUnits converts a human-unit decimal string to the ledger's
// base-unit integer representation. This is the single canonical
// conversion: every component exchanges amounts as base-unit integers
// so no rounding drift accumulates across hops.
func ScaleToBaseUnits(human string, decimals uint8) (*big.Int, error) {
	if decimals > MaxDecimals {
		return nil, fmt.Errorf("asset: decimals %d exceeds maximum %d", decimals, MaxDecimals)
	}

	d, err := decimal.NewFromString(human)
	if err != nil {
		return nil, fmt.Errorf("asset: invalid decimal string %q: %w", human, err)
	}
	if d.IsNegative() {
		return nil, ErrNegativeAmount
	}

	scaled := d.Shift(int32(decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, fmt.Errorf("%w: %q at %d decimals", ErrTooManyDecimals, human, decimals)
	}

	return scaled.BigInt(), nil
}

// ScaleToHuman is the inverse of ScaleToBaseUnits: it converts a
// base-unit integer back to a human-unit decimal.
func ScaleToHuman(raw *big.Int, decimals uint8) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -int32(decimals))
}

// Ratio is an exchange rate between two coins that may be undefined
// (zero denominator). The caller decides the fallback policy for an
// undefined ratio; this package never picks one.
type Ratio struct {
	rate    decimal.Decimal
	defined bool
}

// NewRatio computes num/den. A zero denominator yields the undefined
// ratio rather than an error.
func NewRatio(num, den decimal.Decimal) Ratio {
	if den.IsZero() {
		return Ratio{}
	}
	return Ratio{rate: num.Div(den), defined: true}
}

// UndefinedRatio is the sentinel for a ratio with no defined value.
func UndefinedRatio() Ratio {
	return Ratio{}
}

// Defined reports whether the ratio has a value.
func (r Ratio) Defined() bool {
	return r.defined
}

// Rate returns the ratio value and whether it is defined.
func (r Ratio) Rate() (decimal.Decimal, bool) {
	return r.rate, r.defined
}

// String returns the rate, or "undefined".
func (r Ratio) String() string {
	if !r.defined {
		return "undefined"
	}
	return r.rate.String()
}
