package asset

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrNilCoin         = errors.New("asset: nil coin")
	ErrNilRaw          = errors.New("asset: nil raw value")
	ErrNegativeAmount  = errors.New("asset: negative amount")
	ErrCoinMismatch    = errors.New("asset: cannot operate on different coins")
	ErrNegativeResult  = errors.New("asset: operation would result in negative amount")
	ErrTooManyDecimals = errors.New("asset: too many decimal places for coin")
)

// Amount is an immutable Value Object representing a quantity of a coin.
// The raw value is always in base units (the 10^decimals fixed-point
// integer the ledger itself accounts in).
type Amount struct {
	raw  *big.Int
	coin *Coin
}

// NewAmount creates a new Amount from a raw big.Int base-unit value.
func NewAmount(coin *Coin, raw *big.Int) Amount {
	if coin == nil {
		panic(ErrNilCoin)
	}
	if raw == nil {
		panic(ErrNilRaw)
	}
	if raw.Sign() < 0 {
		panic(ErrNegativeAmount)
	}

	return Amount{
		raw:  new(big.Int).Set(raw), // defensive copy
		coin: coin,
	}
}

// Zero creates a zero Amount for the given coin.
func Zero(coin *Coin) Amount {
	return NewAmount(coin, big.NewInt(0))
}

// Raw returns a copy of the raw base-unit value.
func (a Amount) Raw() *big.Int {
	if a.raw == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(a.raw)
}

// BaseUnits returns the raw value as a decimal string, the canonical
// wire form for chain call arguments.
func (a Amount) BaseUnits() string {
	if a.raw == nil {
		return "0"
	}
	return a.raw.String()
}

// Coin returns the coin this amount is denominated in.
func (a Amount) Coin() *Coin {
	return a.coin
}

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool {
	return a.raw == nil || a.raw.Sign() == 0
}

// IsPositive returns true if the amount is greater than zero.
func (a Amount) IsPositive() bool {
	return a.raw != nil && a.raw.Sign() > 0
}

// Add adds two amounts of the same coin.
func (a Amount) Add(b Amount) (Amount, error) {
	if err := a.checkSameCoin(b); err != nil {
		return Amount{}, err
	}
	return NewAmount(a.coin, new(big.Int).Add(a.raw, b.raw)), nil
}

// MustAdd adds two amounts, panics on error.
func (a Amount) MustAdd(b Amount) Amount {
	result, err := a.Add(b)
	if err != nil {
		panic(err)
	}
	return result
}

// Sub subtracts b from a (same coin only).
func (a Amount) Sub(b Amount) (Amount, error) {
	if err := a.checkSameCoin(b); err != nil {
		return Amount{}, err
	}
	if a.raw.Cmp(b.raw) < 0 {
		return Amount{}, ErrNegativeResult
	}
	return NewAmount(a.coin, new(big.Int).Sub(a.raw, b.raw)), nil
}

// Cmp compares two amounts of the same coin.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
func (a Amount) Cmp(b Amount) (int, error) {
	if err := a.checkSameCoin(b); err != nil {
		return 0, err
	}
	return a.raw.Cmp(b.raw), nil
}

// Equals returns true if both amounts are equal (same coin and value).
func (a Amount) Equals(b Amount) bool {
	if !a.coin.Equals(b.coin) {
		return false
	}
	return a.raw.Cmp(b.raw) == 0
}

// LessThanOrEqual returns true if a <= b.
func (a Amount) LessThanOrEqual(b Amount) (bool, error) {
	cmp, err := a.Cmp(b)
	if err != nil {
		return false, err
	}
	return cmp <= 0, nil
}

// ToDecimal converts the amount to a human-unit decimal for display.
// This is a BOUNDARY function - use only for UI/display, not calculations.
func (a Amount) ToDecimal() decimal.Decimal {
	if a.raw == nil || a.coin == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(a.raw, -int32(a.coin.Decimals()))
}

// ParseDecimal creates an Amount from a human-unit decimal value.
// This is a BOUNDARY function - use for parsing user input.
func ParseDecimal(coin *Coin, d decimal.Decimal) (Amount, error) {
	if coin == nil {
		return Amount{}, ErrNilCoin
	}
	raw, err := ScaleToBaseUnits(d.String(), coin.Decimals())
	if err != nil {
		return Amount{}, err
	}
	return NewAmount(coin, raw), nil
}

// ParseString creates an Amount from a human-unit decimal string.
func ParseString(coin *Coin, s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("asset: invalid decimal string: %w", err)
	}
	return ParseDecimal(coin, d)
}

// String returns a human-readable representation (e.g. "1.5 PT-USDC").
func (a Amount) String() string {
	if a.coin == nil {
		return "0 ???"
	}
	return fmt.Sprintf("%s %s", a.ToDecimal().String(), a.coin.Symbol())
}

func (a Amount) checkSameCoin(b Amount) error {
	if a.coin == nil || b.coin == nil {
		return ErrNilCoin
	}
	if !a.coin.Equals(b.coin) {
		return fmt.Errorf("%w: %s vs %s", ErrCoinMismatch, a.coin.Symbol(), b.coin.Symbol())
	}
	return nil
}
