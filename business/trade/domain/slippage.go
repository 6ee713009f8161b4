package domain

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/fd1az/yieldsplit/internal/apperror"
)

// slippageScale expresses percentages in micro-percent so the bound can be
// computed in integer arithmetic: 100% == 100_000_000.
var slippageScale = big.NewInt(100_000_000)

// MinOut computes the slippage floor for a quoted output: the quote scaled
// by (1 - slippage/100), rounded down to base units. Rounding always goes
// toward zero; rounding up could cause spurious on-chain rejection of
// acceptable fills. The slippage itself rounds up to micro-percent, which is
// also the protective direction.
func MinOut(quoted *big.Int, slippagePct decimal.Decimal) (*big.Int, error) {
	if quoted == nil || quoted.Sign() < 0 {
		return nil, apperror.Precondition(apperror.CodeInvalidAmount, "quoted output")
	}
	if err := ValidateSlippage(slippagePct); err != nil {
		return nil, err
	}

	// slippage in micro-percent, rounded up.
	micro := slippagePct.Mul(decimal.NewFromInt(1_000_000)).Ceil().BigInt()

	keep := new(big.Int).Sub(slippageScale, micro)
	out := new(big.Int).Mul(quoted, keep)
	out.Quo(out, slippageScale)
	return out, nil
}

// ValidateSlippage checks the tolerance is a percentage in [0, 100).
func ValidateSlippage(slippagePct decimal.Decimal) error {
	if slippagePct.IsNegative() || slippagePct.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return apperror.Precondition(apperror.CodeInvalidSlippage, slippagePct.String())
	}
	return nil
}
