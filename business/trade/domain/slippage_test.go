package domain

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fd1az/yieldsplit/internal/apperror"
)

func TestMinOut(t *testing.T) {
	tests := []struct {
		name     string
		quoted   string
		slippage string
		want     string
	}{
		{name: "half percent", quoted: "1980000000", slippage: "0.5", want: "1970100000"},
		{name: "zero slippage", quoted: "1000000000", slippage: "0", want: "1000000000"},
		{name: "one percent", quoted: "1000000000", slippage: "1", want: "990000000"},
		{name: "rounds down", quoted: "333", slippage: "0.1", want: "332"},
		{name: "tiny quote", quoted: "1", slippage: "0.5", want: "0"},
		{name: "zero quote", quoted: "0", slippage: "5", want: "0"},
		{name: "fractional slippage", quoted: "1000000000", slippage: "0.333", want: "996670000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quoted, _ := new(big.Int).SetString(tt.quoted, 10)
			got, err := MinOut(quoted, decimal.RequireFromString(tt.slippage))
			if err != nil {
				t.Fatalf("MinOut: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("MinOut(%s, %s%%) = %s, want %s", tt.quoted, tt.slippage, got, tt.want)
			}
			if got.Cmp(quoted) > 0 {
				t.Errorf("minimum-out %s exceeds quote %s", got, quoted)
			}
		})
	}
}

func TestMinOutNeverExceedsQuote(t *testing.T) {
	quotes := []string{"1", "999", "1000000000", "123456789012345678"}
	slippages := []string{"0", "0.001", "0.5", "1", "5", "99.999"}

	for _, q := range quotes {
		for _, s := range slippages {
			quoted, _ := new(big.Int).SetString(q, 10)
			got, err := MinOut(quoted, decimal.RequireFromString(s))
			if err != nil {
				t.Fatalf("MinOut(%s, %s): %v", q, s, err)
			}
			if got.Cmp(quoted) > 0 {
				t.Errorf("MinOut(%s, %s%%) = %s exceeds quote", q, s, got)
			}
			if got.Sign() < 0 {
				t.Errorf("MinOut(%s, %s%%) = %s is negative", q, s, got)
			}
		}
	}
}

func TestMinOutRejectsInvalidSlippage(t *testing.T) {
	quoted := big.NewInt(1000)
	for _, s := range []string{"-0.5", "100", "150"} {
		_, err := MinOut(quoted, decimal.RequireFromString(s))
		if apperror.GetCode(err) != apperror.CodeInvalidSlippage {
			t.Errorf("slippage %s: expected CodeInvalidSlippage, got %v", s, err)
		}
	}
}
