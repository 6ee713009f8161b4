package asset

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
)

func TestScaleToBaseUnits(t *testing.T) {
	tests := []struct {
		name     string
		human    string
		decimals uint8
		want     string
		wantErr  bool
	}{
		{name: "whole_units_9_decimals", human: "5", decimals: 9, want: "5000000000"},
		{name: "fractional_9_decimals", human: "1.98", decimals: 9, want: "1980000000"},
		{name: "zero", human: "0", decimals: 9, want: "0"},
		{name: "zero_decimals", human: "42", decimals: 0, want: "42"},
		{name: "max_decimals", human: "0.000000000000000001", decimals: 18, want: "1"},
		{name: "trailing_zeros", human: "2.500", decimals: 6, want: "2500000"},
		{name: "too_precise", human: "0.0000000001", decimals: 9, wantErr: true},
		{name: "negative", human: "-1", decimals: 9, wantErr: true},
		{name: "garbage", human: "five", decimals: 9, wantErr: true},
		{name: "decimals_out_of_range", human: "1", decimals: 19, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScaleToBaseUnits(tt.human, tt.decimals)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

// Round-trip: scaling to base units and back must reproduce the input
// value (modulo trailing-zero normalization).
func TestScaleRoundTrip(t *testing.T) {
	values := []string{"0", "1", "0.5", "123.456", "0.000001", "99999999.999999"}
	for _, v := range values {
		for _, decimals := range []uint8{6, 9, 12, 18} {
			raw, err := ScaleToBaseUnits(v, decimals)
			if err != nil {
				t.Fatalf("ScaleToBaseUnits(%q, %d): %v", v, decimals, err)
			}
			back := ScaleToHuman(raw, decimals)
			if !back.Equal(decimal.RequireFromString(v)) {
				t.Errorf("round trip %q at %d decimals: got %s", v, decimals, back)
			}
		}
	}
}

func TestScaleToHumanNil(t *testing.T) {
	if !ScaleToHuman(nil, 9).IsZero() {
		t.Error("nil raw should scale to zero")
	}
}

func TestRatio(t *testing.T) {
	r := NewRatio(decimal.RequireFromString("99"), decimal.RequireFromString("100"))
	rate, ok := r.Rate()
	if !ok {
		t.Fatal("ratio should be defined")
	}
	if !rate.Equal(decimal.RequireFromString("0.99")) {
		t.Errorf("got %s, want 0.99", rate)
	}

	undef := NewRatio(decimal.NewFromInt(1), decimal.Zero)
	if undef.Defined() {
		t.Error("zero denominator must yield undefined ratio")
	}
	if undef.String() != "undefined" {
		t.Errorf("got %q", undef.String())
	}
}

func TestAmountArithmetic(t *testing.T) {
	pt := NewCoin("0xab::pt_usdc::PT_USDC", "PT-USDC", 9)
	sy := NewCoin("0xab::sy_usdc::SY_USDC", "SY-USDC", 9)

	a := NewAmount(pt, big.NewInt(3_000_000_000))
	b := NewAmount(pt, big.NewInt(2_000_000_000))

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if sum.BaseUnits() != "5000000000" {
		t.Errorf("sum = %s", sum.BaseUnits())
	}

	diff, err := a.Sub(b)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if diff.BaseUnits() != "1000000000" {
		t.Errorf("diff = %s", diff.BaseUnits())
	}

	if _, err := b.Sub(a); err == nil {
		t.Error("expected negative-result error")
	}

	other := NewAmount(sy, big.NewInt(1))
	if _, err := a.Add(other); err == nil {
		t.Error("expected coin-mismatch error")
	}
}

func TestAmountParseBoundary(t *testing.T) {
	pt := NewCoin("0xab::pt_usdc::PT_USDC", "PT-USDC", 9)

	amt, err := ParseString(pt, "2")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if amt.BaseUnits() != "2000000000" {
		t.Errorf("got %s", amt.BaseUnits())
	}
	if !amt.ToDecimal().Equal(decimal.NewFromInt(2)) {
		t.Errorf("to decimal: %s", amt.ToDecimal())
	}

	if _, err := ParseString(pt, "0.0000000001"); err == nil {
		t.Error("expected too-many-decimals error")
	}
}
