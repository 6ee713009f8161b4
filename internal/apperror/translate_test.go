package apperror

import (
	"errors"
	"testing"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "known_abort_code",
			raw:  `MoveAbort(MoveLocation { module: ModuleId { address: 0x5f3a, name: Identifier("market") }, function: 12, instruction: 44, function_name: Some("swap_exact_pt_for_sy") }, 257) in command 2`,
			want: "Output below the slippage minimum, try again or raise tolerance",
		},
		{
			name: "voucher_expired",
			raw:  `MoveAbort(MoveLocation { module: ModuleId { address: 0x5f3a, name: Identifier("oracle") }, function: 3, instruction: 9, function_name: Some("get_price_voucher") }, 513)`,
			want: "Price voucher expired, re-fetch and retry",
		},
		{
			name: "abort_code_variant",
			raw:  "transaction failed, abort code: 259",
			want: "Insufficient liquidity in the pool for this trade size",
		},
		{
			name: "unknown_code_passes_through",
			raw:  "MoveAbort(MoveLocation { ... }, 9999)",
			want: "MoveAbort(MoveLocation { ... }, 9999)",
		},
		{
			name: "malformed_passes_through",
			raw:  "MoveAbort(no code here",
			want: "MoveAbort(no code here",
		},
		{
			name: "plain_text_passes_through",
			raw:  "connection refused",
			want: "connection refused",
		},
		{
			name: "empty_passes_through",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Translate(tt.raw); got != tt.want {
				t.Errorf("Translate(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAppErrorKinds(t *testing.T) {
	tests := []struct {
		code Code
		kind Kind
	}{
		{CodeInsufficientBalance, KindPrecondition},
		{CodeZeroAmount, KindPrecondition},
		{CodeQuoteUnavailable, KindQuote},
		{CodeSimulationFailed, KindQuote},
		{CodeOnChainAbort, KindAbort},
		{CodeRPCError, KindTransport},
		{CodeUnknownError, KindTransport},
	}

	for _, tt := range tests {
		if got := New(tt.code).Kind; got != tt.kind {
			t.Errorf("New(%s).Kind = %s, want %s", tt.code, got, tt.kind)
		}
	}
}

func TestWrapPassesAppErrorThrough(t *testing.T) {
	orig := Precondition(CodeInsufficientBalance, "PT")
	wrapped := Wrap(orig, CodeInternalError, "composer")
	if wrapped.Code != CodeInsufficientBalance {
		t.Errorf("expected original code to survive, got %s", wrapped.Code)
	}

	plain := Wrap(errors.New("boom"), CodeRPCError, "simulate")
	if plain.Code != CodeRPCError {
		t.Errorf("expected RPC code, got %s", plain.Code)
	}
	if !errors.Is(plain, New(CodeRPCError)) {
		t.Error("errors.Is should match by code")
	}
}

func TestAbortUsesTranslator(t *testing.T) {
	err := Abort("abort code: 258")
	if err.Message != "Market has reached maturity, redeem instead of trading" {
		t.Errorf("got %q", err.Message)
	}
	if err.Kind != KindAbort {
		t.Errorf("got kind %s", err.Kind)
	}
}
