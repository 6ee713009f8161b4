package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/fd1az/yieldsplit/internal/apperror"
	"github.com/fd1az/yieldsplit/internal/asset"
)

func validMarket() *Market {
	return &Market{
		Symbol:             "haSUI",
		Underlying:         asset.NewCoin("0x1a::hasui::HASUI", "haSUI", 9),
		SY:                 asset.NewCoin("0x2b::sy_hasui::SY_HASUI", "SY-haSUI", 9),
		PT:                 asset.NewCoin("0x2b::pt_hasui::PT_HASUI", "PT-haSUI", 9),
		YT:                 asset.NewCoin("0x2b::yt_hasui::YT_HASUI", "YT-haSUI", 9),
		LP:                 asset.NewCoin("0x2b::market::MarketPosition<0x2b::sy_hasui::SY_HASUI>", "LP-haSUI", 9),
		MaturityMs:         time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
		Package:            "0x2b",
		MarketStateID:      "0xaaa1",
		FactoryConfigID:    "0xaaa2",
		YieldFactoryID:     "0xaaa3",
		PYStateID:          "0xaaa4",
		SYStateID:          "0xaaa5",
		PriceOracleID:      "0xaaa6",
		PYPositionType:     "0x2b::yield::PYPosition<0x2b::sy_hasui::SY_HASUI>",
		MarketPositionType: "0x2b::market::MarketPosition<0x2b::sy_hasui::SY_HASUI>",
	}
}

func TestMarketValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Market)
		wantErr bool
	}{
		{name: "valid", mutate: func(m *Market) {}},
		{name: "missing market state", mutate: func(m *Market) { m.MarketStateID = "" }, wantErr: true},
		{name: "missing oracle", mutate: func(m *Market) { m.PriceOracleID = "" }, wantErr: true},
		{name: "missing position type", mutate: func(m *Market) { m.PYPositionType = "" }, wantErr: true},
		{name: "missing coin", mutate: func(m *Market) { m.YT = nil }, wantErr: true},
		{name: "missing lp coin", mutate: func(m *Market) { m.LP = nil }, wantErr: true},
		{name: "zero maturity", mutate: func(m *Market) { m.MaturityMs = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMarket()
			tt.mutate(m)
			err := m.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var appErr *apperror.AppError
				if !errors.As(err, &appErr) {
					t.Fatalf("expected AppError, got %T", err)
				}
				if appErr.Code != apperror.CodeMissingMarketField {
					t.Errorf("expected CodeMissingMarketField, got %s", appErr.Code)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestMarketIsExpired(t *testing.T) {
	m := validMarket()

	before := m.Maturity().Add(-time.Hour)
	if m.IsExpired(before) {
		t.Error("market should not be expired before maturity")
	}

	at := m.Maturity()
	if !m.IsExpired(at) {
		t.Error("market should be expired exactly at maturity")
	}

	after := m.Maturity().Add(time.Millisecond)
	if !m.IsExpired(after) {
		t.Error("market should be expired after maturity")
	}
}
