package app

import (
	"context"
	"strconv"
	"testing"
	"time"

	ledgerdomain "github.com/fd1az/yieldsplit/business/ledger/domain"
	marketdomain "github.com/fd1az/yieldsplit/business/market/domain"
	"github.com/fd1az/yieldsplit/internal/asset"
)

// mockLogger is a no-op logger for tests.
type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, msg string, args ...any)              {}
func (mockLogger) Info(ctx context.Context, msg string, args ...any)               {}
func (mockLogger) Warn(ctx context.Context, msg string, args ...any)               {}
func (mockLogger) Error(ctx context.Context, msg string, args ...any)              {}
func (mockLogger) Debugc(ctx context.Context, caller int, msg string, args ...any) {}
func (mockLogger) Infoc(ctx context.Context, caller int, msg string, args ...any)  {}
func (mockLogger) Warnc(ctx context.Context, caller int, msg string, args ...any)  {}
func (mockLogger) Errorc(ctx context.Context, caller int, msg string, args ...any) {}

// fakeObjectStore serves canned object records keyed by type tag.
type fakeObjectStore struct {
	byType map[string][]ledgerdomain.ObjectRecord
	calls  int
}

func (f *fakeObjectStore) GetOwnedObjectsByType(ctx context.Context, owner, typeTag string) ([]ledgerdomain.ObjectRecord, error) {
	f.calls++
	return f.byType[typeTag], nil
}

func aggTestMarket() *marketdomain.Market {
	return &marketdomain.Market{
		Symbol:             "haSUI",
		SY:                 asset.NewCoin("0x2b::sy_hasui::SY_HASUI", "SY-haSUI", 9),
		PT:                 asset.NewCoin("0x2b::pt_hasui::PT_HASUI", "PT-haSUI", 9),
		YT:                 asset.NewCoin("0x2b::yt_hasui::YT_HASUI", "YT-haSUI", 9),
		LP:                 asset.NewCoin("0x2b::market::MarketPosition", "LP-haSUI", 9),
		MaturityMs:         time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
		Package:            "0x2b",
		MarketStateID:      "0xaaa1",
		PYStateID:          "0xaaa4",
		PYPositionType:     "0x2b::yield::PYPosition",
		MarketPositionType: "0x2b::market::MarketPosition",
	}
}

func pyRecord(id string, m *marketdomain.Market, pt, yt string) ledgerdomain.ObjectRecord {
	return ledgerdomain.ObjectRecord{
		ObjectID: id,
		Type:     m.PYPositionType,
		Fields: map[string]string{
			"pt_balance":  pt,
			"yt_balance":  yt,
			"expiry":      strconv.FormatInt(m.MaturityMs, 10),
			"py_state_id": m.PYStateID,
		},
	}
}

func lpRecord(id string, m *marketdomain.Market, lp string) ledgerdomain.ObjectRecord {
	return ledgerdomain.ObjectRecord{
		ObjectID: id,
		Type:     m.MarketPositionType,
		Fields: map[string]string{
			"lp_balance":      lp,
			"expiry":          strconv.FormatInt(m.MaturityMs, 10),
			"market_state_id": m.MarketStateID,
		},
	}
}

func TestAggregateSumsAcrossPositions(t *testing.T) {
	m := aggTestMarket()
	store := &fakeObjectStore{byType: map[string][]ledgerdomain.ObjectRecord{
		m.PYPositionType: {
			pyRecord("0x01", m, "5000000000", "0"),
			pyRecord("0x02", m, "2500000000", "1000000000"),
			pyRecord("0x03", m, "500000000", "0"),
		},
		m.MarketPositionType: {
			lpRecord("0x04", m, "3000000000"),
			lpRecord("0x05", m, "1000000000"),
		},
	}}

	agg := NewAggregator(store, mockLogger{})
	balances, err := agg.Aggregate(context.Background(), "0xowner", m)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	if balances.PT.BaseUnits() != "8000000000" {
		t.Errorf("expected PT 8000000000, got %s", balances.PT)
	}
	if balances.YT.BaseUnits() != "1000000000" {
		t.Errorf("expected YT 1000000000, got %s", balances.YT)
	}
	if balances.LP.BaseUnits() != "4000000000" {
		t.Errorf("expected LP 4000000000, got %s", balances.LP)
	}
	if balances.PTHuman().String() != "8" {
		t.Errorf("expected PT human 8, got %s", balances.PTHuman())
	}
	if !balances.PT.Coin().Equals(m.PT) || !balances.LP.Coin().Equals(m.LP) {
		t.Errorf("expected balances denominated in the market's coins, got pt=%s lp=%s",
			balances.PT.Coin(), balances.LP.Coin())
	}
	if balances.PT.String() != "8 PT-haSUI" {
		t.Errorf("expected display amount 8 PT-haSUI, got %s", balances.PT)
	}
	if len(balances.PYPositions) != 3 || len(balances.LPPositions) != 2 {
		t.Errorf("unexpected position counts: py=%d lp=%d", len(balances.PYPositions), len(balances.LPPositions))
	}
}

func TestAggregateZeroPositionsYieldsZeroBalances(t *testing.T) {
	m := aggTestMarket()
	store := &fakeObjectStore{byType: map[string][]ledgerdomain.ObjectRecord{}}

	agg := NewAggregator(store, mockLogger{})
	balances, err := agg.Aggregate(context.Background(), "0xowner", m)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	if !balances.PT.IsZero() || !balances.YT.IsZero() || !balances.LP.IsZero() {
		t.Errorf("expected zero balances, got pt=%s yt=%s lp=%s", balances.PT, balances.YT, balances.LP)
	}
	if balances.PTHuman().String() != "0" {
		t.Errorf("expected human 0, got %s", balances.PTHuman())
	}
}

func TestAggregateFiltersCrossMarketObjects(t *testing.T) {
	m := aggTestMarket()

	stale := pyRecord("0xstale", m, "9000000000", "0")
	stale.Fields["expiry"] = "1" // different maturity

	foreign := pyRecord("0xforeign", m, "7000000000", "0")
	foreign.Fields["py_state_id"] = "0xother"

	wrongPool := lpRecord("0xpool", m, "5000000000")
	wrongPool.Fields["market_state_id"] = "0xother"

	store := &fakeObjectStore{byType: map[string][]ledgerdomain.ObjectRecord{
		m.PYPositionType:     {pyRecord("0x01", m, "1000000000", "0"), stale, foreign},
		m.MarketPositionType: {wrongPool},
	}}

	agg := NewAggregator(store, mockLogger{})
	balances, err := agg.Aggregate(context.Background(), "0xowner", m)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	if balances.PT.BaseUnits() != "1000000000" {
		t.Errorf("expected only matching PT counted, got %s", balances.PT)
	}
	if !balances.LP.IsZero() {
		t.Errorf("expected foreign LP filtered out, got %s", balances.LP)
	}
	if len(balances.PYPositions) != 1 {
		t.Errorf("expected 1 matching PY position, got %d", len(balances.PYPositions))
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	m := aggTestMarket()
	store := &fakeObjectStore{byType: map[string][]ledgerdomain.ObjectRecord{
		m.PYPositionType: {pyRecord("0x01", m, "1234567890", "42")},
	}}

	agg := NewAggregator(store, mockLogger{})
	first, err := agg.Aggregate(context.Background(), "0xowner", m)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	second, err := agg.Aggregate(context.Background(), "0xowner", m)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	if !first.PT.Equals(second.PT) || !first.YT.Equals(second.YT) {
		t.Errorf("aggregation not idempotent: %s/%s vs %s/%s", first.PT, first.YT, second.PT, second.YT)
	}
}
