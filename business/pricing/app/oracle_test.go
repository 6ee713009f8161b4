package app

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	ledgerdomain "github.com/fd1az/yieldsplit/business/ledger/domain"
	marketdomain "github.com/fd1az/yieldsplit/business/market/domain"
	"github.com/fd1az/yieldsplit/business/pricing/domain"
	"github.com/fd1az/yieldsplit/internal/apperror"
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

// fakeSimulator returns scripted simulation results and records the plans
// it was asked to run.
type fakeSimulator struct {
	plans   []*ledgerdomain.Plan
	results []*ledgerdomain.SimulationResult
	errs    []error
}

func (f *fakeSimulator) Simulate(ctx context.Context, plan *ledgerdomain.Plan) (*ledgerdomain.SimulationResult, error) {
	idx := len(f.plans)
	f.plans = append(f.plans, plan)
	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	if idx < len(f.results) {
		return f.results[idx], nil
	}
	return &ledgerdomain.SimulationResult{Status: ledgerdomain.StatusFailure, Error: "no scripted result"}, nil
}

func success(values ...string) *ledgerdomain.SimulationResult {
	returns := make([]ledgerdomain.Return, len(values))
	for i, v := range values {
		returns[i] = ledgerdomain.Return{Type: "u64", Value: v}
	}
	return &ledgerdomain.SimulationResult{Status: ledgerdomain.StatusSuccess, Returns: returns}
}

func testMarket() *marketdomain.Market {
	return &marketdomain.Market{
		Symbol:             "haSUI",
		Underlying:         asset.NewCoin("0x1a::hasui::HASUI", "haSUI", 9),
		SY:                 asset.NewCoin("0x2b::sy_hasui::SY_HASUI", "SY-haSUI", 9),
		PT:                 asset.NewCoin("0x2b::pt_hasui::PT_HASUI", "PT-haSUI", 9),
		YT:                 asset.NewCoin("0x2b::yt_hasui::YT_HASUI", "YT-haSUI", 9),
		LP:                 asset.NewCoin("0x2b::market::MarketPosition", "LP-haSUI", 9),
		MaturityMs:         time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
		Package:            "0x2b",
		MarketStateID:      "0xaaa1",
		FactoryConfigID:    "0xaaa2",
		YieldFactoryID:     "0xaaa3",
		PYStateID:          "0xaaa4",
		SYStateID:          "0xaaa5",
		PriceOracleID:      "0xaaa6",
		PYPositionType:     "0x2b::yield::PYPosition",
		MarketPositionType: "0x2b::market::MarketPosition",
	}
}

func newTestOracle(t *testing.T, sim Simulator) *RateOracle {
	t.Helper()
	o, err := NewRateOracle(sim, nil, "0xsender", mockLogger{})
	if err != nil {
		t.Fatalf("NewRateOracle: %v", err)
	}
	return o
}

func TestQuoteReturnsDesignatedSlot(t *testing.T) {
	sim := &fakeSimulator{results: []*ledgerdomain.SimulationResult{success("1980000000")}}
	oracle := newTestOracle(t, sim)

	q, err := oracle.Quote(context.Background(), testMarket(), domain.DirPTToSY, big.NewInt(2000000000))
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if q.Out.String() != "1980000000" {
		t.Errorf("expected out 1980000000, got %s", q.Out)
	}

	if len(sim.plans) != 1 {
		t.Fatalf("expected 1 simulation, got %d", len(sim.plans))
	}
	plan := sim.plans[0]
	if plan.Operations[0].Kind != ledgerdomain.OpFetchPriceVoucher {
		t.Errorf("quote plan must fetch a price voucher first, got %s", plan.Operations[0].Kind)
	}
	if plan.Operations[1].Kind != ledgerdomain.OpSwapPTForSY {
		t.Errorf("expected swap op second, got %s", plan.Operations[1].Kind)
	}
}

func TestQuoteZeroAmountRejectedBeforeSimulation(t *testing.T) {
	sim := &fakeSimulator{}
	oracle := newTestOracle(t, sim)

	_, err := oracle.Quote(context.Background(), testMarket(), domain.DirPTToSY, big.NewInt(0))
	if apperror.GetCode(err) != apperror.CodeZeroAmount {
		t.Fatalf("expected CodeZeroAmount, got %v", err)
	}
	if len(sim.plans) != 0 {
		t.Errorf("zero-amount quote must not reach the simulator, got %d calls", len(sim.plans))
	}
}

func TestQuoteSimulationFailureIsQuoteUnavailable(t *testing.T) {
	sim := &fakeSimulator{results: []*ledgerdomain.SimulationResult{{
		Status: ledgerdomain.StatusFailure,
		Error:  "MoveAbort(MoveLocation { module: market }, 259)",
	}}}
	oracle := newTestOracle(t, sim)

	_, err := oracle.Quote(context.Background(), testMarket(), domain.DirPTToSY, big.NewInt(1))
	if apperror.GetCode(err) != apperror.CodeQuoteUnavailable {
		t.Fatalf("expected CodeQuoteUnavailable, got %v", err)
	}
}

func TestQuoteTransportErrorPassesThrough(t *testing.T) {
	transport := apperror.Transport("ledger_dryRunPlan", errors.New("connection refused"))
	sim := &fakeSimulator{errs: []error{transport}}
	oracle := newTestOracle(t, sim)

	_, err := oracle.Quote(context.Background(), testMarket(), domain.DirPTToSY, big.NewInt(1))
	if apperror.GetCode(err) != apperror.CodeTransportError {
		t.Fatalf("expected CodeTransportError, got %v", err)
	}
}

func TestQuoteBurnReturnsPair(t *testing.T) {
	sim := &fakeSimulator{results: []*ledgerdomain.SimulationResult{success("700000000", "300000000")}}
	oracle := newTestOracle(t, sim)

	bq, err := oracle.QuoteBurn(context.Background(), testMarket(), big.NewInt(1000000000))
	if err != nil {
		t.Fatalf("QuoteBurn: %v", err)
	}
	if bq.SYOut.String() != "700000000" || bq.PTOut.String() != "300000000" {
		t.Errorf("unexpected burn quote: sy=%s pt=%s", bq.SYOut, bq.PTOut)
	}
}

func TestQuoteBurnMissingSecondReturn(t *testing.T) {
	sim := &fakeSimulator{results: []*ledgerdomain.SimulationResult{success("700000000")}}
	oracle := newTestOracle(t, sim)

	_, err := oracle.QuoteBurn(context.Background(), testMarket(), big.NewInt(1000000000))
	if apperror.GetCode(err) != apperror.CodeEmptyReturnValues {
		t.Fatalf("expected CodeEmptyReturnValues, got %v", err)
	}
}

func TestSnapshotDegradesToUndefinedRatios(t *testing.T) {
	// PT leg quotes fine, YT and LP legs fail.
	sim := &fakeSimulator{results: []*ledgerdomain.SimulationResult{
		success("950000000"),
		{Status: ledgerdomain.StatusFailure, Error: "MoveAbort(.., 259)"},
		{Status: ledgerdomain.StatusFailure, Error: "MoveAbort(.., 259)"},
	}}
	oracle := newTestOracle(t, sim)

	snap, err := oracle.Snapshot(context.Background(), testMarket())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if !snap.SYPerPT.Defined() {
		t.Error("SYPerPT should be defined")
	}
	if rate, _ := snap.SYPerPT.Rate(); rate.String() != "0.95" {
		t.Errorf("expected SYPerPT 0.95, got %s", rate)
	}
	if snap.SYPerYT.Defined() {
		t.Error("SYPerYT should be undefined when the YT leg fails")
	}
	if snap.SYPerLP.Defined() {
		t.Error("SYPerLP should be undefined when the burn leg fails")
	}
}
