package app

import (
	"context"
	"errors"
	"testing"

	ledgerdomain "github.com/fd1az/yieldsplit/business/ledger/domain"
)

type erringExecutor struct {
	err error
}

func (e *erringExecutor) Simulate(ctx context.Context, plan *ledgerdomain.Plan) (*ledgerdomain.SimulationResult, error) {
	return nil, e.err
}

func (e *erringExecutor) Submit(ctx context.Context, plan *ledgerdomain.Plan) (*ledgerdomain.ExecutionResult, error) {
	return nil, e.err
}

func TestDryRunClassifiesSuccess(t *testing.T) {
	exec := &fakeExecutor{simResults: []*ledgerdomain.SimulationResult{
		{Status: ledgerdomain.StatusSuccess, Returns: []ledgerdomain.Return{{Type: "u64", Value: "42"}}},
	}}
	guard := NewDryRunGuard(exec, mockLogger{})

	outcome := guard.DryRun(context.Background(), ledgerdomain.NewPlan("0xsender"))
	if !outcome.OK {
		t.Fatalf("expected OK, got reason %q", outcome.Reason)
	}
	if len(outcome.Returns) != 1 || outcome.Returns[0].Value != "42" {
		t.Errorf("expected returns forwarded, got %+v", outcome.Returns)
	}
}

func TestDryRunClassifiesAbort(t *testing.T) {
	exec := &fakeExecutor{simResults: []*ledgerdomain.SimulationResult{
		{Status: ledgerdomain.StatusFailure, Error: "MoveAbort(MoveLocation { module: market }, 259)"},
	}}
	guard := NewDryRunGuard(exec, mockLogger{})

	outcome := guard.DryRun(context.Background(), ledgerdomain.NewPlan("0xsender"))
	if outcome.OK {
		t.Fatal("expected failure outcome")
	}
	if outcome.Reason == "" {
		t.Error("expected a display-ready reason")
	}
}

func TestDryRunNeverPropagatesTransportErrors(t *testing.T) {
	guard := NewDryRunGuard(&erringExecutor{err: errors.New("connection reset")}, mockLogger{})

	outcome := guard.DryRun(context.Background(), ledgerdomain.NewPlan("0xsender"))
	if outcome.OK {
		t.Fatal("expected failure outcome")
	}
	if outcome.Reason == "" {
		t.Error("expected a reason for the transport failure")
	}
}

func TestDryRunIsRepeatable(t *testing.T) {
	exec := &fakeExecutor{}
	guard := NewDryRunGuard(exec, mockLogger{})
	plan := ledgerdomain.NewPlan("0xsender")

	first := guard.DryRun(context.Background(), plan)
	second := guard.DryRun(context.Background(), plan)
	if first.OK != second.OK {
		t.Error("repeated dry runs of the same plan must classify identically")
	}
	if len(exec.simPlans) != 2 {
		t.Errorf("expected 2 simulations, got %d", len(exec.simPlans))
	}
}
