package app

import (
	"context"

	ledgerdomain "github.com/fd1az/yieldsplit/business/ledger/domain"
	"github.com/fd1az/yieldsplit/internal/apperror"
	"github.com/fd1az/yieldsplit/internal/logger"
)

// Outcome classifies a dry run. Exactly one of OK or Reason is meaningful.
type Outcome struct {
	OK bool
	// Returns holds the expected return values when OK.
	Returns []ledgerdomain.Return
	// Reason is a display-ready failure message when !OK.
	Reason string
}

// DryRunGuard wraps candidate plans with a read-only pre-flight simulation.
// It never mutates state and never lets a simulation failure escape as an
// error: every result is classified into an Outcome so the composer can
// decide whether the failed step was optional or mandatory.
type DryRunGuard struct {
	executor Executor
	log      logger.LoggerInterface
}

// NewDryRunGuard creates a new DryRunGuard.
func NewDryRunGuard(executor Executor, log logger.LoggerInterface) *DryRunGuard {
	return &DryRunGuard{executor: executor, log: log}
}

// DryRun simulates the plan and classifies the result. Safe to call
// repeatedly.
func (g *DryRunGuard) DryRun(ctx context.Context, plan *ledgerdomain.Plan) Outcome {
	result, err := g.executor.Simulate(ctx, plan)
	if err != nil {
		g.log.Warn(ctx, "dry run transport failure", "error", err)
		return Outcome{Reason: apperror.Translate(err.Error())}
	}
	if !result.OK() {
		g.log.Debug(ctx, "dry run rejected plan", "error", result.Error)
		return Outcome{Reason: apperror.Translate(result.Error)}
	}
	return Outcome{OK: true, Returns: result.Returns}
}
