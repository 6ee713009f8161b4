// Package app contains application services and port definitions for the pricing context.
package app

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	ledgerdomain "github.com/fd1az/yieldsplit/business/ledger/domain"
	marketdomain "github.com/fd1az/yieldsplit/business/market/domain"
	"github.com/fd1az/yieldsplit/business/pricing/domain"
	"github.com/fd1az/yieldsplit/internal/apperror"
	"github.com/fd1az/yieldsplit/internal/asset"
	"github.com/fd1az/yieldsplit/internal/logger"
)

const (
	tracerName = "rate-oracle"
	meterName  = "rate-oracle"
)

// oracleMetrics holds OTEL metric instruments.
type oracleMetrics struct {
	quotesTotal  metric.Int64Counter
	quoteLatency metric.Float64Histogram
	quoteErrors  metric.Int64Counter
}

// RateOracle answers "how much of token B does X of token A buy right now"
// by dry-running read-only router calls against current chain state.
// Quotes are never cached: the rate curve moves with every block and
// converges toward par at maturity.
type RateOracle struct {
	sim     Simulator
	objects ObjectReader
	sender  string
	logger  logger.LoggerInterface

	tracer  trace.Tracer
	metrics *oracleMetrics
	now     func() time.Time
}

// NewRateOracle creates a new RateOracle quoting on behalf of sender.
func NewRateOracle(sim Simulator, objects ObjectReader, sender string, log logger.LoggerInterface) (*RateOracle, error) {
	o := &RateOracle{
		sim:     sim,
		objects: objects,
		sender:  sender,
		logger:  log,
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
	}
	if err := o.initMetrics(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *RateOracle) initMetrics() error {
	meter := otel.Meter(meterName)
	var err error

	o.metrics = &oracleMetrics{}

	o.metrics.quotesTotal, err = meter.Int64Counter(
		"rate_oracle_quotes_total",
		metric.WithDescription("Total quote simulations"),
	)
	if err != nil {
		return err
	}

	o.metrics.quoteLatency, err = meter.Float64Histogram(
		"rate_oracle_quote_latency_ms",
		metric.WithDescription("Quote simulation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	o.metrics.quoteErrors, err = meter.Int64Counter(
		"rate_oracle_quote_errors_total",
		metric.WithDescription("Total failed quote simulations"),
	)
	return err
}

// Quote simulates swapping amount base units along dir and returns the output.
func (o *RateOracle) Quote(ctx context.Context, m *marketdomain.Market, dir domain.Direction, amount *big.Int) (*domain.Quote, error) {
	ctx, span := o.tracer.Start(ctx, "rate_oracle.quote",
		trace.WithAttributes(
			attribute.String("market", m.Symbol),
			attribute.String("direction", string(dir)),
			attribute.String("amount_in", amount.String()),
		),
	)
	defer span.End()

	if amount == nil || amount.Sign() <= 0 {
		span.SetStatus(codes.Error, "zero amount")
		return nil, apperror.Precondition(apperror.CodeZeroAmount, m.Symbol)
	}
	if _, ok := quoteTargets[dir]; !ok {
		span.SetStatus(codes.Error, "unknown direction")
		return nil, apperror.New(apperror.CodeInvalidAmount,
			apperror.WithContext("unknown quote direction: "+string(dir)))
	}

	out, err := o.runQuote(ctx, span, quotePlan(o.sender, m, dir, amount), 0)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("amount_out", out.String()))
	span.SetStatus(codes.Ok, "quote received")

	o.logger.Debug(ctx, "quote",
		"market", m.Symbol,
		"direction", string(dir),
		"amount_in", amount.String(),
		"amount_out", out.String(),
	)

	return &domain.Quote{
		Market:    m.Symbol,
		Direction: dir,
		In:        new(big.Int).Set(amount),
		Out:       out,
		At:        o.now(),
	}, nil
}

// QuoteBurn simulates burning lpAmount LP shares and returns the (SY, PT) pair.
func (o *RateOracle) QuoteBurn(ctx context.Context, m *marketdomain.Market, lpAmount *big.Int) (*domain.BurnQuote, error) {
	ctx, span := o.tracer.Start(ctx, "rate_oracle.quote_burn",
		trace.WithAttributes(
			attribute.String("market", m.Symbol),
			attribute.String("amount_in", lpAmount.String()),
		),
	)
	defer span.End()

	if lpAmount == nil || lpAmount.Sign() <= 0 {
		span.SetStatus(codes.Error, "zero amount")
		return nil, apperror.Precondition(apperror.CodeZeroAmount, m.Symbol)
	}

	plan := burnQuotePlan(o.sender, m, lpAmount)

	start := o.now()
	o.metrics.quotesTotal.Add(ctx, 1)
	result, err := o.sim.Simulate(ctx, plan)
	o.metrics.quoteLatency.Record(ctx, float64(time.Since(start).Milliseconds()))
	if err != nil {
		o.metrics.quoteErrors.Add(ctx, 1)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !result.OK() {
		o.metrics.quoteErrors.Add(ctx, 1)
		span.SetStatus(codes.Error, "simulation failed")
		return nil, apperror.Quote(apperror.CodeQuoteUnavailable, m.Symbol,
			errors.New(apperror.Translate(result.Error)))
	}

	syOut, err := result.ReturnU64(0)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeEmptyReturnValues, m.Symbol)
	}
	ptOut, err := result.ReturnU64(1)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeEmptyReturnValues, m.Symbol)
	}

	span.SetAttributes(
		attribute.String("sy_out", syOut.String()),
		attribute.String("pt_out", ptOut.String()),
	)
	span.SetStatus(codes.Ok, "quote received")

	return &domain.BurnQuote{
		Market: m.Symbol,
		In:     new(big.Int).Set(lpAmount),
		SYOut:  syOut,
		PTOut:  ptOut,
		At:     o.now(),
	}, nil
}

// Snapshot derives the market's current ratios from unit-amount quotes.
// Legs that fail to quote come back as undefined ratios rather than errors.
func (o *RateOracle) Snapshot(ctx context.Context, m *marketdomain.Market) (*domain.RateSnapshot, error) {
	ctx, span := o.tracer.Start(ctx, "rate_oracle.snapshot",
		trace.WithAttributes(attribute.String("market", m.Symbol)),
	)
	defer span.End()

	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(m.Decimals())), nil)
	snap := &domain.RateSnapshot{
		Market:  m.Symbol,
		SYPerPT: asset.UndefinedRatio(),
		SYPerYT: asset.UndefinedRatio(),
		SYPerLP: asset.UndefinedRatio(),
		At:      o.now(),
	}

	if q, err := o.Quote(ctx, m, domain.DirPTToSY, unit); err == nil {
		snap.SYPerPT = q.Rate()
	}
	if q, err := o.Quote(ctx, m, domain.DirYTToSY, unit); err == nil {
		snap.SYPerYT = q.Rate()
	}
	if bq, err := o.QuoteBurn(ctx, m, unit); err == nil {
		snap.SYPerLP = burnValueRatio(bq, snap.SYPerPT, unit)
	}
	o.readSupplies(ctx, m, snap)

	span.SetStatus(codes.Ok, "snapshot built")
	return snap, nil
}

// readSupplies fills pool supply totals from the market state object. A
// failed read leaves the totals nil; the ratios above stand on their own.
func (o *RateOracle) readSupplies(ctx context.Context, m *marketdomain.Market, snap *domain.RateSnapshot) {
	if o.objects == nil {
		return
	}
	rec, err := o.objects.GetObject(ctx, m.MarketStateID)
	if err != nil {
		o.logger.Warn(ctx, "market state read failed", "market", m.Symbol, "error", err)
		return
	}
	if v, err := rec.FieldBig("total_sy"); err == nil {
		snap.TotalSY = v
	}
	if v, err := rec.FieldBig("total_pt"); err == nil {
		snap.TotalPT = v
	}
	if v, err := rec.FieldBig("lp_supply"); err == nil {
		snap.TotalLP = v
	}
}

// burnValueRatio values one LP share in SY: the SY leg plus the PT leg at the
// current SY-per-PT rate. An undefined PT rate values PT at par.
func burnValueRatio(bq *domain.BurnQuote, syPerPT asset.Ratio, unit *big.Int) asset.Ratio {
	sy := decimal.NewFromBigInt(bq.SYOut, 0)
	pt := decimal.NewFromBigInt(bq.PTOut, 0)
	if rate, ok := syPerPT.Rate(); ok {
		pt = pt.Mul(rate)
	}
	return asset.NewRatio(sy.Add(pt), decimal.NewFromBigInt(unit, 0))
}

// runQuote simulates a single-output quote plan and decodes the given
// return slot.
func (o *RateOracle) runQuote(ctx context.Context, span trace.Span, plan *ledgerdomain.Plan, slot int) (*big.Int, error) {
	start := o.now()
	o.metrics.quotesTotal.Add(ctx, 1)
	result, err := o.sim.Simulate(ctx, plan)
	o.metrics.quoteLatency.Record(ctx, float64(time.Since(start).Milliseconds()))
	if err != nil {
		o.metrics.quoteErrors.Add(ctx, 1)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !result.OK() {
		o.metrics.quoteErrors.Add(ctx, 1)
		span.SetStatus(codes.Error, "simulation failed")
		return nil, apperror.Quote(apperror.CodeQuoteUnavailable, "quote simulation",
			errors.New(apperror.Translate(result.Error)))
	}
	out, err := result.ReturnU64(slot)
	if err != nil {
		o.metrics.quoteErrors.Add(ctx, 1)
		span.SetStatus(codes.Error, err.Error())
		return nil, apperror.Wrap(err, apperror.CodeEmptyReturnValues, "quote simulation")
	}
	return out, nil
}
