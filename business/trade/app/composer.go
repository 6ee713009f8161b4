package app

import (
	"context"
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	ledgerdomain "github.com/fd1az/yieldsplit/business/ledger/domain"
	pricingdomain "github.com/fd1az/yieldsplit/business/pricing/domain"
	tradedomain "github.com/fd1az/yieldsplit/business/trade/domain"
	"github.com/fd1az/yieldsplit/internal/apperror"
	"github.com/fd1az/yieldsplit/internal/asset"
	"github.com/fd1az/yieldsplit/internal/logger"
)

// Composer builds, pre-flights and submits the operation sequence for each
// user action. Every action is composed from a fresh read of balances and
// rates; nothing is cached between actions.
type Composer struct {
	markets  MarketResolver
	quoter   Quoter
	balances BalanceReader
	guard    *DryRunGuard
	executor Executor
	sender   string
	log      logger.LoggerInterface
	tracer   trace.Tracer
}

// NewComposer creates a new Composer acting on behalf of sender.
func NewComposer(markets MarketResolver, quoter Quoter, balances BalanceReader, guard *DryRunGuard, executor Executor, sender string, log logger.LoggerInterface) *Composer {
	return &Composer{
		markets:  markets,
		quoter:   quoter,
		balances: balances,
		guard:    guard,
		executor: executor,
		sender:   sender,
		log:      log,
		tracer:   otel.Tracer("trade-composer"),
	}
}

// Sell swaps an exact amount of PT or YT into SY and pays the SY out to the
// sender. Selling is permitted after maturity.
func (c *Composer) Sell(ctx context.Context, symbol string, side tradedomain.TokenSide, amount *big.Int, slippagePct decimal.Decimal) *tradedomain.ActionResult {
	r := tradedomain.NewActionResult(tradedomain.ActionSell)
	ctx, span := c.startSpan(ctx, r, symbol, amount)
	defer span.End()

	if appErr := c.precheck(amount, slippagePct); appErr != nil {
		return r.Fail(appErr)
	}
	if !side.Valid() {
		return r.Fail(apperror.Precondition(apperror.CodeInvalidAmount, "unknown token side: "+string(side)))
	}

	m, err := c.markets.Resolve(symbol)
	if err != nil {
		return r.Fail(asAppError(err))
	}

	r.To(tradedomain.StateQuoting)
	balances, err := c.balances.Aggregate(ctx, c.sender, m)
	if err != nil {
		return r.Fail(asAppError(err))
	}

	available := balances.PT
	dir := pricingdomain.DirPTToSY
	if side == tradedomain.SideYT {
		available = balances.YT
		dir = pricingdomain.DirYTToSY
	}
	need := asset.NewAmount(available.Coin(), amount)
	if enough, err := need.LessThanOrEqual(available); err != nil || !enough {
		return r.Fail(apperror.Precondition(apperror.CodeInsufficientBalance,
			"have "+available.String()+", need "+need.String()))
	}

	quote, err := c.quoter.Quote(ctx, m, dir, amount)
	if err != nil {
		return r.Fail(asAppError(err))
	}
	minOut, err := tradedomain.MinOut(quote.Out, slippagePct)
	if err != nil {
		return r.Fail(asAppError(err))
	}
	r.Quoted, r.MinOut = quote.Out, minOut

	r.To(tradedomain.StateComposing)
	b := newPlanBuilder(c.sender, m)
	v := b.voucher()
	pos := b.pyPosition(balances.PYPositions)
	kind, fn := sellFn(side)
	sw := b.swap(kind, fn, v, pos, amount, minOut)
	b.transfer(sw)
	r.Plan = b.finish()

	return c.finalize(ctx, r)
}

// Buy swaps an exact amount of SY into PT or YT, creating a position for the
// proceeds when the user has none. Buying requires an active market.
func (c *Composer) Buy(ctx context.Context, symbol string, side tradedomain.TokenSide, syAmount *big.Int, slippagePct decimal.Decimal) *tradedomain.ActionResult {
	r := tradedomain.NewActionResult(tradedomain.ActionBuy)
	ctx, span := c.startSpan(ctx, r, symbol, syAmount)
	defer span.End()

	if appErr := c.precheck(syAmount, slippagePct); appErr != nil {
		return r.Fail(appErr)
	}
	if !side.Valid() {
		return r.Fail(apperror.Precondition(apperror.CodeInvalidAmount, "unknown token side: "+string(side)))
	}

	m, err := c.markets.ResolveActive(symbol)
	if err != nil {
		return r.Fail(asAppError(err))
	}

	r.To(tradedomain.StateQuoting)
	balances, err := c.balances.Aggregate(ctx, c.sender, m)
	if err != nil {
		return r.Fail(asAppError(err))
	}

	dir := pricingdomain.DirSYToPT
	if side == tradedomain.SideYT {
		dir = pricingdomain.DirSYToYT
	}
	quote, err := c.quoter.Quote(ctx, m, dir, syAmount)
	if err != nil {
		return r.Fail(asAppError(err))
	}
	minOut, err := tradedomain.MinOut(quote.Out, slippagePct)
	if err != nil {
		return r.Fail(asAppError(err))
	}
	r.Quoted, r.MinOut = quote.Out, minOut

	r.To(tradedomain.StateComposing)
	b := newPlanBuilder(c.sender, m)
	v := b.voucher()
	pos := b.pyPosition(balances.PYPositions)
	kind, fn := buyFn(side)
	b.swap(kind, fn, v, pos, syAmount, minOut)
	r.Plan = b.finish()

	return c.finalize(ctx, r)
}

// AddLiquidity deposits an exact amount of SY into the pool for LP shares.
func (c *Composer) AddLiquidity(ctx context.Context, symbol string, syAmount *big.Int, slippagePct decimal.Decimal) *tradedomain.ActionResult {
	r := tradedomain.NewActionResult(tradedomain.ActionAddLiquidity)
	ctx, span := c.startSpan(ctx, r, symbol, syAmount)
	defer span.End()

	if appErr := c.precheck(syAmount, slippagePct); appErr != nil {
		return r.Fail(appErr)
	}

	m, err := c.markets.ResolveActive(symbol)
	if err != nil {
		return r.Fail(asAppError(err))
	}

	r.To(tradedomain.StateQuoting)
	balances, err := c.balances.Aggregate(ctx, c.sender, m)
	if err != nil {
		return r.Fail(asAppError(err))
	}

	quote, err := c.quoter.Quote(ctx, m, pricingdomain.DirSYToLP, syAmount)
	if err != nil {
		return r.Fail(asAppError(err))
	}
	minLPOut, err := tradedomain.MinOut(quote.Out, slippagePct)
	if err != nil {
		return r.Fail(asAppError(err))
	}
	r.Quoted, r.MinOut = quote.Out, minLPOut

	r.To(tradedomain.StateComposing)
	b := newPlanBuilder(c.sender, m)
	v := b.voucher()
	pos := b.lpPosition(balances.LPPositions)
	b.mintLP(v, pos, syAmount, minLPOut)
	r.Plan = b.finish()

	return c.finalize(ctx, r)
}

// RemoveLiquidity burns LP shares for an (SY, PT) pair. When an isolated dry
// run shows the PT leg can be swapped into SY, the swap is included so the
// user receives a unified SY payout; when it fails for any reason the swap is
// omitted and the PT is paid out as-is. Try once and degrade, never retry.
func (c *Composer) RemoveLiquidity(ctx context.Context, symbol string, lpAmount *big.Int, slippagePct decimal.Decimal) *tradedomain.ActionResult {
	r := tradedomain.NewActionResult(tradedomain.ActionRemoveLiquidity)
	ctx, span := c.startSpan(ctx, r, symbol, lpAmount)
	defer span.End()

	if appErr := c.precheck(lpAmount, slippagePct); appErr != nil {
		return r.Fail(appErr)
	}

	m, err := c.markets.Resolve(symbol)
	if err != nil {
		return r.Fail(asAppError(err))
	}

	r.To(tradedomain.StateQuoting)
	balances, err := c.balances.Aggregate(ctx, c.sender, m)
	if err != nil {
		return r.Fail(asAppError(err))
	}
	needLP := asset.NewAmount(balances.LP.Coin(), lpAmount)
	if enough, err := needLP.LessThanOrEqual(balances.LP); err != nil || !enough {
		return r.Fail(apperror.Precondition(apperror.CodeInsufficientBalance,
			"have "+balances.LP.String()+", need "+needLP.String()))
	}

	burnQuote, err := c.quoter.QuoteBurn(ctx, m, lpAmount)
	if err != nil {
		return r.Fail(asAppError(err))
	}
	minSYOut, err := tradedomain.MinOut(burnQuote.SYOut, slippagePct)
	if err != nil {
		return r.Fail(asAppError(err))
	}
	r.Quoted, r.MinOut = burnQuote.SYOut, minSYOut

	r.To(tradedomain.StateComposing)

	// Speculative branch: dry-run the PT->SY leg in isolation.
	var swapPT bool
	var minSwapOut *big.Int
	if burnQuote.PTOut.Sign() > 0 {
		outcome := c.guard.DryRun(ctx, speculativeLegPlan(c.sender, m, burnQuote.PTOut))
		if outcome.OK {
			if legOut, err := legReturn(outcome); err == nil {
				if minSwapOut, err = tradedomain.MinOut(legOut, slippagePct); err == nil {
					swapPT = true
				}
			}
		}
		if !swapPT {
			c.log.Debug(ctx, "omitting speculative pt swap", "market", symbol, "reason", outcome.Reason)
		}
	}

	b := newPlanBuilder(c.sender, m)
	v := b.voucher()
	pos := b.lpPosition(balances.LPPositions)
	burn := b.burnLP(v, pos, lpAmount, minSYOut)
	if swapPT {
		sw := b.swap(ledgerdomain.OpSwapPTForSY, "swap_exact_pt_for_sy", v, ledgerdomain.ResultOf(burn), burnQuote.PTOut, minSwapOut)
		b.transfer(burn)
		b.transfer(sw)
	} else {
		// SY leg payout plus the PT as-is.
		b.transfer(burn)
	}
	r.Plan = b.finish()

	return c.finalize(ctx, r)
}

// RedeemBoth burns matched PT and YT amounts back into SY and redeems the SY
// for the underlying, paid out to the sender.
func (c *Composer) RedeemBoth(ctx context.Context, symbol string, amount *big.Int, slippagePct decimal.Decimal) *tradedomain.ActionResult {
	r := tradedomain.NewActionResult(tradedomain.ActionRedeemBoth)
	ctx, span := c.startSpan(ctx, r, symbol, amount)
	defer span.End()

	if appErr := c.precheck(amount, slippagePct); appErr != nil {
		return r.Fail(appErr)
	}

	m, err := c.markets.Resolve(symbol)
	if err != nil {
		return r.Fail(asAppError(err))
	}

	r.To(tradedomain.StateQuoting)
	balances, err := c.balances.Aggregate(ctx, c.sender, m)
	if err != nil {
		return r.Fail(asAppError(err))
	}
	needPT := asset.NewAmount(balances.PT.Coin(), amount)
	needYT := asset.NewAmount(balances.YT.Coin(), amount)
	enoughPT, errPT := needPT.LessThanOrEqual(balances.PT)
	enoughYT, errYT := needYT.LessThanOrEqual(balances.YT)
	if errPT != nil || errYT != nil || !enoughPT || !enoughYT {
		return r.Fail(apperror.Precondition(apperror.CodeInsufficientBalance,
			"redeeming "+amount.String()+" needs matching PT and YT; have pt="+balances.PT.String()+" yt="+balances.YT.String()))
	}

	r.To(tradedomain.StateComposing)
	b := newPlanBuilder(c.sender, m)
	pos := b.pyPosition(balances.PYPositions)
	rp := b.redeemPY(pos, amount)
	rs := b.redeemSY(rp)
	b.transfer(rs)
	r.Plan = b.finish()

	return c.finalize(ctx, r)
}

// precheck rejects bad input before any external call is made.
func (c *Composer) precheck(amount *big.Int, slippagePct decimal.Decimal) *apperror.AppError {
	if amount == nil || amount.Sign() <= 0 {
		return apperror.Precondition(apperror.CodeZeroAmount, "")
	}
	if err := tradedomain.ValidateSlippage(slippagePct); err != nil {
		return asAppError(err)
	}
	return nil
}

// finalize pre-flights the composed plan as a whole, then submits it. A
// failed pre-flight on the full plan is a hard abort: it never reaches the
// signer.
func (c *Composer) finalize(ctx context.Context, r *tradedomain.ActionResult) *tradedomain.ActionResult {
	r.To(tradedomain.StateSimulating)
	outcome := c.guard.DryRun(ctx, r.Plan)
	if !outcome.OK {
		return r.Fail(apperror.New(apperror.CodeSimulationFailed, apperror.WithContext(outcome.Reason)))
	}

	r.To(tradedomain.StateBuilt)
	r.To(tradedomain.StateSubmitted)

	result, err := c.executor.Submit(ctx, r.Plan)
	if err != nil {
		return r.Fail(asAppError(err))
	}
	if !result.OK() {
		return r.Fail(apperror.Abort(result.Error))
	}

	c.log.Info(ctx, "action confirmed",
		"action", string(r.Kind),
		"digest", result.Digest,
	)
	return r.Confirm(result.Digest)
}

func (c *Composer) startSpan(ctx context.Context, r *tradedomain.ActionResult, symbol string, amount *big.Int) (context.Context, trace.Span) {
	amt := "0"
	if amount != nil {
		amt = amount.String()
	}
	return c.tracer.Start(ctx, "composer."+string(r.Kind),
		trace.WithAttributes(
			attribute.String("market", symbol),
			attribute.String("amount", amt),
		),
	)
}

// legReturn extracts the quoted SY output from the speculative leg dry run.
func legReturn(outcome Outcome) (*big.Int, error) {
	if len(outcome.Returns) == 0 {
		return nil, errors.New("no return values")
	}
	out, ok := new(big.Int).SetString(outcome.Returns[len(outcome.Returns)-1].Value, 10)
	if !ok {
		return nil, errors.New("non-integer return value")
	}
	return out, nil
}

// asAppError normalizes any error into an AppError without double-wrapping.
func asAppError(err error) *apperror.AppError {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Wrap(err, apperror.CodeUnknownError, "")
}
