package app

import (
	"math/big"

	ledgerdomain "github.com/fd1az/yieldsplit/business/ledger/domain"
	marketdomain "github.com/fd1az/yieldsplit/business/market/domain"
	positiondomain "github.com/fd1az/yieldsplit/business/position/domain"
	tradedomain "github.com/fd1az/yieldsplit/business/trade/domain"
)

const transferTarget = "0x2::transfer::public_transfer"

// planBuilder assembles the operation sequence for one action against one
// market. Ordering rules: merge before any balance-consuming operation,
// create before use, transfer of a freshly created position at the very end.
type planBuilder struct {
	m    *marketdomain.Market
	plan *ledgerdomain.Plan

	// createdAt is the index of the create-position op, -1 when the action
	// reuses an existing position.
	createdAt int
}

func newPlanBuilder(sender string, m *marketdomain.Market) *planBuilder {
	return &planBuilder{m: m, plan: ledgerdomain.NewPlan(sender), createdAt: -1}
}

// voucher appends the price voucher fetch and returns its index.
func (b *planBuilder) voucher() int {
	return b.plan.Add(ledgerdomain.Operation{
		Kind:     ledgerdomain.OpFetchPriceVoucher,
		Target:   b.m.Target("oracle", "get_price_voucher"),
		TypeArgs: []string{string(b.m.SY.Type())},
		Args: []ledgerdomain.Arg{
			ledgerdomain.Object(b.m.PriceOracleID),
			ledgerdomain.Object(b.m.SYStateID),
		},
	})
}

// pyPosition resolves the PY position argument: merge extras into the first
// position when several exist, create one when none does.
func (b *planBuilder) pyPosition(positions []positiondomain.PYPosition) ledgerdomain.Arg {
	if len(positions) == 0 {
		b.createdAt = b.plan.Add(ledgerdomain.Operation{
			Kind:     ledgerdomain.OpCreatePYPosition,
			Target:   b.m.Target("yield_factory", "create_py_position"),
			TypeArgs: []string{string(b.m.SY.Type())},
			Args: []ledgerdomain.Arg{
				ledgerdomain.Object(b.m.YieldFactoryID),
				ledgerdomain.Object(b.m.PYStateID),
			},
		})
		return ledgerdomain.ResultOf(b.createdAt)
	}

	first := positions[0]
	for _, extra := range positions[1:] {
		b.plan.Add(ledgerdomain.Operation{
			Kind:     ledgerdomain.OpMergePYPositions,
			Target:   b.m.Target("yield_factory", "merge_py_positions"),
			TypeArgs: []string{string(b.m.SY.Type())},
			Args: []ledgerdomain.Arg{
				ledgerdomain.Object(first.ObjectID),
				ledgerdomain.Object(extra.ObjectID),
			},
		})
	}
	return ledgerdomain.Object(first.ObjectID)
}

// lpPosition is the LP analogue of pyPosition.
func (b *planBuilder) lpPosition(positions []positiondomain.LPPosition) ledgerdomain.Arg {
	if len(positions) == 0 {
		b.createdAt = b.plan.Add(ledgerdomain.Operation{
			Kind:     ledgerdomain.OpCreateLPPosition,
			Target:   b.m.Target("market", "create_market_position"),
			TypeArgs: []string{string(b.m.SY.Type())},
			Args:     []ledgerdomain.Arg{ledgerdomain.Object(b.m.MarketStateID)},
		})
		return ledgerdomain.ResultOf(b.createdAt)
	}

	first := positions[0]
	for _, extra := range positions[1:] {
		b.plan.Add(ledgerdomain.Operation{
			Kind:     ledgerdomain.OpMergeLPPositions,
			Target:   b.m.Target("market", "merge_market_positions"),
			TypeArgs: []string{string(b.m.SY.Type())},
			Args: []ledgerdomain.Arg{
				ledgerdomain.Object(first.ObjectID),
				ledgerdomain.Object(extra.ObjectID),
			},
		})
	}
	return ledgerdomain.Object(first.ObjectID)
}

// swap appends the side-specific swap and returns its index. One generic
// builder covers both sides and both directions; only the kind and target
// differ.
func (b *planBuilder) swap(kind ledgerdomain.OpKind, fn string, voucherIdx int, position ledgerdomain.Arg, amount, minOut *big.Int) int {
	return b.plan.Add(ledgerdomain.Operation{
		Kind:     kind,
		Target:   b.m.Target("router", fn),
		TypeArgs: []string{string(b.m.SY.Type())},
		Args: []ledgerdomain.Arg{
			ledgerdomain.ResultOf(voucherIdx),
			ledgerdomain.Object(b.m.FactoryConfigID),
			ledgerdomain.Object(b.m.PYStateID),
			ledgerdomain.Object(b.m.MarketStateID),
			position,
			ledgerdomain.Pure(amount.String()),
			ledgerdomain.Pure(minOut.String()),
		},
	})
}

func (b *planBuilder) mintLP(voucherIdx int, position ledgerdomain.Arg, amount, minLPOut *big.Int) int {
	return b.plan.Add(ledgerdomain.Operation{
		Kind:     ledgerdomain.OpMintLP,
		Target:   b.m.Target("market", "mint_lp"),
		TypeArgs: []string{string(b.m.SY.Type())},
		Args: []ledgerdomain.Arg{
			ledgerdomain.ResultOf(voucherIdx),
			ledgerdomain.Object(b.m.FactoryConfigID),
			ledgerdomain.Object(b.m.MarketStateID),
			position,
			ledgerdomain.Pure(amount.String()),
			ledgerdomain.Pure(minLPOut.String()),
		},
	})
}

func (b *planBuilder) burnLP(voucherIdx int, position ledgerdomain.Arg, amount, minSYOut *big.Int) int {
	return b.plan.Add(ledgerdomain.Operation{
		Kind:     ledgerdomain.OpBurnLP,
		Target:   b.m.Target("market", "burn_lp"),
		TypeArgs: []string{string(b.m.SY.Type())},
		Args: []ledgerdomain.Arg{
			ledgerdomain.ResultOf(voucherIdx),
			ledgerdomain.Object(b.m.FactoryConfigID),
			ledgerdomain.Object(b.m.MarketStateID),
			position,
			ledgerdomain.Pure(amount.String()),
			ledgerdomain.Pure(minSYOut.String()),
		},
	})
}

func (b *planBuilder) redeemPY(position ledgerdomain.Arg, amount *big.Int) int {
	return b.plan.Add(ledgerdomain.Operation{
		Kind:     ledgerdomain.OpRedeemPY,
		Target:   b.m.Target("yield_factory", "redeem_py"),
		TypeArgs: []string{string(b.m.SY.Type())},
		Args: []ledgerdomain.Arg{
			ledgerdomain.Object(b.m.YieldFactoryID),
			ledgerdomain.Object(b.m.PYStateID),
			position,
			ledgerdomain.Pure(amount.String()),
		},
	})
}

func (b *planBuilder) redeemSY(of int) int {
	return b.plan.Add(ledgerdomain.Operation{
		Kind:     ledgerdomain.OpRedeemSY,
		Target:   b.m.Target("sy", "redeem"),
		TypeArgs: []string{string(b.m.SY.Type())},
		Args: []ledgerdomain.Arg{
			ledgerdomain.Object(b.m.SYStateID),
			ledgerdomain.ResultOf(of),
		},
	})
}

// transfer sends the result of a prior operation to the plan's sender.
func (b *planBuilder) transfer(of int) int {
	return b.plan.Add(ledgerdomain.Operation{
		Kind:   ledgerdomain.OpTransferToSender,
		Target: transferTarget,
		Args: []ledgerdomain.Arg{
			ledgerdomain.ResultOf(of),
			ledgerdomain.Pure(b.plan.Sender),
		},
	})
}

// finish transfers a freshly created position back to the sender. A created
// position is not yet owned until explicitly transferred in the same
// transaction, and the transfer must come last.
func (b *planBuilder) finish() *ledgerdomain.Plan {
	if b.createdAt >= 0 {
		b.transfer(b.createdAt)
	}
	return b.plan
}

// speculativeLegPlan builds the isolated read-only PT->SY leg dry-run used
// to decide whether a burn's PT return can be swapped into SY.
func speculativeLegPlan(sender string, m *marketdomain.Market, ptAmount *big.Int) *ledgerdomain.Plan {
	b := newPlanBuilder(sender, m)
	v := b.voucher()
	b.plan.Add(ledgerdomain.Operation{
		Kind:     ledgerdomain.OpSwapPTForSY,
		Target:   m.Target("router", "get_sy_amount_out_for_exact_pt_in"),
		TypeArgs: []string{string(m.SY.Type())},
		Args: []ledgerdomain.Arg{
			ledgerdomain.ResultOf(v),
			ledgerdomain.Object(m.FactoryConfigID),
			ledgerdomain.Object(m.PYStateID),
			ledgerdomain.Object(m.MarketStateID),
			ledgerdomain.Pure(ptAmount.String()),
		},
	})
	return b.plan
}

// sellFn maps a sell side to its swap kind and router function.
func sellFn(side tradedomain.TokenSide) (ledgerdomain.OpKind, string) {
	if side == tradedomain.SideYT {
		return ledgerdomain.OpSwapYTForSY, "swap_exact_yt_for_sy"
	}
	return ledgerdomain.OpSwapPTForSY, "swap_exact_pt_for_sy"
}

func buyFn(side tradedomain.TokenSide) (ledgerdomain.OpKind, string) {
	if side == tradedomain.SideYT {
		return ledgerdomain.OpSwapSYForYT, "swap_exact_sy_for_yt"
	}
	return ledgerdomain.OpSwapSYForPT, "swap_exact_sy_for_pt"
}
