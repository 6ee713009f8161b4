package app

import (
	"math/big"

	ledgerdomain "github.com/fd1az/yieldsplit/business/ledger/domain"
	marketdomain "github.com/fd1az/yieldsplit/business/market/domain"
	"github.com/fd1az/yieldsplit/business/pricing/domain"
)

// Read-only router functions used for quoting. Each takes the market's shared
// objects plus an exact input and returns the output amount without mutating
// state.
var quoteTargets = map[domain.Direction]string{
	domain.DirPTToSY: "get_sy_amount_out_for_exact_pt_in",
	domain.DirYTToSY: "get_sy_amount_out_for_exact_yt_in",
	domain.DirSYToPT: "get_pt_amount_out_for_exact_sy_in",
	domain.DirSYToYT: "get_yt_amount_out_for_exact_sy_in",
	domain.DirSYToLP: "get_lp_amount_out_for_exact_sy_in",
}

const burnQuoteTarget = "get_burn_lp_amounts_out"

// quotePlan builds the dry-run plan for a single-output quote: fetch a fresh
// price voucher, then call the read-only router function with it. The voucher
// is consumed exactly once by the simulated call.
func quotePlan(sender string, m *marketdomain.Market, dir domain.Direction, amount *big.Int) *ledgerdomain.Plan {
	plan := ledgerdomain.NewPlan(sender)
	voucher := plan.Add(voucherOp(m))
	plan.Add(ledgerdomain.Operation{
		Kind:     quoteOpKind(dir),
		Target:   m.Target("router", quoteTargets[dir]),
		TypeArgs: []string{string(m.SY.Type())},
		Args: []ledgerdomain.Arg{
			ledgerdomain.ResultOf(voucher),
			ledgerdomain.Object(m.FactoryConfigID),
			ledgerdomain.Object(m.PYStateID),
			ledgerdomain.Object(m.MarketStateID),
			ledgerdomain.Pure(amount.String()),
		},
	})
	return plan
}

// burnQuotePlan builds the dry-run plan quoting the (SY, PT) pair returned
// for burning LP shares.
func burnQuotePlan(sender string, m *marketdomain.Market, lpAmount *big.Int) *ledgerdomain.Plan {
	plan := ledgerdomain.NewPlan(sender)
	voucher := plan.Add(voucherOp(m))
	plan.Add(ledgerdomain.Operation{
		Kind:     ledgerdomain.OpBurnLP,
		Target:   m.Target("router", burnQuoteTarget),
		TypeArgs: []string{string(m.SY.Type())},
		Args: []ledgerdomain.Arg{
			ledgerdomain.ResultOf(voucher),
			ledgerdomain.Object(m.FactoryConfigID),
			ledgerdomain.Object(m.MarketStateID),
			ledgerdomain.Pure(lpAmount.String()),
		},
	})
	return plan
}

func voucherOp(m *marketdomain.Market) ledgerdomain.Operation {
	return ledgerdomain.Operation{
		Kind:     ledgerdomain.OpFetchPriceVoucher,
		Target:   m.Target("oracle", "get_price_voucher"),
		TypeArgs: []string{string(m.SY.Type())},
		Args: []ledgerdomain.Arg{
			ledgerdomain.Object(m.PriceOracleID),
			ledgerdomain.Object(m.SYStateID),
		},
	}
}

func quoteOpKind(dir domain.Direction) ledgerdomain.OpKind {
	switch dir {
	case domain.DirPTToSY:
		return ledgerdomain.OpSwapPTForSY
	case domain.DirYTToSY:
		return ledgerdomain.OpSwapYTForSY
	case domain.DirSYToPT:
		return ledgerdomain.OpSwapSYForPT
	case domain.DirSYToYT:
		return ledgerdomain.OpSwapSYForYT
	case domain.DirSYToLP:
		return ledgerdomain.OpMintLP
	}
	return ledgerdomain.OpKind(string(dir))
}
