// Package app contains application services and port definitions for the trade context.
package app

import (
	"context"
	"math/big"

	ledgerdomain "github.com/fd1az/yieldsplit/business/ledger/domain"
	marketdomain "github.com/fd1az/yieldsplit/business/market/domain"
	positiondomain "github.com/fd1az/yieldsplit/business/position/domain"
	pricingdomain "github.com/fd1az/yieldsplit/business/pricing/domain"
)

// MarketResolver defines the interface for resolving validated markets.
type MarketResolver interface {
	// Resolve returns the validated market for the symbol.
	Resolve(symbol string) (*marketdomain.Market, error)

	// ResolveActive additionally rejects markets past maturity.
	ResolveActive(symbol string) (*marketdomain.Market, error)
}

// Quoter defines the interface for simulated rate quotes.
type Quoter interface {
	Quote(ctx context.Context, m *marketdomain.Market, dir pricingdomain.Direction, amount *big.Int) (*pricingdomain.Quote, error)
	QuoteBurn(ctx context.Context, m *marketdomain.Market, lpAmount *big.Int) (*pricingdomain.BurnQuote, error)
}

// BalanceReader defines the interface for aggregating a user's positions.
type BalanceReader interface {
	Aggregate(ctx context.Context, owner string, m *marketdomain.Market) (*positiondomain.Balances, error)
}

// Executor defines the interface for simulating and submitting plans.
type Executor interface {
	Simulate(ctx context.Context, plan *ledgerdomain.Plan) (*ledgerdomain.SimulationResult, error)
	Submit(ctx context.Context, plan *ledgerdomain.Plan) (*ledgerdomain.ExecutionResult, error)
}
