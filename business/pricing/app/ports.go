// Package app contains application services and port definitions for the pricing context.
package app

import (
	"context"

	ledgerdomain "github.com/fd1az/yieldsplit/business/ledger/domain"
)

// Simulator defines the interface for dry-running quote plans.
type Simulator interface {
	Simulate(ctx context.Context, plan *ledgerdomain.Plan) (*ledgerdomain.SimulationResult, error)
}

// ObjectReader fetches single on-chain objects, used to read pool supply
// fields off the market state.
type ObjectReader interface {
	GetObject(ctx context.Context, objectID string) (*ledgerdomain.ObjectRecord, error)
}
