// Package app contains application services and port definitions for the ledger context.
package app

import (
	"context"

	"github.com/fd1az/yieldsplit/business/ledger/domain"
)

// Executor defines the interface for running transaction plans against a node.
type Executor interface {
	// Simulate dry-runs the plan against current chain state without signing.
	Simulate(ctx context.Context, plan *domain.Plan) (*domain.SimulationResult, error)

	// Submit signs the plan through the wallet proxy and executes it.
	Submit(ctx context.Context, plan *domain.Plan) (*domain.ExecutionResult, error)
}

// ObjectStore defines the interface for reading owned on-chain objects.
type ObjectStore interface {
	// GetOwnedObjectsByType lists objects of the given type owned by owner.
	GetOwnedObjectsByType(ctx context.Context, owner, typeTag string) ([]domain.ObjectRecord, error)

	// GetObject fetches a single object by id.
	GetObject(ctx context.Context, objectID string) (*domain.ObjectRecord, error)
}

// CheckpointStream defines the interface for subscribing to finalized checkpoints.
type CheckpointStream interface {
	// Subscribe starts the checkpoint feed and returns a channel of checkpoints.
	Subscribe(ctx context.Context) (<-chan domain.Checkpoint, error)

	// Close terminates the feed.
	Close() error
}
