// Package app contains application services and port definitions for the ledger context.
package app

import (
	"context"

	"github.com/fd1az/yieldsplit/business/ledger/domain"
	"github.com/fd1az/yieldsplit/internal/logger"
)

// LedgerService coordinates ledger interactions for the other contexts.
type LedgerService struct {
	executor Executor
	objects  ObjectStore
	stream   CheckpointStream
	log      logger.LoggerInterface
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(executor Executor, objects ObjectStore, stream CheckpointStream, log logger.LoggerInterface) *LedgerService {
	return &LedgerService{
		executor: executor,
		objects:  objects,
		stream:   stream,
		log:      log,
	}
}

// Simulate dry-runs a plan without signing.
func (s *LedgerService) Simulate(ctx context.Context, plan *domain.Plan) (*domain.SimulationResult, error) {
	s.log.Debug(ctx, "simulating plan", "sender", plan.Sender, "operations", plan.Len())
	return s.executor.Simulate(ctx, plan)
}

// Submit signs and executes a plan.
func (s *LedgerService) Submit(ctx context.Context, plan *domain.Plan) (*domain.ExecutionResult, error) {
	s.log.Info(ctx, "submitting plan", "sender", plan.Sender, "operations", plan.Len())
	result, err := s.executor.Submit(ctx, plan)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "plan executed", "digest", result.Digest, "status", result.Status)
	return result, nil
}

// GetOwnedObjectsByType lists objects of the given type owned by owner.
func (s *LedgerService) GetOwnedObjectsByType(ctx context.Context, owner, typeTag string) ([]domain.ObjectRecord, error) {
	return s.objects.GetOwnedObjectsByType(ctx, owner, typeTag)
}

// GetObject fetches a single object by id.
func (s *LedgerService) GetObject(ctx context.Context, objectID string) (*domain.ObjectRecord, error) {
	return s.objects.GetObject(ctx, objectID)
}

// SubscribeCheckpoints starts the checkpoint feed.
func (s *LedgerService) SubscribeCheckpoints(ctx context.Context) (<-chan domain.Checkpoint, error) {
	return s.stream.Subscribe(ctx)
}
