// Package position implements the position bounded context: aggregation of
// a user's owned PY and LP position objects into logical balances.
package position

import (
	"context"

	ledgerDI "github.com/fd1az/yieldsplit/business/ledger/di"
	"github.com/fd1az/yieldsplit/business/position/app"
	positionDI "github.com/fd1az/yieldsplit/business/position/di"
	"github.com/fd1az/yieldsplit/internal/di"
	"github.com/fd1az/yieldsplit/internal/logger"
	"github.com/fd1az/yieldsplit/internal/monolith"
)

// Module implements the position bounded context.
type Module struct{}

// RegisterServices registers all position services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, positionDI.Aggregator, func(sr di.ServiceRegistry) *app.Aggregator {
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewAggregator(ledgerDI.GetLedgerService(sr), log)
	})

	return nil
}

// Startup initializes the position module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "position module started")
	return nil
}
