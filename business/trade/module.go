// Package trade implements the trade bounded context: action composition,
// dry-run guarding and submission.
package trade

import (
	"context"

	ledgerDI "github.com/fd1az/yieldsplit/business/ledger/di"
	marketDI "github.com/fd1az/yieldsplit/business/market/di"
	positionDI "github.com/fd1az/yieldsplit/business/position/di"
	pricingDI "github.com/fd1az/yieldsplit/business/pricing/di"
	"github.com/fd1az/yieldsplit/business/trade/app"
	tradeDI "github.com/fd1az/yieldsplit/business/trade/di"
	"github.com/fd1az/yieldsplit/internal/config"
	"github.com/fd1az/yieldsplit/internal/di"
	"github.com/fd1az/yieldsplit/internal/logger"
	"github.com/fd1az/yieldsplit/internal/monolith"
)

// Module implements the trade bounded context.
type Module struct{}

// RegisterServices registers all trade services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, tradeDI.DryRunGuard, func(sr di.ServiceRegistry) *app.DryRunGuard {
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewDryRunGuard(ledgerDI.GetLedgerService(sr), log)
	})

	di.RegisterToken(c, tradeDI.Composer, func(sr di.ServiceRegistry) *app.Composer {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		return app.NewComposer(
			marketDI.GetMarketService(sr),
			pricingDI.GetRateOracle(sr),
			positionDI.GetAggregator(sr),
			tradeDI.GetDryRunGuard(sr),
			ledgerDI.GetLedgerService(sr),
			cfg.Wallet.Address,
			log,
		)
	})

	return nil
}

// Startup initializes the trade module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "trade module started")
	return nil
}
