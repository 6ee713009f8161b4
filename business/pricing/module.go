// Package pricing implements the pricing bounded context: simulated
// rate quoting for tokenized-yield markets.
package pricing

import (
	"context"

	ledgerDI "github.com/fd1az/yieldsplit/business/ledger/di"
	"github.com/fd1az/yieldsplit/business/pricing/app"
	pricingDI "github.com/fd1az/yieldsplit/business/pricing/di"
	"github.com/fd1az/yieldsplit/internal/config"
	"github.com/fd1az/yieldsplit/internal/di"
	"github.com/fd1az/yieldsplit/internal/logger"
	"github.com/fd1az/yieldsplit/internal/monolith"
)

// Module implements the pricing bounded context.
type Module struct{}

// RegisterServices registers all pricing services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, pricingDI.RateOracle, func(sr di.ServiceRegistry) *app.RateOracle {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		ledgerSvc := ledgerDI.GetLedgerService(sr)

		oracle, err := app.NewRateOracle(ledgerSvc, ledgerSvc, cfg.Wallet.Address, log)
		if err != nil {
			panic("failed to create rate oracle: " + err.Error())
		}
		return oracle
	})

	return nil
}

// Startup initializes the pricing module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "pricing module started")
	return nil
}
