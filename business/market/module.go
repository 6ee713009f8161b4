// Package market implements the market bounded context: tokenized-yield
// market definitions, validation and maturity checks.
package market

import (
	"context"

	"github.com/fd1az/yieldsplit/business/market/app"
	marketDI "github.com/fd1az/yieldsplit/business/market/di"
	"github.com/fd1az/yieldsplit/business/market/infra/static"
	"github.com/fd1az/yieldsplit/internal/asset"
	"github.com/fd1az/yieldsplit/internal/config"
	"github.com/fd1az/yieldsplit/internal/di"
	"github.com/fd1az/yieldsplit/internal/monolith"
)

// Module implements the market bounded context.
type Module struct{}

// RegisterServices registers all market services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, marketDI.MarketProvider, func(sr di.ServiceRegistry) app.MarketProvider {
		cfg := sr.Get("config").(*config.Config)
		registry := sr.Get("coinRegistry").(*asset.Registry)
		return static.NewProvider(cfg.Markets, registry)
	})

	di.RegisterToken(c, marketDI.MarketService, func(sr di.ServiceRegistry) *app.MarketService {
		return app.NewMarketService(marketDI.GetMarketProvider(sr))
	})

	return nil
}

// Startup initializes the market module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	svc := marketDI.GetMarketService(mono.Services())
	mono.Logger().Info(ctx, "market module started", "markets", len(svc.List()))
	return nil
}
