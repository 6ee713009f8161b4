// Package di contains dependency injection tokens for the market context.
package di

import (
	"github.com/fd1az/yieldsplit/business/market/app"
	"github.com/fd1az/yieldsplit/internal/di"
)

// Public service tokens - exposed to other modules
var (
	MarketService = di.NewToken[*app.MarketService]("market.MarketService")
)

// Private dependency tokens - internal to market module
var (
	MarketProvider = di.NewToken[app.MarketProvider]("market:provider")
)

// Helper functions for type-safe access
func GetMarketService(c di.ServiceRegistry) *app.MarketService {
	return di.GetToken(c, MarketService)
}

func GetMarketProvider(c di.ServiceRegistry) app.MarketProvider {
	return di.GetToken(c, MarketProvider)
}
