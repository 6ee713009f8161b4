// Package di contains dependency injection tokens for the pricing context.
package di

import (
	"github.com/fd1az/yieldsplit/business/pricing/app"
	"github.com/fd1az/yieldsplit/internal/di"
)

// Public service tokens - exposed to other modules
var (
	RateOracle = di.NewToken[*app.RateOracle]("pricing.RateOracle")
)

// Helper functions for type-safe access
func GetRateOracle(c di.ServiceRegistry) *app.RateOracle {
	return di.GetToken(c, RateOracle)
}
