// Package di contains dependency injection tokens for the trade context.
package di

import (
	"github.com/fd1az/yieldsplit/business/trade/app"
	"github.com/fd1az/yieldsplit/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Composer = di.NewToken[*app.Composer]("trade.Composer")
)

// Private dependency tokens - internal to trade module
var (
	DryRunGuard = di.NewToken[*app.DryRunGuard]("trade:dryRunGuard")
)

// Helper functions for type-safe access
func GetComposer(c di.ServiceRegistry) *app.Composer {
	return di.GetToken(c, Composer)
}

func GetDryRunGuard(c di.ServiceRegistry) *app.DryRunGuard {
	return di.GetToken(c, DryRunGuard)
}
