// Package di contains dependency injection tokens for the position context.
package di

import (
	"github.com/fd1az/yieldsplit/business/position/app"
	"github.com/fd1az/yieldsplit/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Aggregator = di.NewToken[*app.Aggregator]("position.Aggregator")
)

// Helper functions for type-safe access
func GetAggregator(c di.ServiceRegistry) *app.Aggregator {
	return di.GetToken(c, Aggregator)
}
