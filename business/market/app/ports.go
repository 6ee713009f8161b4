// Package app contains application services and port definitions for the market context.
package app

import (
	"github.com/fd1az/yieldsplit/business/market/domain"
)

// MarketProvider defines the interface for loading market definitions.
type MarketProvider interface {
	// List returns all configured markets.
	List() []*domain.Market

	// Get returns the market with the given symbol.
	Get(symbol string) (*domain.Market, bool)
}
