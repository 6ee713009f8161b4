// Package app contains application services and port definitions for the market context.
package app

import (
	"time"

	"github.com/fd1az/yieldsplit/business/market/domain"
	"github.com/fd1az/yieldsplit/internal/apperror"
)

// MarketService resolves and validates markets for the other contexts.
type MarketService struct {
	provider MarketProvider
	now      func() time.Time
}

// NewMarketService creates a new MarketService.
func NewMarketService(provider MarketProvider) *MarketService {
	return &MarketService{provider: provider, now: time.Now}
}

// List returns all configured markets.
func (s *MarketService) List() []*domain.Market {
	return s.provider.List()
}

// Resolve returns the validated market for the given symbol. It fails when
// the symbol is unknown or the market definition is incomplete.
func (s *MarketService) Resolve(symbol string) (*domain.Market, error) {
	m, ok := s.provider.Get(symbol)
	if !ok {
		return nil, apperror.Precondition(apperror.CodeUnknownMarket, symbol)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// ResolveActive returns the validated market and additionally fails when the
// market has passed maturity. Entry-side trades must refuse expired markets.
func (s *MarketService) ResolveActive(symbol string) (*domain.Market, error) {
	m, err := s.Resolve(symbol)
	if err != nil {
		return nil, err
	}
	if m.IsExpired(s.now()) {
		return nil, apperror.Precondition(apperror.CodeMarketExpired, symbol)
	}
	return m, nil
}
