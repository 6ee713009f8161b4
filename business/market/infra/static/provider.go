// Package static provides a market provider backed by the application config.
package static

import (
	"github.com/fd1az/yieldsplit/business/market/domain"
	"github.com/fd1az/yieldsplit/internal/asset"
	"github.com/fd1az/yieldsplit/internal/config"
)

// Provider serves markets built once from configuration.
// It implements app.MarketProvider.
type Provider struct {
	markets  []*domain.Market
	bySymbol map[string]*domain.Market
}

// NewProvider builds markets from config, resolving coins through the registry.
func NewProvider(cfgs []config.MarketConfig, registry *asset.Registry) *Provider {
	p := &Provider{bySymbol: make(map[string]*domain.Market, len(cfgs))}
	for _, mc := range cfgs {
		m := &domain.Market{
			Symbol:             mc.Symbol,
			MaturityMs:         mc.MaturityMs,
			Package:            mc.PackageID,
			MarketStateID:      mc.MarketStateID,
			FactoryConfigID:    mc.FactoryConfigID,
			YieldFactoryID:     mc.YieldFactoryID,
			PYStateID:          mc.PYStateID,
			SYStateID:          mc.SYStateID,
			PriceOracleID:      mc.PriceOracleID,
			PYPositionType:     mc.PYPositionType,
			MarketPositionType: mc.MarketPositionType,
		}
		if c, ok := registry.Get(asset.CoinType(mc.UnderlyingType)); ok {
			m.Underlying = c
		}
		if c, ok := registry.Get(asset.CoinType(mc.SYType)); ok {
			m.SY = c
		}
		if c, ok := registry.Get(asset.CoinType(mc.PTType)); ok {
			m.PT = c
		}
		if c, ok := registry.Get(asset.CoinType(mc.YTType)); ok {
			m.YT = c
		}
		if c, ok := registry.Get(asset.CoinType(mc.MarketPositionType)); ok {
			m.LP = c
		}
		p.markets = append(p.markets, m)
		p.bySymbol[m.Symbol] = m
	}
	return p
}

// List returns all configured markets.
func (p *Provider) List() []*domain.Market {
	out := make([]*domain.Market, len(p.markets))
	copy(out, p.markets)
	return out
}

// Get returns the market with the given symbol.
func (p *Provider) Get(symbol string) (*domain.Market, bool) {
	m, ok := p.bySymbol[symbol]
	return m, ok
}
