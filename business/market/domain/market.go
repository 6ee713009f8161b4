// Package domain contains market domain types for tokenized-yield markets.
package domain

import (
	"time"

	"github.com/fd1az/yieldsplit/internal/apperror"
	"github.com/fd1az/yieldsplit/internal/asset"
)

// Market describes one tokenized-yield market: the four coins involved,
// the maturity and the shared objects every plan references.
type Market struct {
	Symbol string

	Underlying *asset.Coin
	SY         *asset.Coin
	PT         *asset.Coin
	YT         *asset.Coin

	// LP denominates pool shares. Its type tag is the market position
	// object type, since LP shares only exist inside those objects.
	LP *asset.Coin

	// MaturityMs is the market maturity in unix milliseconds.
	MaturityMs int64

	// Package is the protocol package id plans call into.
	Package string

	// Shared object ids referenced by plans.
	MarketStateID   string
	FactoryConfigID string
	YieldFactoryID  string
	PYStateID       string
	SYStateID       string
	PriceOracleID   string

	// Full type tags of the owned position objects for this market.
	PYPositionType     string
	MarketPositionType string
}

// Target returns the fully qualified call target for a protocol function,
// e.g. Target("router", "swap_exact_pt_for_sy").
func (m *Market) Target(module, fn string) string {
	return m.Package + "::" + module + "::" + fn
}

// Maturity returns the market maturity as a time.Time.
func (m *Market) Maturity() time.Time {
	return time.UnixMilli(m.MaturityMs)
}

// IsExpired reports whether the market has passed maturity at the given time.
func (m *Market) IsExpired(now time.Time) bool {
	return now.UnixMilli() >= m.MaturityMs
}

// Decimals returns the shared decimal scale of the market's coins.
func (m *Market) Decimals() uint8 {
	return m.SY.Decimals()
}

// Validate checks that every field a plan needs is present.
func (m *Market) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"symbol", m.Symbol},
		{"package_id", m.Package},
		{"market_state_id", m.MarketStateID},
		{"factory_config_id", m.FactoryConfigID},
		{"yield_factory_id", m.YieldFactoryID},
		{"py_state_id", m.PYStateID},
		{"sy_state_id", m.SYStateID},
		{"price_oracle_id", m.PriceOracleID},
		{"py_position_type", m.PYPositionType},
		{"market_position_type", m.MarketPositionType},
	}
	for _, f := range required {
		if f.value == "" {
			return apperror.Precondition(apperror.CodeMissingMarketField, m.Symbol+": "+f.name)
		}
	}
	if m.SY == nil || m.PT == nil || m.YT == nil || m.LP == nil {
		return apperror.Precondition(apperror.CodeMissingMarketField, m.Symbol+": coins")
	}
	if m.MaturityMs <= 0 {
		return apperror.Precondition(apperror.CodeMissingMarketField, m.Symbol+": maturity_ms")
	}
	return nil
}
