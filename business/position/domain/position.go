// Package domain contains position domain types: the user's on-chain PY and
// LP position records and their aggregated logical balances.
package domain

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/fd1az/yieldsplit/internal/asset"
)

// PYPosition is one owned container holding PT and YT balances for a
// (market, maturity) pair. A user may own several per market.
type PYPosition struct {
	ObjectID   string
	PTBalance  *big.Int
	YTBalance  *big.Int
	MaturityMs int64
	PYStateID  string
}

// LPPosition is one owned record holding LP shares for a (market, maturity).
type LPPosition struct {
	ObjectID      string
	LPBalance     *big.Int
	MaturityMs    int64
	MarketStateID string
}

// Balances is the reduction of all matching positions into logical balances.
// Each balance is an exact coin-denominated amount in base units.
type Balances struct {
	PT asset.Amount
	YT asset.Amount
	LP asset.Amount

	PYPositions []PYPosition
	LPPositions []LPPosition
}

// NewBalances creates empty balances denominated in the given coins.
func NewBalances(pt, yt, lp *asset.Coin) *Balances {
	return &Balances{
		PT: asset.Zero(pt),
		YT: asset.Zero(yt),
		LP: asset.Zero(lp),
	}
}

// AddPY accumulates a PY position into the logical PT and YT balances.
func (b *Balances) AddPY(p PYPosition) {
	b.PT = b.PT.MustAdd(asset.NewAmount(b.PT.Coin(), p.PTBalance))
	b.YT = b.YT.MustAdd(asset.NewAmount(b.YT.Coin(), p.YTBalance))
	b.PYPositions = append(b.PYPositions, p)
}

// AddLP accumulates an LP position into the logical LP balance.
func (b *Balances) AddLP(p LPPosition) {
	b.LP = b.LP.MustAdd(asset.NewAmount(b.LP.Coin(), p.LPBalance))
	b.LPPositions = append(b.LPPositions, p)
}

// PTHuman returns the logical PT balance in human units.
func (b *Balances) PTHuman() decimal.Decimal {
	return b.PT.ToDecimal()
}

// YTHuman returns the logical YT balance in human units.
func (b *Balances) YTHuman() decimal.Decimal {
	return b.YT.ToDecimal()
}

// LPHuman returns the logical LP balance in human units.
func (b *Balances) LPHuman() decimal.Decimal {
	return b.LP.ToDecimal()
}
