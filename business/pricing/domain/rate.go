// Package domain contains pricing domain types: quote directions, quotes
// and rate snapshots.
package domain

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fd1az/yieldsplit/internal/asset"
)

// Direction identifies a swap direction quoted by the rate oracle.
type Direction string

const (
	DirPTToSY Direction = "pt_to_sy"
	DirYTToSY Direction = "yt_to_sy"
	DirSYToPT Direction = "sy_to_pt"
	DirSYToYT Direction = "sy_to_yt"
	// DirSYToLP quotes LP shares minted for an SY deposit.
	DirSYToLP Direction = "sy_to_lp"
)

// Quote is the simulated output for swapping In base units along Direction.
// Quotes decay as block time advances and must not be reused across actions.
type Quote struct {
	Market    string
	Direction Direction
	In        *big.Int
	Out       *big.Int
	At        time.Time
}

// Rate returns the output per input unit as a ratio.
func (q *Quote) Rate() asset.Ratio {
	return asset.NewRatio(decimal.NewFromBigInt(q.Out, 0), decimal.NewFromBigInt(q.In, 0))
}

// BurnQuote is the simulated (SY, PT) pair returned for burning LP shares.
type BurnQuote struct {
	Market string
	In     *big.Int
	SYOut  *big.Int
	PTOut  *big.Int
	At     time.Time
}

// RateSnapshot is an ephemeral read of a market's current pricing, derived
// from unit-amount quotes. Undefined ratios mean the leg could not be quoted.
// Supply totals are read off the market state object; nil when the read
// failed.
type RateSnapshot struct {
	Market  string
	SYPerPT asset.Ratio
	SYPerYT asset.Ratio
	SYPerLP asset.Ratio
	TotalSY *big.Int
	TotalPT *big.Int
	TotalLP *big.Int
	At      time.Time
}
