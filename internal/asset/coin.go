// Package asset provides a type-safe model for on-chain coins and amounts.
// The core uses big.Int base units for exact on-chain representation.
// decimal.Decimal is only used at boundaries (UI, parsing, display).
package asset

import "strings"

// CoinType is the fully-qualified on-chain type tag of a coin
// (e.g. "0x5f3a::sy_usdc::SY_USDC"). It is the TRUE identity of a
// coin - the symbol is display metadata only.
type CoinType string

// IsZero returns true for the empty type tag.
func (t CoinType) IsZero() bool {
	return t == ""
}

// Short returns a shortened form for logs: the last two segments of the tag.
func (t CoinType) Short() string {
	parts := strings.Split(string(t), "::")
	if len(parts) < 2 {
		return string(t)
	}
	return strings.Join(parts[len(parts)-2:], "::")
}

// Equals compares two coin types for identity.
func (t CoinType) Equals(other CoinType) bool {
	return t == other
}

// Coin represents the metadata of an on-chain coin. It is a reference
// entity with stable identity (CoinType).
type Coin struct {
	typeTag  CoinType
	symbol   string
	name     string
	decimals uint8
}

// NewCoin creates a new Coin with the given parameters.
func NewCoin(typeTag CoinType, symbol string, decimals uint8) *Coin {
	if typeTag.IsZero() {
		panic("asset: empty coin type tag")
	}
	if symbol == "" {
		panic("asset: empty symbol")
	}
	if decimals > 30 {
		panic("asset: suspicious decimals (>30)")
	}

	return &Coin{
		typeTag:  typeTag,
		symbol:   symbol,
		decimals: decimals,
	}
}

// NewCoinWithName creates a new Coin with a human-readable name.
func NewCoinWithName(typeTag CoinType, symbol, name string, decimals uint8) *Coin {
	c := NewCoin(typeTag, symbol, decimals)
	c.name = name
	return c
}

// Type returns the fully-qualified type tag.
func (c *Coin) Type() CoinType {
	return c.typeTag
}

// Symbol returns the ticker symbol (e.g. "SY-USDC", "PT-USDC").
func (c *Coin) Symbol() string {
	return c.symbol
}

// Name returns the human-readable name, falling back to the symbol.
func (c *Coin) Name() string {
	if c.name == "" {
		return c.symbol
	}
	return c.name
}

// Decimals returns the number of decimal places.
func (c *Coin) Decimals() uint8 {
	return c.decimals
}

// String returns a human-readable representation.
func (c *Coin) String() string {
	return c.symbol
}

// Equals compares two Coins by their type tag.
func (c *Coin) Equals(other *Coin) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.typeTag.Equals(other.typeTag)
}
