// Package ui provides the Bubble Tea quote-watch TUI.
package ui

import (
	"time"

	"github.com/shopspring/decimal"
)

// Message types for TUI updates

// QuoteRequestMsg fires when the debounce window for an input closes.
// Generation identifies the keystroke burst; stale generations are dropped.
type QuoteRequestMsg struct {
	Generation uint64
}

// QuoteResultMsg carries a completed quote.
type QuoteResultMsg struct {
	Generation uint64
	Market     string
	In         decimal.Decimal
	Out        decimal.Decimal
	MinOut     decimal.Decimal
	At         time.Time
}

// QuoteFailedMsg carries a failed quote with a display-ready reason.
type QuoteFailedMsg struct {
	Generation uint64
	Reason     string
}

// CheckpointMsg is sent when the ledger finalizes a checkpoint; the current
// quote is stale from this moment on.
type CheckpointMsg struct {
	Sequence uint64
}

// BalancesMsg carries refreshed logical balances for the selected market.
type BalancesMsg struct {
	Market string
	PT     decimal.Decimal
	YT     decimal.Decimal
	LP     decimal.Decimal
}

// ErrorMsg is sent when a background operation fails.
type ErrorMsg struct {
	Error error
}

// TickMsg is sent periodically for UI updates.
type TickMsg struct{}
