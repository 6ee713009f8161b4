// Package domain contains trade domain types: actions, their state machine
// and slippage arithmetic.
package domain

import (
	"math/big"

	ledgerdomain "github.com/fd1az/yieldsplit/business/ledger/domain"
	"github.com/fd1az/yieldsplit/internal/apperror"
)

// TokenSide selects which leg of a market an action targets.
type TokenSide string

const (
	SidePT TokenSide = "pt"
	SideYT TokenSide = "yt"
)

// Valid reports whether the side is one of the two known legs.
func (s TokenSide) Valid() bool {
	return s == SidePT || s == SideYT
}

// ActionKind identifies a composer entry point.
type ActionKind string

const (
	ActionAddLiquidity    ActionKind = "add_liquidity"
	ActionRemoveLiquidity ActionKind = "remove_liquidity"
	ActionBuy             ActionKind = "buy"
	ActionSell            ActionKind = "sell"
	ActionRedeemBoth      ActionKind = "redeem_both"
)

// ActionState is one state of the per-action state machine. Each action is
// independent; there is no cross-action state.
type ActionState string

const (
	StateIdle       ActionState = "idle"
	StateQuoting    ActionState = "quoting"
	StateComposing  ActionState = "composing"
	StateSimulating ActionState = "simulating"
	StateBuilt      ActionState = "built"
	StateSubmitted  ActionState = "submitted"
	StateConfirmed  ActionState = "confirmed"
	StateFailed     ActionState = "failed"
)

// Terminal reports whether the state ends the action.
func (s ActionState) Terminal() bool {
	return s == StateConfirmed || s == StateFailed
}

// ActionResult is the terminal outcome of one composer entry point, with the
// trail of states the action moved through.
type ActionResult struct {
	Kind  ActionKind
	State ActionState
	Trail []ActionState

	// Plan is the composed operation sequence; nil when composition never
	// completed.
	Plan *ledgerdomain.Plan

	// Quoted and MinOut are base units; set for quote-driven actions.
	Quoted *big.Int
	MinOut *big.Int

	// Digest is the transaction id after submission.
	Digest string

	// Err is set iff State == StateFailed.
	Err *apperror.AppError
}

// NewActionResult starts an action in the Idle state.
func NewActionResult(kind ActionKind) *ActionResult {
	r := &ActionResult{Kind: kind, State: StateIdle}
	r.Trail = append(r.Trail, StateIdle)
	return r
}

// To advances the action to a non-terminal state.
func (r *ActionResult) To(state ActionState) *ActionResult {
	r.State = state
	r.Trail = append(r.Trail, state)
	return r
}

// Fail moves the action to the terminal Failed state.
func (r *ActionResult) Fail(err *apperror.AppError) *ActionResult {
	r.Err = err
	return r.To(StateFailed)
}

// Confirm moves the action to the terminal Confirmed state.
func (r *ActionResult) Confirm(digest string) *ActionResult {
	r.Digest = digest
	return r.To(StateConfirmed)
}

// OK reports whether the action confirmed.
func (r *ActionResult) OK() bool {
	return r.State == StateConfirmed
}

// Display returns the user-facing status message.
func (r *ActionResult) Display() string {
	if r.Err != nil {
		return r.Err.Display()
	}
	if r.State == StateConfirmed {
		return "confirmed: " + r.Digest
	}
	return string(r.State)
}
