package domain

import (
	"fmt"
	"math/big"
)

// Simulation status values as reported by the node.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Return is one return value of the final operation in a simulated plan.
type Return struct {
	// Type is the declared on-chain type of the value, e.g. "u64".
	Type string
	// Value is the decoded value; integers are decimal strings.
	Value string
}

// SimulationResult is the outcome of a dry run against current chain state.
type SimulationResult struct {
	Status string
	// Error carries the raw node error when Status != success.
	Error string
	// Returns holds the return values of the final operation.
	Returns []Return
}

// OK reports whether the simulation succeeded.
func (r *SimulationResult) OK() bool {
	return r != nil && r.Status == StatusSuccess
}

// ReturnU64 decodes the return value at the given slot as an unsigned integer.
func (r *SimulationResult) ReturnU64(slot int) (*big.Int, error) {
	if r == nil || slot < 0 || slot >= len(r.Returns) {
		return nil, fmt.Errorf("no return value at slot %d", slot)
	}
	v, ok := new(big.Int).SetString(r.Returns[slot].Value, 10)
	if !ok {
		return nil, fmt.Errorf("return value at slot %d is not an integer: %q", slot, r.Returns[slot].Value)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("return value at slot %d is negative: %s", slot, v)
	}
	return v, nil
}

// ExecutionResult is the outcome of a signed, submitted plan.
type ExecutionResult struct {
	Digest string
	Status string
	// Error carries the raw node error when Status != success.
	Error string
}

// OK reports whether the transaction was executed successfully.
func (r *ExecutionResult) OK() bool {
	return r != nil && r.Status == StatusSuccess
}
