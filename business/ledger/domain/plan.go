// Package domain contains ledger domain types: transaction plans,
// simulation results, owned objects and checkpoints.
package domain

// OpKind identifies the semantic role of an operation inside a plan.
type OpKind string

const (
	OpFetchPriceVoucher OpKind = "fetch_price_voucher"
	OpCreatePYPosition  OpKind = "create_py_position"
	OpCreateLPPosition  OpKind = "create_lp_position"
	OpMergePYPositions  OpKind = "merge_py_positions"
	OpMergeLPPositions  OpKind = "merge_lp_positions"
	OpDeposit           OpKind = "deposit"
	OpMintPY            OpKind = "mint_py"
	OpSwapPTForSY       OpKind = "swap_pt_for_sy"
	OpSwapSYForPT       OpKind = "swap_sy_for_pt"
	OpSwapYTForSY       OpKind = "swap_yt_for_sy"
	OpSwapSYForYT       OpKind = "swap_sy_for_yt"
	OpMintLP            OpKind = "mint_lp"
	OpBurnLP            OpKind = "burn_lp"
	OpRedeemPY          OpKind = "redeem_py"
	OpRedeemSY          OpKind = "redeem_sy"
	OpTransferToSender  OpKind = "transfer_to_sender"
)

// ArgKind distinguishes how an operation argument is resolved.
type ArgKind string

const (
	// ArgPure is a literal value encoded as a string (integers in decimal).
	ArgPure ArgKind = "pure"
	// ArgObject references an on-chain object by id.
	ArgObject ArgKind = "object"
	// ArgResult references the result of an earlier operation in the plan.
	ArgResult ArgKind = "result"
)

// Arg is a single operation argument.
type Arg struct {
	Kind ArgKind
	// Value holds the literal or object id for pure/object args.
	Value string
	// ResultOf is the index of the producing operation for result args.
	ResultOf int
}

// Pure returns a literal argument.
func Pure(value string) Arg {
	return Arg{Kind: ArgPure, Value: value}
}

// Object returns an argument referencing an on-chain object.
func Object(id string) Arg {
	return Arg{Kind: ArgObject, Value: id}
}

// ResultOf returns an argument referencing the result of a prior operation.
func ResultOf(index int) Arg {
	return Arg{Kind: ArgResult, ResultOf: index}
}

// Operation is one call inside a transaction plan.
type Operation struct {
	Kind     OpKind
	Target   string
	TypeArgs []string
	Args     []Arg
}

// Plan is an ordered list of operations executed atomically under one sender.
type Plan struct {
	Sender     string
	Operations []Operation
}

// NewPlan creates an empty plan for the given sender.
func NewPlan(sender string) *Plan {
	return &Plan{Sender: sender}
}

// Add appends an operation and returns its index, usable for result references.
func (p *Plan) Add(op Operation) int {
	p.Operations = append(p.Operations, op)
	return len(p.Operations) - 1
}

// Len returns the number of operations in the plan.
func (p *Plan) Len() int {
	return len(p.Operations)
}

// IndexOf returns the index of the first operation of the given kind, or -1.
func (p *Plan) IndexOf(kind OpKind) int {
	for i, op := range p.Operations {
		if op.Kind == kind {
			return i
		}
	}
	return -1
}

// Contains reports whether the plan has an operation of the given kind.
func (p *Plan) Contains(kind OpKind) bool {
	return p.IndexOf(kind) >= 0
}

// Kinds returns the operation kinds in plan order.
func (p *Plan) Kinds() []OpKind {
	kinds := make([]OpKind, len(p.Operations))
	for i, op := range p.Operations {
		kinds[i] = op.Kind
	}
	return kinds
}
