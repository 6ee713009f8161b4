package rpc

import (
	"encoding/json"
	"fmt"

	"github.com/fd1az/yieldsplit/business/ledger/domain"
)

// JSON-RPC 2.0 envelope.

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcErrorBody   `json:"error"`
}

type rpcErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcErrorBody) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Wire DTOs for plans and results.

type argPayload struct {
	Kind     string `json:"kind"`
	Value    string `json:"value,omitempty"`
	ResultOf int    `json:"resultOf,omitempty"`
}

type operationPayload struct {
	Kind     string       `json:"kind"`
	Target   string       `json:"target"`
	TypeArgs []string     `json:"typeArguments,omitempty"`
	Args     []argPayload `json:"arguments,omitempty"`
}

type planPayload struct {
	Sender     string             `json:"sender"`
	Operations []operationPayload `json:"operations"`
}

func encodePlan(plan *domain.Plan) planPayload {
	ops := make([]operationPayload, len(plan.Operations))
	for i, op := range plan.Operations {
		args := make([]argPayload, len(op.Args))
		for j, a := range op.Args {
			args[j] = argPayload{Kind: string(a.Kind), Value: a.Value, ResultOf: a.ResultOf}
		}
		ops[i] = operationPayload{
			Kind:     string(op.Kind),
			Target:   op.Target,
			TypeArgs: op.TypeArgs,
			Args:     args,
		}
	}
	return planPayload{Sender: plan.Sender, Operations: ops}
}

type returnPayload struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type simulationPayload struct {
	Status       string          `json:"status"`
	Error        string          `json:"error,omitempty"`
	ReturnValues []returnPayload `json:"returnValues,omitempty"`
}

func (p *simulationPayload) toDomain() *domain.SimulationResult {
	returns := make([]domain.Return, len(p.ReturnValues))
	for i, rv := range p.ReturnValues {
		returns[i] = domain.Return{Type: rv.Type, Value: rv.Value}
	}
	return &domain.SimulationResult{Status: p.Status, Error: p.Error, Returns: returns}
}

type executionPayload struct {
	Digest string `json:"digest"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (p *executionPayload) toDomain() *domain.ExecutionResult {
	return &domain.ExecutionResult{Digest: p.Digest, Status: p.Status, Error: p.Error}
}

type objectPayload struct {
	ObjectID string            `json:"objectId"`
	Type     string            `json:"type"`
	Version  uint64            `json:"version"`
	Fields   map[string]string `json:"fields"`
}

func (p *objectPayload) toDomain() domain.ObjectRecord {
	fields := p.Fields
	if fields == nil {
		fields = map[string]string{}
	}
	return domain.ObjectRecord{
		ObjectID: p.ObjectID,
		Type:     p.Type,
		Version:  p.Version,
		Fields:   fields,
	}
}

type ownedObjectsPage struct {
	Data        []objectPayload `json:"data"`
	NextCursor  string          `json:"nextCursor,omitempty"`
	HasNextPage bool            `json:"hasNextPage"`
}

type checkpointPayload struct {
	Sequence    uint64 `json:"sequenceNumber"`
	Digest      string `json:"digest"`
	TimestampMs int64  `json:"timestampMs"`
}
