// Package rpc implements the ledger ports over the node's JSON-RPC API.
package rpc

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/fd1az/yieldsplit/business/ledger/domain"
	"github.com/fd1az/yieldsplit/internal/apperror"
	"github.com/fd1az/yieldsplit/internal/circuitbreaker"
	"github.com/fd1az/yieldsplit/internal/httpclient"
	"github.com/fd1az/yieldsplit/internal/logger"
	"github.com/fd1az/yieldsplit/internal/ratelimit"
)

// JSON-RPC method names.
const (
	methodDryRunPlan         = "ledger_dryRunPlan"
	methodGetOwnedObjects    = "ledger_getOwnedObjects"
	methodGetObject          = "ledger_getObject"
	methodSignAndExecutePlan = "wallet_signAndExecutePlan"
)

const ownedObjectsPageSize = 50

// Config holds RPC client configuration.
type Config struct {
	// RPCURL is the node's JSON-RPC endpoint.
	RPCURL string
	// SignerURL is the wallet proxy endpoint that signs and forwards plans.
	SignerURL string
	// RequestTimeout bounds each HTTP request.
	RequestTimeout time.Duration
	// RequestsPerMinute caps the outbound request rate to the node.
	RequestsPerMinute int
}

// Client talks JSON-RPC to a ledger node and to the wallet signer proxy.
// It implements app.Executor and app.ObjectStore.
type Client struct {
	node    *httpclient.Client
	signer  *httpclient.Client
	limiter *ratelimit.Limiter
	breaker *circuitbreaker.CircuitBreaker[*rpcResponse]
	log     logger.LoggerInterface
	nextID  atomic.Uint64
}

// NewClient creates a new ledger RPC client.
func NewClient(cfg Config, log logger.LoggerInterface) (*Client, error) {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 300
	}

	node, err := httpclient.New(
		httpclient.WithBaseURL(cfg.RPCURL),
		httpclient.WithProviderName("ledger-node"),
		httpclient.WithRequestTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		return nil, err
	}

	var signer *httpclient.Client
	if cfg.SignerURL != "" {
		signer, err = httpclient.New(
			httpclient.WithBaseURL(cfg.SignerURL),
			httpclient.WithProviderName("wallet-signer"),
			httpclient.WithRequestTimeout(cfg.RequestTimeout),
		)
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		node:    node,
		signer:  signer,
		limiter: ratelimit.NewPerMinute(cfg.RequestsPerMinute),
		breaker: circuitbreaker.New[*rpcResponse](circuitbreaker.DefaultConfig("ledger-rpc")),
		log:     log,
	}, nil
}

func (c *Client) call(ctx context.Context, target *httpclient.Client, method string, params []any, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return apperror.Wrap(err, apperror.CodeRateLimited, method)
	}

	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	}

	resp, err := c.breaker.Execute(func() (*rpcResponse, error) {
		var r rpcResponse
		if err := target.PostJSON(ctx, "", req, &r); err != nil {
			return nil, err
		}
		return &r, nil
	})
	if err != nil {
		if c.breaker.IsOpen() {
			return apperror.Wrap(err, apperror.CodeCircuitOpen, method)
		}
		return apperror.Transport(method, err)
	}
	if resp.Error != nil {
		return apperror.Wrap(resp.Error, apperror.CodeRPCError, method)
	}
	if result != nil {
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return apperror.Wrap(err, apperror.CodeRPCError, method+": decode result")
		}
	}
	return nil
}

// Simulate dry-runs a plan against current chain state.
func (c *Client) Simulate(ctx context.Context, plan *domain.Plan) (*domain.SimulationResult, error) {
	var payload simulationPayload
	if err := c.call(ctx, c.node, methodDryRunPlan, []any{encodePlan(plan)}, &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}

// Submit signs the plan through the wallet proxy and executes it.
func (c *Client) Submit(ctx context.Context, plan *domain.Plan) (*domain.ExecutionResult, error) {
	if c.signer == nil {
		return nil, apperror.New(apperror.CodeSignerUnavailable)
	}
	var payload executionPayload
	if err := c.call(ctx, c.signer, methodSignAndExecutePlan, []any{encodePlan(plan)}, &payload); err != nil {
		return nil, err
	}
	result := payload.toDomain()
	if !result.OK() && result.Error != "" {
		c.log.Warn(ctx, "plan execution failed on chain", "digest", result.Digest, "error", result.Error)
	}
	return result, nil
}

// GetOwnedObjectsByType lists all objects of the given type owned by owner,
// following pagination cursors until exhausted.
func (c *Client) GetOwnedObjectsByType(ctx context.Context, owner, typeTag string) ([]domain.ObjectRecord, error) {
	var records []domain.ObjectRecord
	cursor := ""
	for {
		params := []any{owner, typeTag, cursor, ownedObjectsPageSize}
		var page ownedObjectsPage
		if err := c.call(ctx, c.node, methodGetOwnedObjects, params, &page); err != nil {
			return nil, apperror.Wrap(err, apperror.CodeObjectQueryFailed, typeTag)
		}
		for i := range page.Data {
			records = append(records, page.Data[i].toDomain())
		}
		if !page.HasNextPage || page.NextCursor == "" {
			return records, nil
		}
		cursor = page.NextCursor
	}
}

// GetObject fetches a single object by id.
func (c *Client) GetObject(ctx context.Context, objectID string) (*domain.ObjectRecord, error) {
	var payload objectPayload
	if err := c.call(ctx, c.node, methodGetObject, []any{objectID}, &payload); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeObjectQueryFailed, objectID)
	}
	record := payload.toDomain()
	return &record, nil
}
