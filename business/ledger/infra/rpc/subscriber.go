package rpc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fd1az/yieldsplit/business/ledger/domain"
	"github.com/fd1az/yieldsplit/internal/logger"
	"github.com/fd1az/yieldsplit/internal/wsconn"
)

const methodSubscribeCheckpoints = "ledger_subscribeCheckpoints"

// checkpointNotification is the push message shape for checkpoint events.
type checkpointNotification struct {
	Method string `json:"method"`
	Params struct {
		Result checkpointPayload `json:"result"`
	} `json:"params"`
}

// Subscriber streams finalized checkpoints over the node's websocket API.
// It implements app.CheckpointStream.
type Subscriber struct {
	conn *wsconn.Client
	log  logger.LoggerInterface
	out  chan domain.Checkpoint
}

// NewSubscriber creates a checkpoint subscriber for the given websocket URL.
// The subscription request rides the connection's OnConnect hook so a
// reconnected socket re-subscribes instead of going silent.
func NewSubscriber(wsURL string, log logger.LoggerInterface) *Subscriber {
	s := &Subscriber{
		log: log,
		out: make(chan domain.Checkpoint, 16),
	}
	cfg := wsconn.DefaultConfig(wsURL)
	cfg.OnConnect = s.sendSubscribe
	s.conn = wsconn.New(cfg)
	return s
}

// sendSubscribe issues the checkpoint subscription on the current connection.
func (s *Subscriber) sendSubscribe(ctx context.Context) error {
	sub := rpcRequest{JSONRPC: "2.0", ID: 1, Method: methodSubscribeCheckpoints, Params: []any{}}
	raw, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	sendCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.conn.Send(sendCtx, raw)
}

// Subscribe connects, issues the subscription request and starts forwarding
// checkpoints. The returned channel closes when ctx is cancelled or the
// connection shuts down.
func (s *Subscriber) Subscribe(ctx context.Context) (<-chan domain.Checkpoint, error) {
	if err := s.conn.Connect(ctx); err != nil {
		return nil, err
	}

	go s.forward(ctx)
	return s.out, nil
}

func (s *Subscriber) forward(ctx context.Context) {
	defer close(s.out)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-s.conn.Messages():
			if !ok {
				return
			}
			var note checkpointNotification
			if err := json.Unmarshal(msg, &note); err != nil {
				s.log.Debug(ctx, "dropping unparseable checkpoint message", "error", err)
				continue
			}
			if note.Method == "" {
				// Subscription confirmation response, not a push.
				continue
			}
			cp := domain.Checkpoint{
				Sequence:    note.Params.Result.Sequence,
				Digest:      note.Params.Result.Digest,
				TimestampMs: note.Params.Result.TimestampMs,
			}
			select {
			case s.out <- cp:
			default:
				// Consumers only care about the latest state change signal.
			}
		}
	}
}

// Close terminates the websocket connection.
func (s *Subscriber) Close() error {
	return s.conn.Close()
}
