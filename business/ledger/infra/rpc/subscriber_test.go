package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
)

type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, msg string, args ...any)              {}
func (mockLogger) Info(ctx context.Context, msg string, args ...any)               {}
func (mockLogger) Warn(ctx context.Context, msg string, args ...any)               {}
func (mockLogger) Error(ctx context.Context, msg string, args ...any)              {}
func (mockLogger) Debugc(ctx context.Context, caller int, msg string, args ...any) {}
func (mockLogger) Infoc(ctx context.Context, caller int, msg string, args ...any)  {}
func (mockLogger) Warnc(ctx context.Context, caller int, msg string, args ...any)  {}
func (mockLogger) Errorc(ctx context.Context, caller int, msg string, args ...any) {}

// The node drops the first connection after one checkpoint. The subscriber
// must re-issue the subscription on the new connection, otherwise the feed
// stays silent forever while the socket reports connected.
func TestSubscribeResumesAfterReconnect(t *testing.T) {
	var mu sync.Mutex
	conns := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			t.Errorf("failed to accept websocket: %v", err)
			return
		}

		mu.Lock()
		conns++
		n := conns
		mu.Unlock()

		ctx := context.Background()
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var req rpcRequest
		if err := json.Unmarshal(data, &req); err != nil || req.Method != methodSubscribeCheckpoints {
			t.Errorf("connection %d: expected subscription request, got %s", n, data)
			return
		}

		note := fmt.Sprintf(
			`{"method":%q,"params":{"result":{"sequenceNumber":%d,"digest":"0xcp%d","timestampMs":1000}}}`,
			methodSubscribeCheckpoints, n, n)
		if err := conn.Write(ctx, websocket.MessageText, []byte(note)); err != nil {
			return
		}

		if n == 1 {
			conn.Close(websocket.StatusGoingAway, "restarting")
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "")
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	s := NewSubscriber(wsURL, mockLogger{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	checkpoints, err := s.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer s.Close()

	var seqs []uint64
	for i := 0; i < 2; i++ {
		select {
		case cp := <-checkpoints:
			seqs = append(seqs, cp.Sequence)
		case <-time.After(8 * time.Second):
			t.Fatalf("checkpoint %d never arrived (got %v)", i+1, seqs)
		}
	}
	if seqs[0] != 1 || seqs[1] != 2 {
		t.Errorf("expected checkpoints from both connections, got %v", seqs)
	}
}
