package wsconn

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
)

// mockWSServer starts a test server that upgrades every request to a
// WebSocket and hands the connection to handler.
func mockWSServer(t *testing.T, handler func(conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			t.Errorf("failed to accept websocket: %v", err)
			return
		}
		handler(conn)
	}))
}

// holdOpen blocks on reads until the peer closes the connection.
func holdOpen(conn *websocket.Conn) {
	ctx := context.Background()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return
		}
	}
}

func wsURLOf(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestClientConnectSuccess(t *testing.T) {
	server := mockWSServer(t, func(conn *websocket.Conn) {
		defer conn.Close(websocket.StatusNormalClosure, "")
		holdOpen(conn)
	})
	defer server.Close()

	client := New(DefaultConfig(wsURLOf(server)))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		t.Fatalf("expected successful connect, got %v", err)
	}
	defer client.Close()

	if state := client.State(); state != StateConnected {
		t.Errorf("expected state %s, got %s", StateConnected, state)
	}
}

func TestClientConnectFailure(t *testing.T) {
	client := New(DefaultConfig("ws://localhost:59999"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Connect(ctx); err == nil {
		t.Fatal("expected connect error for unreachable endpoint")
	}
	if state := client.State(); state != StateDisconnected {
		t.Errorf("expected state %s, got %s", StateDisconnected, state)
	}
}

func TestClientConnectFailsWhenHandshakeFails(t *testing.T) {
	server := mockWSServer(t, func(conn *websocket.Conn) {
		defer conn.Close(websocket.StatusNormalClosure, "")
		holdOpen(conn)
	})
	defer server.Close()

	cfg := DefaultConfig(wsURLOf(server))
	cfg.OnConnect = func(ctx context.Context) error {
		return errors.New("handshake rejected")
	}
	client := New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Connect(ctx); err == nil {
		t.Fatal("expected connect to surface the handshake error")
	}
	if state := client.State(); state != StateDisconnected {
		t.Errorf("expected state %s, got %s", StateDisconnected, state)
	}
}

func TestClientSend(t *testing.T) {
	var mu sync.Mutex
	var received []byte

	server := mockWSServer(t, func(conn *websocket.Conn) {
		defer conn.Close(websocket.StatusNormalClosure, "")
		_, data, err := conn.Read(context.Background())
		if err != nil {
			return
		}
		mu.Lock()
		received = data
		mu.Unlock()
		holdOpen(conn)
	})
	defer server.Close()

	client := New(DefaultConfig(wsURLOf(server)))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer client.Close()

	if err := client.Send(ctx, []byte(`{"id":1}`)); err != nil {
		t.Fatalf("failed to send: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		mu.Lock()
		got := string(received)
		mu.Unlock()
		if got == `{"id":1}` {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never received the frame, got %q", got)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestClientReceivesMessages(t *testing.T) {
	server := mockWSServer(t, func(conn *websocket.Conn) {
		defer conn.Close(websocket.StatusNormalClosure, "")
		if err := conn.Write(context.Background(), websocket.MessageText, []byte("checkpoint")); err != nil {
			return
		}
		holdOpen(conn)
	})
	defer server.Close()

	client := New(DefaultConfig(wsURLOf(server)))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer client.Close()

	select {
	case msg := <-client.Messages():
		if string(msg) != "checkpoint" {
			t.Errorf("expected checkpoint message, got %q", msg)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no message received")
	}
}

// The server drops the first connection right after the handshake frame.
// The client must redial and run OnConnect again, so the handshake arrives
// on the second connection too.
func TestOnConnectRunsAfterReconnect(t *testing.T) {
	var mu sync.Mutex
	conns := 0
	frames := make(chan string, 4)

	server := mockWSServer(t, func(conn *websocket.Conn) {
		mu.Lock()
		conns++
		n := conns
		mu.Unlock()

		_, data, err := conn.Read(context.Background())
		if err != nil {
			return
		}
		frames <- string(data)

		if n == 1 {
			conn.Close(websocket.StatusGoingAway, "restarting")
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "")
		holdOpen(conn)
	})
	defer server.Close()

	cfg := DefaultConfig(wsURLOf(server))
	cfg.InitialBackoff = 10 * time.Millisecond
	cfg.MaxBackoff = 50 * time.Millisecond

	var client *Client
	cfg.OnConnect = func(ctx context.Context) error {
		return client.Send(ctx, []byte(`{"method":"subscribe"}`))
	}
	client = New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer client.Close()

	for i := 0; i < 2; i++ {
		select {
		case frame := <-frames:
			if frame != `{"method":"subscribe"}` {
				t.Errorf("connection %d: unexpected handshake frame %q", i+1, frame)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("handshake frame never arrived on connection %d", i+1)
		}
	}
}
