package push_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/RodCaba/fp-orchestrator/wire"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{}

// pushStub is an in-process push endpoint. Accepted connections are exposed
// on a channel so tests can write frames or force closes on them.
type pushStub struct {
	*httptest.Server

	mu    sync.Mutex
	conns []*websocket.Conn

	accepted chan *websocket.Conn
}

func newPushStub(t *testing.T) *pushStub {
	s := &pushStub{accepted: make(chan *websocket.Conn, 8)}
	s.Server = httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/ws" {
				http.NotFound(w, r)
				return
			}
			conn, err := upgrader.Upgrade(w, r, nil)
			if err != nil {
				return
			}

			s.mu.Lock()
			s.conns = append(s.conns, conn)
			s.mu.Unlock()

			s.accepted <- conn
		},
	))
	t.Cleanup(s.close)
	return s
}

func (s *pushStub) accept(t *testing.T) *websocket.Conn {
	t.Helper()
	return recv(t, s.accepted)
}

func (s *pushStub) send(t *testing.T, conn *websocket.Conn, event wire.Event) {
	t.Helper()
	frame, err := wire.Encode(event)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, frame))
}

func (s *pushStub) close() {
	s.mu.Lock()
	for _, conn := range s.conns {
		_ = conn.Close()
	}
	s.conns = nil
	s.mu.Unlock()
	s.Server.Close()
}

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for value")
		panic("unreachable")
	}
}
