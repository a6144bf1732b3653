package ws

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Temutjin2k/mileage-report/pkg/logger"
	"github.com/fortytw2/leaktest"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

func newTestHub(t *testing.T) (*ConnectionHub, *httptest.Server) {
	t.Helper()

	hub := NewConnHub(logger.NewWithWriter(io.Discard, "test", logger.LevelError))
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn := NewConn(context.Background(), uuid.New(), raw)
		if err := hub.Add(conn); err != nil {
			_ = raw.Close()
			return
		}
		go func() {
			_ = conn.Listen(func([]byte) error { return nil })
			_ = hub.Delete(conn.ID())
		}()
	}))

	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return c
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestConnectionHub_Broadcast(t *testing.T) {
	defer leaktest.Check(t)()

	hub, srv := newTestHub(t)
	defer srv.Close()

	a, b := dial(t, srv), dial(t, srv)
	defer a.Close()
	defer b.Close()

	waitFor(t, func() bool { return hub.Len() == 2 })

	if n := hub.Broadcast(context.Background(), map[string]any{"type": "report_generated"}); n != 2 {
		t.Fatalf("delivered to %d clients, want 2", n)
	}

	for _, c := range []*websocket.Conn{a, b} {
		_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := c.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var got map[string]any
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatal(err)
		}
		if got["type"] != "report_generated" {
			t.Fatalf("unexpected message %v", got)
		}
	}

	hub.Close()
	if hub.Len() != 0 {
		t.Fatalf("hub still holds %d clients", hub.Len())
	}
}

func TestConnectionHub_ClientGone(t *testing.T) {
	defer leaktest.Check(t)()

	hub, srv := newTestHub(t)
	defer srv.Close()

	c := dial(t, srv)
	waitFor(t, func() bool { return hub.Len() == 1 })

	_ = c.Close()
	waitFor(t, func() bool { return hub.Len() == 0 })

	if n := hub.Broadcast(context.Background(), "ignored"); n != 0 {
		t.Fatalf("delivered to %d clients after disconnect", n)
	}
}

func TestConnectionHub_SendToUnknown(t *testing.T) {
	hub := NewConnHub(logger.NewWithWriter(io.Discard, "test", logger.LevelError))

	if err := hub.SendTo(uuid.New(), "x"); err != ErrConnIsNotFound {
		t.Fatalf("got %v, want ErrConnIsNotFound", err)
	}
	if err := hub.Add(nil); err != ErrEmptyConn {
		t.Fatalf("got %v, want ErrEmptyConn", err)
	}
}
