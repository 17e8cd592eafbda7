package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"todo_webapp/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestPublishDropsSlowClient(t *testing.T) {
	hub := NewHub()
	slow := &Client{Send: make(chan []byte, 1), Hub: hub}
	hub.Register(slow)

	hub.Publish(domain.TodoEvent{Type: domain.EventDeleted, ID: 1})
	if hub.Count() != 1 {
		t.Fatalf("client dropped too early")
	}
	hub.Publish(domain.TodoEvent{Type: domain.EventDeleted, ID: 2})
	if hub.Count() != 0 {
		t.Fatalf("slow client should have been dropped")
	}

	// the buffered event is still readable and then the channel is closed
	if _, ok := <-slow.Send; !ok {
		t.Fatalf("expected buffered event")
	}
	if _, ok := <-slow.Send; ok {
		t.Fatalf("expected closed send channel")
	}

	// unregistering twice must not panic
	hub.Unregister(slow)
}

func dial(t *testing.T, srvURL string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srvURL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func readType(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return m
}

func TestHandleWSBroadcastsEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	r := gin.New()
	r.GET("/ws", HandleWS(hub, ""))
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := dial(t, srv.URL)
	defer conn.Close()

	if m := readType(t, conn); m["type"] != MsgReady {
		t.Fatalf("expected ready, got %v", m)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	if m := readType(t, conn); m["type"] != MsgPong {
		t.Fatalf("expected pong, got %v", m)
	}

	todo := &domain.Todo{ID: 5, Title: "Buy milk"}
	hub.Publish(domain.TodoEvent{Type: domain.EventCreated, ID: 5, Todo: todo})

	m := readType(t, conn)
	if m["type"] != domain.EventCreated || m["id"] != float64(5) {
		t.Fatalf("unexpected event: %v", m)
	}
	body, ok := m["todo"].(map[string]any)
	if !ok || body["title"] != "Buy milk" {
		t.Fatalf("event should carry the todo: %v", m)
	}
}

func TestControlMessage(t *testing.T) {
	if got := string(controlMessage(MsgPong)); got != `{"type":"pong"}` {
		t.Fatalf("pong message = %s", got)
	}
}

func TestHandleWSUnregistersOnDisconnect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	r := gin.New()
	r.GET("/ws", HandleWS(hub, ""))
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := dial(t, srv.URL)
	readType(t, conn)
	if hub.Count() != 1 {
		t.Fatalf("expected 1 client, got %d", hub.Count())
	}
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Count() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client still registered after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHandleWSRejectsForeignOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", HandleWS(NewHub(), "https://todo.example"))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	header := map[string][]string{"Origin": {"https://evil.example"}}
	if _, _, err := websocket.DefaultDialer.Dial(url, header); err == nil {
		t.Fatalf("expected handshake to fail for foreign origin")
	}
}
