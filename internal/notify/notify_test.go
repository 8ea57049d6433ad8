package notify

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestPublish_DropsWhenChannelFull(t *testing.T) {
	h := NewHub()
	for i := 0; i < cap(h.broadcast); i++ {
		h.Publish(Event{Type: EventBlockIndexed, Height: int32(i)})
	}
	// The channel is now full; one more Publish must not block.
	done := make(chan struct{})
	go func() {
		h.Publish(Event{Type: EventBlockIndexed, Height: 99999})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full channel instead of dropping")
	}
}

func TestSubscribe_ReceivesBroadcastEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHub()
	go h.Run()

	r := gin.New()
	r.GET("/stream", h.Subscribe)
	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	// Give the server a moment to register the connection before publishing.
	deadline := time.Now().Add(2 * time.Second)
	for len(h.clients) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	h.mutex.Lock()
	clientCount := len(h.clients)
	h.mutex.Unlock()
	if clientCount != 1 {
		t.Fatalf("expected 1 registered client, got %d", clientCount)
	}

	want := Event{Type: EventBlockIndexed, Height: 42, BlockHash: "abc", StateHash: "def"}
	h.Publish(want)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got != want {
		t.Errorf("received event = %+v, want %+v", got, want)
	}
}
