package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T, cfg HubConfig) (*Hub, *httptest.Server, context.CancelFunc) {
	t.Helper()
	hub := NewHub(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	require.Eventually(t, func() bool { return atomic.LoadInt32(&hub.running) == 1 }, time.Second, 5*time.Millisecond)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeWS(w, r)
	}))
	t.Cleanup(srv.Close)
	return hub, srv, cancel
}

func dial(t *testing.T, srv *httptest.Server, header http.Header) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubBroadcastsEvents(t *testing.T) {
	var observed int64
	hub, srv, cancel := startHub(t, HubConfig{OnClientCount: func(n int) { atomic.StoreInt64(&observed, int64(n)) }})
	defer cancel()

	a := dial(t, srv, nil)
	b := dial(t, srv, nil)
	require.Eventually(t, func() bool { return hub.Clients() == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(2), atomic.LoadInt64(&observed))

	hub.Publish("toast.shown", map[string]string{"title": "Email sent"})

	for _, conn := range []*websocket.Conn{a, b} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)
		var evt struct {
			Topic   string            `json:"topic"`
			Payload map[string]string `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(raw, &evt))
		assert.Equal(t, "toast.shown", evt.Topic)
		assert.Equal(t, "Email sent", evt.Payload["title"])
	}
}

func TestHubUnregistersClosedClients(t *testing.T) {
	hub, srv, cancel := startHub(t, HubConfig{})
	defer cancel()

	conn := dial(t, srv, nil)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestHubRejectsUnknownOrigin(t *testing.T) {
	_, srv, cancel := startHub(t, HubConfig{AllowedOrigins: []string{"https://dashboard.example"}})
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{"https://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	dial(t, srv, http.Header{"Origin": []string{"https://dashboard.example"}})
}

func TestPublishWithoutRunIsDropped(t *testing.T) {
	hub := NewHub(HubConfig{})
	assert.NotPanics(t, func() { hub.Publish("note.added", nil) })
	assert.Empty(t, hub.broadcast)

	var nilHub *Hub
	assert.NotPanics(t, func() { nilHub.Publish("note.added", nil) })
}

func TestServeAfterStopFails(t *testing.T) {
	hub, srv, cancel := startHub(t, HubConfig{})
	cancel()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&hub.running) == 0 }, time.Second, 5*time.Millisecond)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		defer conn.Close()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, _, err = conn.ReadMessage()
	}
	assert.Error(t, err)
}
