package ws

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobad-insights/internal/pipeline"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	hub := NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(NewHandler(hub, logger))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestPipelineObserverBroadcastsEvents(t *testing.T) {
	hub, srv := startHub(t)
	a := dial(t, srv)
	b := dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	PipelineObserver{Hub: hub}.OnEvent(pipeline.Event{
		RunID:  "run-1",
		Stage:  pipeline.StageDedup,
		Status: pipeline.StatusFinished,
		Rows:   42,
	})

	for _, conn := range []*websocket.Conn{a, b} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg PipelineMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, EventTypePipeline, msg.Type)
		assert.Equal(t, "run-1", msg.Event.RunID)
		assert.Equal(t, pipeline.StageDedup, msg.Event.Stage)
		assert.Equal(t, 42, msg.Event.Rows)
	}
}

func TestHubForgetsClosedClients(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestNilHubIsInert(t *testing.T) {
	var hub *Hub
	hub.Broadcast([]byte("x"))
	assert.Equal(t, 0, hub.ClientCount())
	PipelineObserver{}.OnEvent(pipeline.Event{})
}
