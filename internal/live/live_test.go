package live

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPoller_TicksIndependently(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int32
	published := make(chan any, 16)
	block := make(chan struct{})

	p := &Poller{
		Interval: 10 * time.Millisecond,
		Fetch: func(ctx context.Context) (any, error) {
			n := atomic.AddInt32(&calls, 1)
			if n == 1 {
				// the first tick hangs; later ticks must still publish
				<-block
			}
			return n, nil
		},
		Publish: func(v any) { published <- v },
	}
	go p.Run(ctx)

	select {
	case v := <-published:
		assert.NotEqual(t, int32(1), v)
	case <-time.After(2 * time.Second):
		t.Fatal("no tick published while the first fetch was blocked")
	}
	close(block)
}

func TestPoller_SkipsErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int32
	published := make(chan any, 16)
	p := &Poller{
		Interval: 5 * time.Millisecond,
		Fetch: func(ctx context.Context) (any, error) {
			if atomic.AddInt32(&calls, 1)%2 == 1 {
				return nil, errors.New("store unavailable")
			}
			return "ok", nil
		},
		Publish: func(v any) { published <- v },
		Log:     zap.NewNop().Sugar(),
	}
	go p.Run(ctx)

	select {
	case v := <-published:
		assert.Equal(t, "ok", v)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a successful tick")
	}
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub(zap.NewNop().Sugar())
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 5*time.Millisecond)

	hub.Broadcast(map[string]float64{"temperature": 21.5})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got map[string]float64
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, 21.5, got["temperature"])
}

func TestHub_SendsLastValueOnConnect(t *testing.T) {
	hub := NewHub(zap.NewNop().Sugar())
	hub.Broadcast(map[string]string{"status": "cached"})

	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got map[string]string
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "cached", got["status"])
}

func TestHub_RemovesClosedClients(t *testing.T) {
	hub := NewHub(zap.NewNop().Sugar())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 5*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 5*time.Millisecond)
}
