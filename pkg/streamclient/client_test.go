package streamclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/zenith-terminal/zenith/pkg/server"
	"github.com/zenith-terminal/zenith/pkg/types"
)

func TestStreamURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		query   Query
		want    string
		wantErr bool
	}{
		{
			name:    "http",
			baseURL: "http://localhost:8080",
			query:   Query{Symbol: "NIFTY", Interval: types.Interval5m, Count: 50, Seed: 7},
			want:    "ws://localhost:8080/api/stream?count=50&interval=5m&seed=7&symbol=NIFTY",
		},
		{
			name:    "https with trailing slash",
			baseURL: "https://example.com/chart/",
			query:   Query{Interval: types.Interval1h},
			want:    "wss://example.com/chart/api/stream?interval=1h",
		},
		{
			name:    "unsupported scheme",
			baseURL: "ftp://example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StreamURL(tt.baseURL, tt.query)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_apply(t *testing.T) {
	c, err := New("http://localhost:8080", Query{})
	require.NoError(t, err)

	var connects, snapshots, candles, updates int
	c.OnConnect(func(string) { connects++ })
	c.OnSnapshot(func(types.CandleSlice) { snapshots++ })
	c.OnCandle(func(types.Candle) { candles++ })
	c.OnUpdate(func(types.Candle) { updates++ })

	c.apply(server.StreamMessage{
		Type:    server.MessageTypeSnapshot,
		Session: "a",
		Candles: types.CandleSlice{
			{Time: 60, Open: 1, High: 2, Low: 0.5, Close: 1.5},
			{Time: 120, Open: 1.5, High: 2, Low: 1, Close: 1.8},
		},
	})
	assert.Equal(t, "a", c.Session())
	assert.Len(t, c.Candles(), 2)

	c.apply(server.StreamMessage{Type: server.MessageTypeUpdate, Candle: &types.Candle{Time: 120, Open: 1.5, High: 2.5, Low: 1, Close: 2.4}})
	c.apply(server.StreamMessage{Type: server.MessageTypeCandle, Candle: &types.Candle{Time: 180, Open: 2.4, High: 2.6, Low: 2.2, Close: 2.5}})

	got := c.Candles()
	require.Len(t, got, 3)
	assert.Equal(t, 2.4, got[1].Close)
	assert.Equal(t, int64(180), got[2].Time)

	// stale and empty frames are dropped
	c.apply(server.StreamMessage{Type: server.MessageTypeUpdate, Candle: &types.Candle{Time: 60, Close: 9}})
	c.apply(server.StreamMessage{Type: server.MessageTypeCandle})
	c.apply(server.StreamMessage{Type: "bogus"})
	assert.Equal(t, 1.5, c.Candles()[0].Close)

	// a repeated snapshot of the same session is not a new connection
	c.apply(server.StreamMessage{Type: server.MessageTypeSnapshot, Session: "a", Candles: got[:1]})
	assert.Len(t, c.Candles(), 1)

	assert.Equal(t, 1, connects)
	assert.Equal(t, 2, snapshots)
	assert.Equal(t, 1, candles)
	assert.Equal(t, 1, updates)
}

func TestClient_Run(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s, err := server.New(server.Config{StreamRate: "1+100/1s", UpdatesPerCandle: 2})
	require.NoError(t, err)

	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	c, err := New(ts.URL, Query{Symbol: "NIFTY", Interval: types.Interval1m, Count: 10, Seed: 1})
	require.NoError(t, err)

	snapshot := make(chan types.CandleSlice, 1)
	candle := make(chan types.Candle, 8)
	c.OnSnapshot(func(candles types.CandleSlice) { snapshot <- candles })
	c.OnCandle(func(k types.Candle) { candle <- k })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- c.Run(ctx) }()

	var first types.CandleSlice
	select {
	case first = <-snapshot:
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot")
	}
	require.Len(t, first, 10)

	last, ok := first.Last()
	require.True(t, ok)

	select {
	case k := <-candle:
		assert.Equal(t, last.Time+60, k.Time)
	case <-time.After(5 * time.Second):
		t.Fatal("no candle")
	}

	assert.NotEmpty(t, c.Session())
	assert.GreaterOrEqual(t, len(c.Candles()), 11)

	cancel()
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestClient_RunRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s, err := server.New(server.Config{})
	require.NoError(t, err)

	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	c, err := New(ts.URL, Query{Interval: "7x"})
	require.NoError(t, err)

	err = c.Run(context.Background())
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "stream rejected")
	}
}

func TestClient_Reconnect(t *testing.T) {
	upgrader := websocket.Upgrader{}

	var sessions int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		n := atomic.AddInt32(&sessions, 1)
		_ = conn.WriteJSON(server.StreamMessage{
			Type:    server.MessageTypeSnapshot,
			Session: string(rune('a' + n - 1)),
			Candles: types.CandleSlice{{Time: 60 * int64(n), Open: 1, High: 1, Low: 1, Close: 1}},
		})
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	}))
	defer ts.Close()

	c, err := New(ts.URL, Query{})
	require.NoError(t, err)
	c.limiter = rate.NewLimiter(rate.Inf, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var connected []string
	var disconnects int
	c.OnConnect(func(session string) {
		connected = append(connected, session)
		if len(connected) == 2 {
			cancel()
		}
	})
	c.OnDisconnect(func(err error) { disconnects++ })

	err = c.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"a", "b"}, connected)
	assert.Equal(t, 2, disconnects)
	assert.Equal(t, int64(120), c.Candles()[0].Time)
}
