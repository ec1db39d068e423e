// Package streamclient consumes the candle stream of the dev server and keeps
// a local copy of the series, reconnecting when the connection drops.
package streamclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/zenith-terminal/zenith/pkg/server"
	"github.com/zenith-terminal/zenith/pkg/types"
	"github.com/zenith-terminal/zenith/pkg/util"
	utilbackoff "github.com/zenith-terminal/zenith/pkg/util/backoff"
)

var log = logrus.WithField("component", "streamclient")

const (
	DefaultReadTimeout = 30 * time.Second
	DefaultMinBackoff  = 2 * time.Second
)

var ErrConnectionLost = errors.New("connection lost")

// MaxReconnectRate caps how often a dropped stream is dialed again.
var MaxReconnectRate = rate.Limit(1 / DefaultMinBackoff.Seconds())

// Query selects the series to stream.
type Query struct {
	Symbol   string
	Interval types.Interval
	Count    int
	Seed     int64
}

// Client keeps the streamed series. Candles may be read from any goroutine
// while Run is active; callbacks are called from the Run goroutine.
//
//go:generate callbackgen -type Client
type Client struct {
	// URL is the stream location, starting with ws:// or wss://
	URL string

	Dialer      *websocket.Dialer
	ReadTimeout time.Duration

	// NewBackOff returns the policy used while the stream is unreachable.
	NewBackOff func() backoff.BackOff

	limiter *rate.Limiter

	mu      sync.Mutex
	session string
	candles types.CandleSlice

	connectCallbacks    []func(session string)
	disconnectCallbacks []func(err error)
	snapshotCallbacks   []func(candles types.CandleSlice)
	candleCallbacks     []func(candle types.Candle)
	updateCallbacks     []func(candle types.Candle)
}

// New returns a client of the stream served at baseURL, e.g.
// http://localhost:8080.
func New(baseURL string, q Query) (*Client, error) {
	u, err := StreamURL(baseURL, q)
	if err != nil {
		return nil, err
	}

	limiter, err := util.NewValidLimiter(MaxReconnectRate, 1)
	if err != nil {
		return nil, err
	}

	return &Client{
		URL:         u,
		Dialer:      websocket.DefaultDialer,
		ReadTimeout: DefaultReadTimeout,
		NewBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
		limiter: limiter,
	}, nil
}

// StreamURL builds the websocket url of the stream endpoint.
func StreamURL(baseURL string, q Query) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", errors.Wrapf(err, "invalid base url %s", baseURL)
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	u.Path += "/api/stream"

	values := url.Values{}
	if q.Symbol != "" {
		values.Set("symbol", q.Symbol)
	}
	if q.Interval != "" {
		values.Set("interval", q.Interval.String())
	}
	if q.Count > 0 {
		values.Set("count", strconv.Itoa(q.Count))
	}
	if q.Seed != 0 {
		values.Set("seed", strconv.FormatInt(q.Seed, 10))
	}
	u.RawQuery = values.Encode()

	return u.String(), nil
}

// Session returns the id of the current stream session.
func (c *Client) Session() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Candles returns a copy of the local series.
func (c *Client) Candles() types.CandleSlice {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(types.CandleSlice, len(c.candles))
	copy(out, c.candles)
	return out
}

// Run connects and reads the stream until ctx is done, reconnecting after
// read failures. Each connection starts with a fresh snapshot.
func (c *Client) Run(ctx context.Context) error {
	for {
		conn, err := c.dial(ctx)
		if err != nil {
			return err
		}

		err = c.read(ctx, conn)
		_ = conn.Close()
		c.EmitDisconnect(err)

		if ctx.Err() != nil {
			return ctx.Err()
		}

		log.WithError(err).Warnf("stream %s dropped, reconnecting", c.URL)
		if err := c.limiter.Wait(ctx); err != nil {
			return ctx.Err()
		}
	}
}

func (c *Client) dial(ctx context.Context) (conn *websocket.Conn, err error) {
	op := func() error {
		var resp *http.Response
		conn, resp, err = c.Dialer.DialContext(ctx, c.URL, nil)
		if err != nil {
			// a rejected query will not succeed on retry
			if resp != nil && resp.StatusCode == http.StatusBadRequest {
				return backoff.Permanent(fmt.Errorf("stream rejected: %s", resp.Status))
			}
			return err
		}
		return nil
	}

	notify := func(err error, d time.Duration) {
		log.WithError(err).Warnf("failed to dial %s, retrying in %s", c.URL, d)
	}

	if err := utilbackoff.RetryWith(ctx, c.NewBackOff(), op, notify); err != nil {
		return nil, err
	}

	return conn, nil
}

func (c *Client) read(ctx context.Context, conn *websocket.Conn) error {
	// unblock the reader when ctx is done
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	conn.SetPingHandler(func(message string) error {
		if err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second)); err != nil {
			return err
		}
		return conn.SetReadDeadline(time.Now().Add(c.ReadTimeout))
	})

	for {
		if err := conn.SetReadDeadline(time.Now().Add(c.ReadTimeout)); err != nil {
			return err
		}

		var msg server.StreamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return ErrConnectionLost
			}
			return err
		}

		c.apply(msg)
	}
}

// apply merges a stream message into the local series and emits the
// matching callback.
func (c *Client) apply(msg server.StreamMessage) {
	switch msg.Type {
	case server.MessageTypeSnapshot:
		c.mu.Lock()
		first := c.session != msg.Session
		c.session = msg.Session
		c.candles = append(types.CandleSlice(nil), msg.Candles...)
		c.mu.Unlock()

		if first {
			c.EmitConnect(msg.Session)
		}
		c.EmitSnapshot(msg.Candles)

	case server.MessageTypeCandle, server.MessageTypeUpdate:
		if msg.Candle == nil {
			return
		}

		candle := *msg.Candle
		c.mu.Lock()
		n := len(c.candles)
		switch {
		case n > 0 && c.candles[n-1].Time == candle.Time:
			c.candles[n-1] = candle
		case n == 0 || c.candles[n-1].Time < candle.Time:
			c.candles = append(c.candles, candle)
		default:
			// stale candle from before the snapshot
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()

		if msg.Type == server.MessageTypeCandle {
			c.EmitCandle(candle)
		} else {
			c.EmitUpdate(candle)
		}

	default:
		log.Warnf("unknown stream message type %q", msg.Type)
	}
}
