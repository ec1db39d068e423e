package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zenith-terminal/zenith/pkg/metrics"
	"github.com/zenith-terminal/zenith/pkg/mockfeed"
	"github.com/zenith-terminal/zenith/pkg/types"
	"github.com/zenith-terminal/zenith/pkg/util"
)

const (
	MessageTypeSnapshot = "snapshot"
	MessageTypeCandle   = "candle"
	MessageTypeUpdate   = "update"

	writeWait = 10 * time.Second
)

// StreamMessage is the stream frame. The first message of a session is a
// snapshot of the whole series; each later message carries a single candle,
// either a newly opened one or an update of the forming one.
type StreamMessage struct {
	Type     string            `json:"type"`
	Session  string            `json:"session"`
	Symbol   string            `json:"symbol"`
	Interval types.Interval    `json:"interval"`
	Candle   *types.Candle     `json:"candle,omitempty"`
	Candles  types.CandleSlice `json:"candles,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,

	// origins are checked by the cors middleware
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (s *Server) stream(c *gin.Context) {
	q, err := s.parseSeriesQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limiter, err := util.ParseRateLimitSyntax(s.Config.StreamRate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	session := uuid.New().String()
	logger := log.WithField("session", session)

	metrics.StreamSessionsMetrics.Inc()
	defer metrics.StreamSessionsMetrics.Dec()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// the read loop only detects the peer going away
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	gen, candles := q.generate(s)
	feed := mockfeed.NewFeed(gen, candles, limiter)
	if s.Config.UpdatesPerCandle > 0 {
		feed.UpdatesPerCandle = s.Config.UpdatesPerCandle
	}

	send := func(msg StreamMessage) {
		msg.Session = session
		msg.Symbol = q.Symbol
		msg.Interval = q.Interval

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			logger.WithError(err).Debug("stream write failed")
			cancel()
			return
		}

		metrics.StreamMessagesMetrics.WithLabelValues(q.Interval.String(), msg.Type).Inc()
	}

	feed.OnCandle(func(candle types.Candle) {
		send(StreamMessage{Type: MessageTypeCandle, Candle: &candle})
	})
	feed.OnUpdate(func(candle types.Candle) {
		send(StreamMessage{Type: MessageTypeUpdate, Candle: &candle})
	})

	logger.Infof("stream started: %s %s", q.Symbol, q.Interval)
	send(StreamMessage{Type: MessageTypeSnapshot, Candles: feed.Candles()})

	err = feed.Run(ctx)
	util.LogErr(ignoreCanceled(err), "stream %s failed", session)

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	logger.Infof("stream closed")
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
