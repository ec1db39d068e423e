package server

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zenith-terminal/zenith/pkg/metrics"
	"github.com/zenith-terminal/zenith/pkg/mockfeed"
	"github.com/zenith-terminal/zenith/pkg/types"
)

type intervalInfo struct {
	Interval types.Interval `json:"interval"`
	Seconds  int64          `json:"seconds"`
}

func (s *Server) listIntervals(c *gin.Context) {
	var intervals []intervalInfo
	for i, sec := range types.SupportedIntervals {
		intervals = append(intervals, intervalInfo{Interval: i, Seconds: sec})
	}

	sort.Slice(intervals, func(a, b int) bool {
		return intervals[a].Seconds < intervals[b].Seconds
	})

	c.JSON(http.StatusOK, gin.H{"intervals": intervals})
}

// seriesQuery is the query shared by the candles and stream endpoints.
type seriesQuery struct {
	Symbol   string
	Interval types.Interval
	Count    int
	Seed     int64
}

func (s *Server) parseSeriesQuery(c *gin.Context) (q seriesQuery, err error) {
	q.Symbol = c.DefaultQuery("symbol", s.Config.Symbol)

	q.Interval, err = types.ParseInterval(c.DefaultQuery("interval", string(types.Interval5m)))
	if err != nil {
		return q, err
	}

	q.Count, err = strconv.Atoi(c.DefaultQuery("count", strconv.Itoa(DefaultCount)))
	if err != nil || q.Count <= 0 || q.Count > MaxCount {
		return q, fmt.Errorf("count must be an integer between 1 and %d", MaxCount)
	}

	q.Seed = s.now().UnixNano()
	if seed := c.Query("seed"); seed != "" {
		q.Seed, err = strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return q, fmt.Errorf("invalid seed %q", seed)
		}
	}

	return q, nil
}

func (q seriesQuery) generate(s *Server) (*mockfeed.Generator, types.CandleSlice) {
	gen := mockfeed.NewGenerator(q.Interval, q.Seed)
	return gen, gen.Series(q.Count, s.now())
}

func (s *Server) queryCandles(c *gin.Context) {
	q, err := s.parseSeriesQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, candles := q.generate(s)
	metrics.CandlesServedMetrics.WithLabelValues(q.Symbol, q.Interval.String()).Add(float64(len(candles)))

	c.JSON(http.StatusOK, gin.H{
		"symbol":   q.Symbol,
		"interval": q.Interval,
		"candles":  candles,
	})
}
