// Package server is the development backend of the chart: mock candle
// series over REST, a websocket stream of live candle updates and
// prometheus metrics. No drawing state crosses the wire.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/zenith-terminal/zenith/pkg/metrics"
	"github.com/zenith-terminal/zenith/pkg/util"
)

var log = logrus.WithField("component", "server")

const (
	DefaultBind       = ":8080"
	DefaultSymbol     = "NIFTY"
	DefaultCount      = 300
	MaxCount          = 5000
	DefaultStreamRate = "1+2/1s"

	shutdownTimeout = 5 * time.Second
)

type Config struct {
	Bind   string `json:"bind" yaml:"bind"`
	Symbol string `json:"symbol" yaml:"symbol"`

	// StreamRate paces stream updates, e.g. "1+2/1s" for a burst of one and
	// two updates per second.
	StreamRate string `json:"streamRate" yaml:"streamRate"`

	// UpdatesPerCandle is the number of stream updates after which a new
	// candle opens.
	UpdatesPerCandle int `json:"updatesPerCandle" yaml:"updatesPerCandle"`

	AllowOrigins []string `json:"allowOrigins" yaml:"allowOrigins"`
}

func (c *Config) setDefaults() {
	if c.Bind == "" {
		c.Bind = DefaultBind
	}
	if c.Symbol == "" {
		c.Symbol = DefaultSymbol
	}
	if c.StreamRate == "" {
		c.StreamRate = DefaultStreamRate
	}
	if len(c.AllowOrigins) == 0 {
		c.AllowOrigins = []string{"*"}
	}
}

type Server struct {
	Config Config

	// now is the end time of generated series
	now func() time.Time
}

// New validates the config and returns a server with the defaults applied.
func New(config Config) (*Server, error) {
	config.setDefaults()
	if _, err := util.ParseRateLimitSyntax(config.StreamRate); err != nil {
		return nil, err
	}

	return &Server{Config: config, now: time.Now}, nil
}

// Router builds the gin engine with every route.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestMetrics(), requestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.Config.AllowOrigins,
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowMethods:     []string{"GET"},
		AllowWebSockets:  true,
		AllowCredentials: !allowsAll(s.Config.AllowOrigins),
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/api/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.GET("/api/intervals", s.listIntervals)
	r.GET("/api/candles", s.queryCandles)
	r.GET("/api/stream", s.stream)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// Run serves until ctx is done, then shuts the listener down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Config.Bind,
		Handler: s.Router(),
	}

	errC := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", s.Config.Bind)
		errC <- srv.ListenAndServe()
	}()

	select {
	case err := <-errC:
		return err

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}

		if err := <-errC; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func allowsAll(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsMetrics.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Inc()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Debug("request")
	}
}
