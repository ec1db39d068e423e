package metrics

import "github.com/prometheus/client_golang/prometheus"

var HTTPRequestsMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "zenith_http_requests_total",
		Help: "http requests by route and status",
	}, []string{"method", "route", "status"})

var CandlesServedMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "zenith_candles_served_total",
		Help: "candles returned by the candles endpoint",
	}, []string{"symbol", "interval"})

var StreamSessionsMetrics = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "zenith_stream_sessions",
		Help: "open candle stream sessions",
	})

var StreamMessagesMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "zenith_stream_messages_total",
		Help: "messages written to candle streams",
	}, []string{"interval", "type"})

func init() {
	prometheus.MustRegister(
		HTTPRequestsMetrics,
		CandlesServedMetrics,
		StreamSessionsMetrics,
		StreamMessagesMetrics,
	)
}
