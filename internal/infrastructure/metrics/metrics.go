package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Metrics holds the service's prometheus collectors.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ChatTurnsTotal  *prometheus.CounterVec
	TokensConsumed  *prometheus.CounterVec
	registry        *prometheus.Registry
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "therapy_api_http_requests_total",
			Help: "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "therapy_api_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		ChatTurnsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "therapy_api_chat_turns_total",
			Help: "Submitted chat turns by outcome.",
		}, []string{"outcome"}),
		TokensConsumed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "therapy_api_tokens_consumed_total",
			Help: "Provider-reported tokens by kind and model.",
		}, []string{"kind", "model"}),
		registry: registry,
	}
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, fmt.Sprintf("%d", status)).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveChatTurn records one chat turn and its token usage.
func (m *Metrics) ObserveChatTurn(outcome, model string, promptTokens, completionTokens int) {
	m.ChatTurnsTotal.WithLabelValues(outcome).Inc()
	if promptTokens > 0 {
		m.TokensConsumed.WithLabelValues("prompt", model).Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		m.TokensConsumed.WithLabelValues("completion", model).Add(float64(completionTokens))
	}
}

// Serve exposes /metrics on its own port so the scrape surface stays off
// the public listener.
func (m *Metrics) Serve(port int, logger zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server stopped")
		}
	}()
	return srv
}
