package mockserver

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metricsRegistry struct {
	registry       *prometheus.Registry
	requestsTotal  *prometheus.CounterVec
	walletsTotal   *prometheus.CounterVec
	transfersTotal *prometheus.CounterVec
	activeSessions prometheus.Gauge
}

func newMetricsRegistry() *metricsRegistry {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_backend_requests_total",
		Help: "HTTP requests served, by route template and status code",
	}, []string{"route", "status"})

	wallets := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_backend_wallets_total",
		Help: "Wallets registered, by origin",
	}, []string{"source"})

	transfers := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_backend_transfer_requests_total",
		Help: "Transfer requests filed for manual fulfillment",
	}, []string{"symbol"})

	sessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wallet_backend_active_sessions",
		Help: "Issued tokens that have not been revoked",
	})

	r := prometheus.NewRegistry()
	r.MustRegister(requests, wallets, transfers, sessions)

	return &metricsRegistry{
		registry:       r,
		requestsTotal:  requests,
		walletsTotal:   wallets,
		transfersTotal: transfers,
		activeSessions: sessions,
	}
}

func (m *metricsRegistry) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metricsRegistry) incRequest(route string, status int) {
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func (m *metricsRegistry) incWallet(source string) {
	m.walletsTotal.WithLabelValues(source).Inc()
}

func (m *metricsRegistry) incTransfer(symbol string) {
	m.transfersTotal.WithLabelValues(symbol).Inc()
}

func (m *metricsRegistry) setActiveSessions(n int) {
	m.activeSessions.Set(float64(n))
}
