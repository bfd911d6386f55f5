package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wallet"

type Metrics struct {
	// HTTP Metrics (checkout server)
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Top-up Metrics
	TopUpAttemptsTotal   *prometheus.CounterVec
	TopUpStageDuration   *prometheus.HistogramVec
	TopUpsInFlight       prometheus.Gauge
	GatewayScriptLoads   *prometheus.CounterVec
	ConfirmedBalance     prometheus.Gauge
	CheckoutSessionsOpen prometheus.Gauge

	// Wallet API Metrics
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	StoreFetchTotal    *prometheus.CounterVec

	// Validation Metrics
	ValidationErrors *prometheus.CounterVec

	// System Metrics
	ServiceInfo *prometheus.GaugeVec
}

// NewRegistry returns a registry with the Go and process collectors attached.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checkout_http_requests_total",
				Help:      "Total number of requests served by the checkout server",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "checkout_http_request_duration_seconds",
				Help:      "Duration of checkout server requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "checkout_http_requests_in_flight",
				Help:      "Number of checkout server requests currently being served",
			},
		),

		// Top-up Metrics
		TopUpAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "topup_attempts_total",
				Help:      "Top-up attempts by final outcome",
			},
			[]string{"outcome"},
		),
		TopUpStageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "topup_stage_duration_seconds",
				Help:      "Time spent in each top-up stage",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 300},
			},
			[]string{"stage", "status"},
		),
		TopUpsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "topups_in_flight",
				Help:      "Top-up attempts currently running",
			},
		),
		GatewayScriptLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "gateway_script_loads_total",
				Help:      "Checkout script fetches by result",
			},
			[]string{"result"},
		),
		ConfirmedBalance: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "confirmed_balance",
				Help:      "Last balance confirmed by the wallet service, in major units",
			},
		),
		CheckoutSessionsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "checkout_sessions_open",
				Help:      "Checkout sessions waiting for the customer",
			},
		),

		// Wallet API Metrics
		APIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Requests to the wallet service",
			},
			[]string{"endpoint", "status"},
		),
		APIRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "Duration of wallet service requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		StoreFetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_fetch_total",
				Help:      "Wallet snapshot fetches by status",
			},
			[]string{"status"},
		),

		// Validation Metrics
		ValidationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_errors_total",
				Help:      "Validation failures by field and tag",
			},
			[]string{"field", "tag"},
		),

		// System Metrics
		ServiceInfo: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "build_info",
				Help:      "Build information",
			},
			[]string{"version", "commit"},
		),
	}
}

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
}

func (m *Metrics) RecordTopUpOutcome(outcome string) {
	m.TopUpAttemptsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordStage(stage, status string, duration time.Duration) {
	m.TopUpStageDuration.WithLabelValues(stage, status).Observe(duration.Seconds())
}

func (m *Metrics) RecordScriptLoad(result string) {
	m.GatewayScriptLoads.WithLabelValues(result).Inc()
}

func (m *Metrics) SetConfirmedBalance(balance float64) {
	m.ConfirmedBalance.Set(balance)
}

func (m *Metrics) RecordAPIRequest(endpoint, status string, duration time.Duration) {
	m.APIRequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.APIRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *Metrics) RecordStoreFetch(status string) {
	m.StoreFetchTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordValidationError(field, tag string) {
	m.ValidationErrors.WithLabelValues(field, tag).Inc()
}

func (m *Metrics) SetServiceInfo(version, commit string) {
	m.ServiceInfo.WithLabelValues(version, commit).Set(1)
}
