package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	ClientRequestsTotal          metric.Int64Counter
	ClientRequestDurationSeconds metric.Float64Histogram
	ClientRequestErrorsTotal     metric.Int64Counter
	SessionEventsTotal           metric.Int64Counter
	MockRequestsTotal            metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments ONLY ONCE from the global MeterProvider.
// Instruments created before a provider is installed are delegated to it later.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("RentalClient")
		var err error
		m := &AppMetrics{}

		m.ClientRequestsTotal, err = meter.Int64Counter(
			"client_requests_total",
			metric.WithDescription("Total number of API requests issued by the client"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create client_requests_total: %v", err)
		}

		m.ClientRequestDurationSeconds, err = meter.Float64Histogram(
			"client_request_duration_seconds",
			metric.WithDescription("Duration of API requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create client_request_duration_seconds: %v", err)
		}

		m.ClientRequestErrorsTotal, err = meter.Int64Counter(
			"client_request_errors_total",
			metric.WithDescription("Total number of failed API requests by error kind"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create client_request_errors_total: %v", err)
		}

		m.SessionEventsTotal, err = meter.Int64Counter(
			"session_events_total",
			metric.WithDescription("Sign-in, sign-out and forced sign-out events"),
			metric.WithUnit("{event}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create session_events_total: %v", err)
		}

		m.MockRequestsTotal, err = meter.Int64Counter(
			"mock_api_requests_total",
			metric.WithDescription("Total number of requests served by the development backend"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create mock_api_requests_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the instruments, initializing them on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
