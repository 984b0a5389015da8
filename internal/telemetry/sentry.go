package telemetry

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryConfig holds configuration for Sentry error tracking
type SentryConfig struct {
	// DSN is the Sentry Data Source Name. Reporting is off when empty.
	DSN string

	// Environment identifies the deployment environment (dev, prod)
	Environment string

	// Release is the CLI version
	Release string

	// SampleRate controls the percentage of errors to capture (0.0 to 1.0)
	// Default: 1.0 (capture all errors)
	SampleRate float64

	// TracesSampleRate controls the percentage of ShipEngine calls traced.
	// Set to 0 to disable performance monitoring
	TracesSampleRate float64

	Debug bool
}

// sentryEnabled is set once InitSentry succeeds with a DSN.
var sentryEnabled bool

// InitSentry initializes the Sentry client.
// Returns a cleanup function that flushes buffered events.
func InitSentry(cfg SentryConfig, logger *slog.Logger) (func(), error) {
	if cfg.DSN == "" {
		logger.Debug("Sentry disabled (SENTRY_DSN not configured)")
		sentryEnabled = false
		return func() {}, nil
	}

	sampleRate := cfg.SampleRate
	if sampleRate == 0 {
		sampleRate = 1.0
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		SampleRate:       sampleRate,
		TracesSampleRate: cfg.TracesSampleRate,
		Debug:            cfg.Debug,
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			if event.Request != nil {
				delete(event.Request.Headers, "Api-Key")
			}
			return event
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Sentry: %w", err)
	}
	sentryEnabled = true

	logger.Debug("Sentry initialized",
		"environment", cfg.Environment,
		"release", cfg.Release,
		"sample_rate", sampleRate,
	)

	return func() {
		sentry.Flush(2 * time.Second)
	}, nil
}

// IsEnabled returns whether Sentry is currently enabled
func IsEnabled() bool {
	return sentryEnabled
}

// CaptureError captures an error with tags and extras.
// Safe to call even when Sentry is disabled
func CaptureError(err error, tags map[string]string, extras map[string]any) {
	if !IsEnabled() || err == nil {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		for key, value := range extras {
			scope.SetExtra(key, value)
		}
		sentry.CaptureException(err)
	})
}

// HTTPTransport wraps an http.RoundTripper to trace outbound calls as
// Sentry spans.
type HTTPTransport struct {
	Transport http.RoundTripper
}

func (t *HTTPTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	if !IsEnabled() {
		return next.RoundTrip(req)
	}

	span := sentry.StartSpan(req.Context(), "http.client")
	span.Description = fmt.Sprintf("%s %s%s", req.Method, req.URL.Host, req.URL.Path)
	defer span.Finish()

	resp, err := next.RoundTrip(req)
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
	} else {
		span.SetData("http.status_code", resp.StatusCode)
		span.Status = sentry.HTTPtoSpanStatus(resp.StatusCode)
	}

	return resp, err
}
