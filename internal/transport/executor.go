package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/shipengine/internal/request"
	"github.com/dukerupert/shipengine/internal/telemetry"
	"github.com/google/uuid"
)

// ResponseData captures a completed exchange.
type ResponseData struct {
	Status    int
	Header    http.Header
	BodyBytes []byte
	Duration  time.Duration
}

// Executor sends request descriptors to the ShipEngine API.
type Executor struct {
	baseURL string
	client  Doer
	timeout time.Duration
	logger  *slog.Logger
	metrics *telemetry.APIMetrics
}

// Option configures an Executor.
type Option func(*Executor)

// WithClient sets the HTTP client used to send requests.
func WithClient(client Doer) Option {
	return func(e *Executor) {
		if client != nil {
			e.client = client
		}
	}
}

// WithTimeout bounds every call. Zero disables the per-call bound.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Executor) { e.timeout = timeout }
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithMetrics(m *telemetry.APIMetrics) Option {
	return func(e *Executor) { e.metrics = m }
}

// NewExecutor builds an Executor rooted at baseURL.
func NewExecutor(baseURL string, opts ...Option) *Executor {
	cfg := DefaultConfig()
	e := &Executor{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  NewHTTPClient(cfg),
		timeout: cfg.Timeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Raw sends req and returns the response regardless of status.
func (e *Executor) Raw(ctx context.Context, req *request.Request) (ResponseData, error) {
	logger := e.logger.With(
		"operation", req.Operation,
		"call_id", uuid.NewString(),
	)

	ctxWithTimeout := ctx
	cancel := func() {}
	if e.timeout > 0 {
		ctxWithTimeout, cancel = context.WithTimeout(ctx, e.timeout)
	}
	defer cancel()

	target := req.URL
	if target == "" {
		target = e.baseURL + req.Path
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctxWithTimeout, req.Method, target, body)
	if err != nil {
		return ResponseData{}, fmt.Errorf("failed to create %s request: %w", req.Operation, err)
	}
	for k, v := range req.Header {
		httpReq.Header[k] = v
	}

	logger.Debug("sending shipengine request", "method", req.Method, "url", target)

	start := time.Now()
	resp, err := e.client.Do(httpReq)
	if err != nil {
		duration := time.Since(start)
		e.metrics.ObserveRequest(req.Operation, 0, duration)
		e.metrics.ObserveFailure(req.Operation, "transport")
		logger.Error("shipengine request failed", "error", err, "duration", duration)
		return ResponseData{Duration: duration}, fmt.Errorf("failed to send %s request: %w", req.Operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	e.metrics.ObserveRequest(req.Operation, resp.StatusCode, duration)
	if err != nil {
		e.metrics.ObserveFailure(req.Operation, "transport")
		logger.Error("failed to read shipengine response", "error", err, "status", resp.StatusCode)
		return ResponseData{Status: resp.StatusCode, Duration: duration}, fmt.Errorf("failed to read %s response: %w", req.Operation, err)
	}

	logger.Debug("shipengine response received",
		"status", resp.StatusCode,
		"duration", duration,
		"bytes", len(respBody),
	)

	return ResponseData{
		Status:    resp.StatusCode,
		Header:    resp.Header.Clone(),
		BodyBytes: respBody,
		Duration:  duration,
	}, nil
}

// Send executes req and decodes a 2xx JSON body into out. Non-2xx responses
// return a *StatusError. out may be nil when the body is not needed.
func (e *Executor) Send(ctx context.Context, req *request.Request, out any) error {
	data, err := e.Raw(ctx, req)
	if err != nil {
		return err
	}

	if data.Status < 200 || data.Status > 299 {
		e.metrics.ObserveFailure(req.Operation, "status")
		e.logger.Warn("shipengine returned error status",
			"operation", req.Operation,
			"status", data.Status,
		)
		return &StatusError{
			Operation:  req.Operation,
			StatusCode: data.Status,
			Body:       data.BodyBytes,
		}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(data.BodyBytes, out); err != nil {
		e.metrics.ObserveFailure(req.Operation, "decode")
		e.logger.Error("failed to decode shipengine response",
			"operation", req.Operation,
			"error", err,
		)
		return fmt.Errorf("%s: %w: %v", req.Operation, ErrMalformedResponse, err)
	}

	return nil
}
