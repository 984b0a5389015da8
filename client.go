package shipengine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/shipengine/internal/request"
	"github.com/dukerupert/shipengine/internal/telemetry"
	"github.com/dukerupert/shipengine/internal/transport"
	"github.com/dukerupert/shipengine/internal/wire"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	DefaultBaseURL = "https://api.shipengine.com"
	DefaultTimeout = 30 * time.Second

	userAgent = "shipengine-go/1.0"
)

// HTTPDoer sends HTTP requests. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config contains configuration for a ShipEngine client.
type Config struct {
	APIKey  string        `validate:"required"`
	BaseURL string        `validate:"omitempty,url"` // Optional: defaults to DefaultBaseURL
	Timeout time.Duration `validate:"gte=0"`         // Optional: defaults to DefaultTimeout

	UserAgent string

	// HTTPClient defaults to a pooled *http.Client.
	HTTPClient HTTPDoer `validate:"-"`

	// Logger defaults to slog.Default().
	Logger *slog.Logger `validate:"-"`

	// Registerer receives the client's Prometheus collectors. Metrics are
	// not exported when nil.
	Registerer prometheus.Registerer `validate:"-"`
}

// Client is a ShipEngine API client. It is safe for concurrent use.
type Client struct {
	factory *request.Factory
	exec    *transport.Executor
	logger  *slog.Logger
	metrics *telemetry.ShippingMetrics
}

var _ Provider = (*Client)(nil)

var validate = validator.New(validator.WithRequiredStructEnabled())

// New creates a ShipEngine client from cfg.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, ErrInvalidConfig(err)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = userAgent
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "shipengine")

	opts := []transport.Option{
		transport.WithTimeout(cfg.Timeout),
		transport.WithLogger(logger),
		transport.WithMetrics(telemetry.NewAPIMetrics(cfg.Registerer, "shipengine")),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, transport.WithClient(cfg.HTTPClient))
	} else {
		pool := transport.DefaultConfig().WithTimeout(cfg.Timeout)
		opts = append(opts, transport.WithClient(transport.NewHTTPClient(pool)))
	}

	return &Client{
		factory: request.NewFactory(cfg.APIKey, cfg.UserAgent),
		exec:    transport.NewExecutor(cfg.BaseURL, opts...),
		logger:  logger,
		metrics: telemetry.NewShippingMetrics(cfg.Registerer, "shipengine"),
	}, nil
}

func (c *Client) send(ctx context.Context, req *request.Request, out any) error {
	if err := c.exec.Send(ctx, req, out); err != nil {
		return fromTransport(err)
	}
	return nil
}

// missingField reports a 2xx body that decoded but lacks the field the
// result is built from.
func missingField(op, field string) error {
	return fmt.Errorf("%s: %w: missing %q", op, ErrMalformedResponse, field)
}

// ============================================================================
// ADDRESSES
// ============================================================================

// ValidateAddresses checks addresses against ShipEngine's address database and
// returns one result per input, in input order.
func (c *Client) ValidateAddresses(ctx context.Context, addrs ...Address) ([]VerificationResult, error) {
	payload := make([]wire.Address, len(addrs))
	for i, a := range addrs {
		payload[i] = a.toWire()
	}

	req, err := c.factory.ValidateAddresses(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to build address validation request: %w", err)
	}

	var resp []wire.AddressValidationResult
	if err := c.send(ctx, req, &resp); err != nil {
		return nil, err
	}
	if len(resp) != len(addrs) {
		return nil, fmt.Errorf("%s: %w: got %d results for %d addresses",
			req.Operation, ErrMalformedResponse, len(resp), len(addrs))
	}

	results := make([]VerificationResult, len(resp))
	for i, r := range resp {
		results[i] = verificationResultFromWire(r)
		c.metrics.AddressValidated(string(results[i].Status))
	}
	return results, nil
}

// ============================================================================
// CARRIERS
// ============================================================================

// ListCarriers returns every carrier account connected to the API key.
func (c *Client) ListCarriers(ctx context.Context) ([]Carrier, error) {
	req := c.factory.ListCarriers()
	var resp wire.ListCarriersResponse
	if err := c.send(ctx, req, &resp); err != nil {
		return nil, err
	}
	if resp.Carriers == nil {
		return nil, missingField(req.Operation, "carriers")
	}
	if len(resp.Errors) > 0 {
		c.logger.Warn("carrier listing returned errors",
			"request_id", resp.RequestID,
			"errors", len(resp.Errors),
		)
	}
	return carriersFromWire(*resp.Carriers), nil
}

func (c *Client) GetCarrier(ctx context.Context, carrierID string) (*Carrier, error) {
	if strings.TrimSpace(carrierID) == "" {
		return nil, ErrIDRequired
	}

	var resp wire.Carrier
	if err := c.send(ctx, c.factory.GetCarrier(carrierID), &resp); err != nil {
		return nil, err
	}
	carrier := carrierFromWire(resp)
	return &carrier, nil
}

func (c *Client) ListCarrierServices(ctx context.Context, carrierID string) ([]Service, error) {
	if strings.TrimSpace(carrierID) == "" {
		return nil, ErrIDRequired
	}

	req := c.factory.ListCarrierServices(carrierID)
	var resp wire.ListServicesResponse
	if err := c.send(ctx, req, &resp); err != nil {
		return nil, err
	}
	if resp.Services == nil {
		return nil, missingField(req.Operation, "services")
	}
	return servicesFromWire(*resp.Services), nil
}

func (c *Client) ListCarrierPackageTypes(ctx context.Context, carrierID string) ([]PackageType, error) {
	if strings.TrimSpace(carrierID) == "" {
		return nil, ErrIDRequired
	}

	req := c.factory.ListCarrierPackageTypes(carrierID)
	var resp wire.ListPackageTypesResponse
	if err := c.send(ctx, req, &resp); err != nil {
		return nil, err
	}
	if resp.Packages == nil {
		return nil, missingField(req.Operation, "packages")
	}
	return packageTypesFromWire(*resp.Packages), nil
}

func (c *Client) GetCarrierOptions(ctx context.Context, carrierID string) ([]CarrierOption, error) {
	if strings.TrimSpace(carrierID) == "" {
		return nil, ErrIDRequired
	}

	req := c.factory.GetCarrierOptions(carrierID)
	var resp wire.ListCarrierOptionsResponse
	if err := c.send(ctx, req, &resp); err != nil {
		return nil, err
	}
	if resp.Options == nil {
		return nil, missingField(req.Operation, "options")
	}
	return carrierOptionsFromWire(*resp.Options), nil
}

// ============================================================================
// RATES
// ============================================================================

// GetRates quotes shipment with each carrier in opts. It returns
// ErrEmptyRateOptions without calling the API when opts names no carrier.
func (c *Client) GetRates(ctx context.Context, shipment Shipment, opts RateOptions) (*RateResponse, error) {
	if opts.IsEmpty() {
		return nil, ErrEmptyRateOptions
	}

	req, err := c.factory.GetShipmentRates(shipment.toWire(), opts.toWire())
	if err != nil {
		return nil, fmt.Errorf("failed to build rate request: %w", err)
	}

	var resp wire.GetRatesResponse
	if err := c.send(ctx, req, &resp); err != nil {
		return nil, err
	}
	if resp.RateResponse == nil {
		return nil, missingField(req.Operation, "rate_response")
	}

	rates := rateResponseFromWire(resp)
	invalid := make([]string, len(rates.InvalidRates))
	for i, r := range rates.InvalidRates {
		invalid[i] = r.CarrierCode
	}
	c.metrics.RatesQuoted(len(opts.CarrierIDs), len(rates.Rates), invalid)

	if len(rates.Errors) > 0 {
		c.logger.Warn("rate request returned errors",
			"shipment_id", rates.ShipmentID,
			"errors", len(rates.Errors),
		)
	}
	return rates, nil
}

// ============================================================================
// LABELS
// ============================================================================

// CreateLabel purchases a label for shipment. opts.TestLabel is forwarded as is.
func (c *Client) CreateLabel(ctx context.Context, shipment Shipment, opts LabelOptions) (*Label, error) {
	req, err := c.factory.CreateLabel(opts.toWire(shipment))
	if err != nil {
		return nil, fmt.Errorf("failed to build label request: %w", err)
	}

	var resp wire.Label
	if err := c.send(ctx, req, &resp); err != nil {
		return nil, err
	}

	label := labelFromWire(resp)
	c.recordLabel(label, opts)
	c.logger.Info("label created",
		"label_id", label.ID,
		"tracking_number", label.TrackingNumber,
		"test_label", opts.TestLabel,
	)
	return label, nil
}

// CreateLabelFromRate purchases a label for a rate returned by GetRates.
func (c *Client) CreateLabelFromRate(ctx context.Context, rateID string, opts LabelOptions) (*Label, error) {
	if strings.TrimSpace(rateID) == "" {
		return nil, ErrIDRequired
	}

	req, err := c.factory.CreateLabelFromRate(rateID, opts.toWireFromRate())
	if err != nil {
		return nil, fmt.Errorf("failed to build label request: %w", err)
	}

	var resp wire.Label
	if err := c.send(ctx, req, &resp); err != nil {
		return nil, err
	}

	label := labelFromWire(resp)
	c.recordLabel(label, opts)
	c.logger.Info("label created from rate",
		"rate_id", rateID,
		"label_id", label.ID,
		"test_label", opts.TestLabel,
	)
	return label, nil
}

func (c *Client) GetLabel(ctx context.Context, labelID string) (*Label, error) {
	if strings.TrimSpace(labelID) == "" {
		return nil, ErrIDRequired
	}

	var resp wire.Label
	if err := c.send(ctx, c.factory.GetLabel(labelID), &resp); err != nil {
		return nil, err
	}
	return labelFromWire(resp), nil
}

// VoidLabel asks the carrier to cancel a label. A rejected void is not an
// error; check VoidResult.Approved.
func (c *Client) VoidLabel(ctx context.Context, labelID string) (*VoidResult, error) {
	if strings.TrimSpace(labelID) == "" {
		return nil, ErrIDRequired
	}

	var resp wire.VoidLabelResponse
	if err := c.send(ctx, c.factory.VoidLabel(labelID), &resp); err != nil {
		return nil, err
	}
	c.metrics.LabelVoided(resp.Approved)
	if !resp.Approved {
		c.logger.Warn("label void rejected", "label_id", labelID, "message", resp.Message)
	}
	return &VoidResult{Approved: resp.Approved, Message: resp.Message}, nil
}

func (c *Client) TrackLabel(ctx context.Context, labelID string) (*TrackingInfo, error) {
	if strings.TrimSpace(labelID) == "" {
		return nil, ErrIDRequired
	}

	var resp wire.TrackingInfo
	if err := c.send(ctx, c.factory.TrackLabel(labelID), &resp); err != nil {
		return nil, err
	}
	return trackingInfoFromWire(resp), nil
}

// DownloadLabel fetches the label artifact in format and writes it to store
// under "labels/<label_id>.<format>". An empty format fetches the label's
// default download in label.Format. It returns the location reported by store.
func (c *Client) DownloadLabel(ctx context.Context, label *Label, format LabelFormat, store LabelStore) (string, error) {
	if label == nil || strings.TrimSpace(label.ID) == "" {
		return "", ErrIDRequired
	}
	if store == nil {
		return "", ErrLabelStoreRequired
	}

	href := label.Download.For(format)
	if href == "" {
		return "", ErrNoLabelDownload
	}

	req := c.factory.DownloadLabel(href)
	data, err := c.exec.Raw(ctx, req)
	if err != nil {
		return "", err
	}
	if data.Status < 200 || data.Status > 299 {
		return "", fromTransport(&transport.StatusError{
			Operation:  req.Operation,
			StatusCode: data.Status,
			Body:       data.BodyBytes,
		})
	}

	// The generic href serves the format the label was bought in.
	if format == "" {
		format = label.Format
	}
	contentType := format.ContentType()
	if ct := data.Header.Get("Content-Type"); ct != "" {
		contentType = ct
	}

	location, err := store.Put(ctx, labelKey(label.ID, format), bytes.NewReader(data.BodyBytes), contentType)
	if err != nil {
		return "", fmt.Errorf("failed to store label %s: %w", label.ID, err)
	}

	c.metrics.LabelDownloaded(string(format), len(data.BodyBytes))
	c.logger.Info("label downloaded",
		"label_id", label.ID,
		"format", format,
		"bytes", len(data.BodyBytes),
		"location", location,
	)
	return location, nil
}

func (c *Client) recordLabel(label *Label, opts LabelOptions) {
	cost := label.TotalCost()
	c.metrics.LabelCreated(label.CarrierCode, opts.TestLabel, cost.Currency, cost.Amount.InexactFloat64())
}
