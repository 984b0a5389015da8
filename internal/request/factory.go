package request

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dukerupert/shipengine/internal/wire"
)

// Operation names identify a request in logs and metrics.
const (
	OpValidateAddresses       = "validate_addresses"
	OpListCarriers            = "list_carriers"
	OpGetCarrier              = "get_carrier"
	OpListCarrierServices     = "list_carrier_services"
	OpListCarrierPackageTypes = "list_carrier_package_types"
	OpGetCarrierOptions       = "get_carrier_options"
	OpGetShipmentRates        = "get_shipment_rates"
	OpCreateLabel             = "create_label"
	OpCreateLabelFromRate     = "create_label_from_rate"
	OpGetLabel                = "get_label"
	OpVoidLabel               = "void_label"
	OpTrackLabel              = "track_label"
	OpDownloadLabel           = "download_label"
)

const apiKeyHeader = "API-Key"

// Request describes one outbound call. Path is relative to the API base URL
// unless URL is set, in which case URL is used as-is.
type Request struct {
	Operation string
	Method    string
	Path      string
	URL       string
	Body      []byte
	Header    http.Header
}

// Factory builds requests for each ShipEngine operation. The API key is
// fixed at construction and every builder is free of side effects.
type Factory struct {
	apiKey    string
	userAgent string
}

// NewFactory creates a request factory for the given API key.
func NewFactory(apiKey, userAgent string) *Factory {
	return &Factory{apiKey: apiKey, userAgent: userAgent}
}

// ValidateAddresses builds POST /v1/addresses/validate.
func (f *Factory) ValidateAddresses(addrs []wire.Address) (*Request, error) {
	if addrs == nil {
		addrs = []wire.Address{}
	}
	return f.withBody(OpValidateAddresses, http.MethodPost, "/v1/addresses/validate", addrs)
}

// ListCarriers builds GET /v1/carriers.
func (f *Factory) ListCarriers() *Request {
	return f.new(OpListCarriers, http.MethodGet, "/v1/carriers")
}

// GetCarrier builds GET /v1/carriers/{carrier_id}.
func (f *Factory) GetCarrier(carrierID string) *Request {
	return f.new(OpGetCarrier, http.MethodGet, carrierPath(carrierID, ""))
}

// ListCarrierServices builds GET /v1/carriers/{carrier_id}/services.
func (f *Factory) ListCarrierServices(carrierID string) *Request {
	return f.new(OpListCarrierServices, http.MethodGet, carrierPath(carrierID, "services"))
}

// ListCarrierPackageTypes builds GET /v1/carriers/{carrier_id}/packages.
func (f *Factory) ListCarrierPackageTypes(carrierID string) *Request {
	return f.new(OpListCarrierPackageTypes, http.MethodGet, carrierPath(carrierID, "packages"))
}

// GetCarrierOptions builds GET /v1/carriers/{carrier_id}/options.
func (f *Factory) GetCarrierOptions(carrierID string) *Request {
	return f.new(OpGetCarrierOptions, http.MethodGet, carrierPath(carrierID, "options"))
}

// GetShipmentRates builds POST /v1/rates.
func (f *Factory) GetShipmentRates(shipment wire.Shipment, opts wire.RateOptions) (*Request, error) {
	return f.withBody(OpGetShipmentRates, http.MethodPost, "/v1/rates", wire.GetRatesRequest{
		Shipment:    shipment,
		RateOptions: opts,
	})
}

// CreateLabel builds POST /v1/labels.
func (f *Factory) CreateLabel(body wire.CreateLabelRequest) (*Request, error) {
	return f.withBody(OpCreateLabel, http.MethodPost, "/v1/labels", body)
}

// CreateLabelFromRate builds POST /v1/labels/rates/{rate_id}.
func (f *Factory) CreateLabelFromRate(rateID string, body wire.CreateLabelFromRateRequest) (*Request, error) {
	path := "/v1/labels/rates/" + url.PathEscape(rateID)
	return f.withBody(OpCreateLabelFromRate, http.MethodPost, path, body)
}

// GetLabel builds GET /v1/labels/{label_id}.
func (f *Factory) GetLabel(labelID string) *Request {
	return f.new(OpGetLabel, http.MethodGet, labelPath(labelID, ""))
}

// VoidLabel builds PUT /v1/labels/{label_id}/void.
func (f *Factory) VoidLabel(labelID string) *Request {
	return f.new(OpVoidLabel, http.MethodPut, labelPath(labelID, "void"))
}

// TrackLabel builds GET /v1/labels/{label_id}/track.
func (f *Factory) TrackLabel(labelID string) *Request {
	return f.new(OpTrackLabel, http.MethodGet, labelPath(labelID, "track"))
}

// DownloadLabel builds a GET for a label artifact link returned by the API.
// Download links are pre-authorized, so the API key is not attached.
func (f *Factory) DownloadLabel(href string) *Request {
	req := &Request{
		Operation: OpDownloadLabel,
		Method:    http.MethodGet,
		URL:       href,
		Header:    http.Header{},
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	return req
}

func (f *Factory) new(op, method, path string) *Request {
	h := http.Header{}
	h.Set(apiKeyHeader, f.apiKey)
	h.Set("Accept", "application/json")
	if f.userAgent != "" {
		h.Set("User-Agent", f.userAgent)
	}
	return &Request{
		Operation: op,
		Method:    method,
		Path:      path,
		Header:    h,
	}
}

func (f *Factory) withBody(op, method, path string, payload any) (*Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", op, err)
	}
	req := f.new(op, method, path)
	req.Header.Set("Content-Type", "application/json")
	req.Body = body
	return req, nil
}

func carrierPath(carrierID, sub string) string {
	p := "/v1/carriers/" + url.PathEscape(carrierID)
	if sub != "" {
		p += "/" + sub
	}
	return p
}

func labelPath(labelID, sub string) string {
	p := "/v1/labels/" + url.PathEscape(labelID)
	if sub != "" {
		p += "/" + sub
	}
	return p
}
