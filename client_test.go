package shipengine_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dukerupert/shipengine"
	"github.com/dukerupert/shipengine/internal/transport/transportmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// recorded is one request seen by the fake ShipEngine server.
type recorded struct {
	Method string
	Path   string
	APIKey string
	Body   []byte
}

type fakeShipEngine struct {
	mu       sync.Mutex
	requests []recorded
	server   *httptest.Server
}

// newFakeShipEngine serves canned JSON bodies keyed by "METHOD /path".
func newFakeShipEngine(t *testing.T, routes map[string]string) *fakeShipEngine {
	t.Helper()
	f := &fakeShipEngine{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, recorded{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			APIKey: r.Header.Get("API-Key"),
			Body:   body,
		})
		f.mu.Unlock()

		resp, ok := routes[r.Method+" "+r.URL.EscapedPath()]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"request_id":"req-404","errors":[{"error_source":"shipengine","error_type":"system","error_code":"not_found","message":"not found"}]}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, resp)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeShipEngine) Requests() []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recorded(nil), f.requests...)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, f *fakeShipEngine) *shipengine.Client {
	t.Helper()
	client, err := shipengine.New(shipengine.Config{
		APIKey:  "TEST_key",
		BaseURL: f.server.URL,
		Logger:  quietLogger(),
	})
	require.NoError(t, err)
	return client
}

func testShipment() shipengine.Shipment {
	return shipengine.Shipment{
		ShipFrom: shipengine.Address{
			Name: "Warehouse", Phone: "512-555-0100", Line1: "4009 Marathon Blvd",
			City: "Austin", State: "TX", PostalCode: "78756", Country: "US",
		},
		ShipTo: shipengine.Address{
			Name: "Jane Doe", Line1: "525 S Winchester Blvd",
			City: "San Jose", State: "CA", PostalCode: "95128", Country: "US",
			Residential: shipengine.ResidentialYes,
		},
		Packages: []shipengine.Package{{
			Weight: shipengine.Weight{Value: 20, Unit: shipengine.Ounce},
		}},
	}
}

const ratesBody = `{
  "shipment_id": "se-ship-1",
  "rate_response": {
    "rate_request_id": "se-rr-1",
    "shipment_id": "se-ship-1",
    "status": "completed",
    "created_at": "2026-01-15T10:30:00.000Z",
    "rates": [
      {"rate_id": "se-r-1", "carrier_id": "se-111", "service_code": "usps_priority_mail",
       "shipping_amount": {"currency": "usd", "amount": 9.45},
       "other_amount": {"currency": "usd", "amount": 0.50},
       "delivery_days": 2, "estimated_delivery_date": "2026-01-17T00:00:00Z"},
      {"rate_id": "se-r-2", "carrier_id": "se-222", "service_code": "ups_ground",
       "shipping_amount": {"currency": "usd", "amount": 12.10}, "delivery_days": 4}
    ],
    "invalid_rates": [],
    "errors": []
  }
}`

// ============================================================================
// CONSTRUCTION
// ============================================================================

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := shipengine.New(shipengine.Config{})
	assert.ErrorIs(t, err, shipengine.ErrMissingAPIKey)

	_, err = shipengine.New(shipengine.Config{APIKey: "   "})
	assert.ErrorIs(t, err, shipengine.ErrMissingAPIKey)
}

func TestNew_ValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  shipengine.Config
	}{
		{"bad base url", shipengine.Config{APIKey: "k", BaseURL: "not a url"}},
		{"negative timeout", shipengine.Config{APIKey: "k", Timeout: -time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := shipengine.New(tt.cfg)
			require.Error(t, err)
			assert.Equal(t, shipengine.CodeInvalid, shipengine.ErrorCode(err))
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	client, err := shipengine.New(shipengine.Config{APIKey: "k"})
	require.NoError(t, err)
	assert.NotNil(t, client)
}

// ============================================================================
// RATES
// ============================================================================

func TestGetRates_BuildsFromRateResponse(t *testing.T) {
	f := newFakeShipEngine(t, map[string]string{"POST /v1/rates": ratesBody})
	client := newTestClient(t, f)

	resp, err := client.GetRates(context.Background(), testShipment(), shipengine.NewRateOptions("se-111", "se-222"))
	require.NoError(t, err)

	assert.Equal(t, "se-ship-1", resp.ShipmentID)
	assert.Equal(t, "se-rr-1", resp.RateRequestID)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC), resp.CreatedAt.UTC())
	require.Len(t, resp.Rates, 2)
	assert.Equal(t, "se-r-1", resp.Rates[0].ID)
	assert.True(t, decimal.RequireFromString("9.95").Equal(resp.Rates[0].Total().Amount))
	assert.Equal(t, 2, resp.Rates[0].DeliveryDays)
	assert.Empty(t, resp.InvalidRates)

	reqs := f.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "TEST_key", reqs[0].APIKey)

	var body struct {
		Shipment    map[string]any `json:"shipment"`
		RateOptions struct {
			CarrierIDs []string `json:"carrier_ids"`
		} `json:"rate_options"`
	}
	require.NoError(t, json.Unmarshal(reqs[0].Body, &body))
	assert.Equal(t, []string{"se-111", "se-222"}, body.RateOptions.CarrierIDs)
	assert.Contains(t, body.Shipment, "ship_to")
	assert.Contains(t, body.Shipment, "ship_from")
}

func TestGetRates_EmptyOptionsNoNetworkCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	doer := transportmock.NewMockDoer(ctrl)
	// No EXPECT: any Do call fails the test.

	client, err := shipengine.New(shipengine.Config{
		APIKey:     "k",
		HTTPClient: doer,
		Logger:     quietLogger(),
	})
	require.NoError(t, err)

	for _, opts := range []shipengine.RateOptions{
		{},
		{CarrierIDs: []string{}},
		{CarrierIDs: []string{"", "  "}},
	} {
		resp, err := client.GetRates(context.Background(), testShipment(), opts)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, shipengine.ErrEmptyRateOptions)
		assert.Equal(t, shipengine.CodeInvalid, shipengine.ErrorCode(err))
	}
}

func TestGetRates_MalformedResponseFailsFast(t *testing.T) {
	f := newFakeShipEngine(t, map[string]string{"POST /v1/rates": `{"rate_response": {"rates": "oops"}}`})
	client := newTestClient(t, f)

	resp, err := client.GetRates(context.Background(), testShipment(), shipengine.NewRateOptions("se-1"))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, shipengine.ErrMalformedResponse)
}

func TestGetRates_MissingRateResponseFailsFast(t *testing.T) {
	f := newFakeShipEngine(t, map[string]string{"POST /v1/rates": `{"shipment_id": "se-ship-1"}`})
	client := newTestClient(t, f)

	resp, err := client.GetRates(context.Background(), testShipment(), shipengine.NewRateOptions("se-1"))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, shipengine.ErrMalformedResponse)
	assert.Contains(t, err.Error(), "rate_response")
}

func TestCarrierLists_MissingFieldFailsFast(t *testing.T) {
	f := newFakeShipEngine(t, map[string]string{
		"GET /v1/carriers":               `{}`,
		"GET /v1/carriers/se-1/services": `{"request_id": "req-1"}`,
		"GET /v1/carriers/se-1/packages": `{}`,
		"GET /v1/carriers/se-1/options":  `{"options": null}`,
	})
	client := newTestClient(t, f)
	ctx := context.Background()

	carriers, err := client.ListCarriers(ctx)
	assert.Nil(t, carriers)
	assert.ErrorIs(t, err, shipengine.ErrMalformedResponse)

	services, err := client.ListCarrierServices(ctx, "se-1")
	assert.Nil(t, services)
	assert.ErrorIs(t, err, shipengine.ErrMalformedResponse)

	packages, err := client.ListCarrierPackageTypes(ctx, "se-1")
	assert.Nil(t, packages)
	assert.ErrorIs(t, err, shipengine.ErrMalformedResponse)

	options, err := client.GetCarrierOptions(ctx, "se-1")
	assert.Nil(t, options)
	assert.ErrorIs(t, err, shipengine.ErrMalformedResponse)
}

func TestCarrierLists_EmptyListIsNotMalformed(t *testing.T) {
	f := newFakeShipEngine(t, map[string]string{"GET /v1/carriers/se-1/services": `{"services": []}`})
	client := newTestClient(t, f)

	services, err := client.ListCarrierServices(context.Background(), "se-1")
	require.NoError(t, err)
	assert.Empty(t, services)
}

// ============================================================================
// ADDRESSES
// ============================================================================

const validateBody = `[
  {"status": "verified",
   "original_address": {"address_line1": "525 s winchester blvd", "city_locality": "san jose", "country_code": "US"},
   "matched_address": {"address_line1": "525 S WINCHESTER BLVD", "city_locality": "SAN JOSE", "state_province": "CA", "postal_code": "95128-2537", "country_code": "US", "address_residential_indicator": "yes"},
   "messages": []},
  {"status": "error",
   "original_address": {"address_line1": "1 Nowhere", "country_code": "US"},
   "matched_address": null,
   "messages": [{"code": "a1004", "message": "Address not found", "type": "error", "detail_code": "address_not_found"}]}
]`

func TestValidateAddresses_OneResultPerInputInOrder(t *testing.T) {
	f := newFakeShipEngine(t, map[string]string{"POST /v1/addresses/validate": validateBody})
	client := newTestClient(t, f)

	results, err := client.ValidateAddresses(context.Background(),
		shipengine.Address{Line1: "525 s winchester blvd", City: "san jose", Country: "US"},
		shipengine.Address{Line1: "1 Nowhere", Country: "US"},
	)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, shipengine.AddressVerified, results[0].Status)
	assert.True(t, results[0].IsValid())
	require.NotNil(t, results[0].MatchedAddress)
	assert.Equal(t, "95128-2537", results[0].MatchedAddress.PostalCode)
	assert.Equal(t, shipengine.ResidentialYes, results[0].MatchedAddress.Residential)

	assert.Equal(t, shipengine.AddressError, results[1].Status)
	assert.False(t, results[1].IsValid())
	assert.Nil(t, results[1].MatchedAddress)
	require.Len(t, results[1].Messages, 1)
	assert.Equal(t, "address_not_found", results[1].Messages[0].DetailCode)
}

func TestValidateAddresses_RawMappingMatchesTypedAddress(t *testing.T) {
	f := newFakeShipEngine(t, map[string]string{"POST /v1/addresses/validate": `[{"status":"verified","original_address":{}}]`})
	client := newTestClient(t, f)

	typed := shipengine.Address{
		Name:       "Jane Doe",
		Line1:      "525 S Winchester Blvd",
		Line2:      "Suite 1",
		City:       "San Jose",
		State:      "CA",
		PostalCode: "95128",
		Country:    "US",
	}
	raw, err := shipengine.AddressFromMap(map[string]any{
		"name":        "Jane Doe",
		"street":      []any{"525 S Winchester Blvd", "Suite 1"},
		"city":        "San Jose",
		"state":       "CA",
		"postal_code": "95128",
		"country":     "US",
	})
	require.NoError(t, err)

	_, err = client.ValidateAddresses(context.Background(), typed)
	require.NoError(t, err)
	_, err = client.ValidateAddresses(context.Background(), raw)
	require.NoError(t, err)

	reqs := f.Requests()
	require.Len(t, reqs, 2)
	assert.JSONEq(t, string(reqs[0].Body), string(reqs[1].Body))
}

func TestValidateAddresses_ResultCountMismatch(t *testing.T) {
	f := newFakeShipEngine(t, map[string]string{"POST /v1/addresses/validate": `[]`})
	client := newTestClient(t, f)

	_, err := client.ValidateAddresses(context.Background(), shipengine.Address{Line1: "x"})
	assert.ErrorIs(t, err, shipengine.ErrMalformedResponse)
}

// ============================================================================
// CARRIERS
// ============================================================================

func TestListCarriers_OnePerElement(t *testing.T) {
	f := newFakeShipEngine(t, map[string]string{"GET /v1/carriers": `{
	  "carriers": [
	    {"carrier_id": "se-111", "carrier_code": "stamps_com", "friendly_name": "Stamps.com", "primary": true,
	     "balance": 84.35, "services": [{"carrier_id": "se-111", "service_code": "usps_priority_mail", "name": "USPS Priority Mail", "domestic": true}]},
	    {"carrier_id": "se-222", "carrier_code": "ups", "friendly_name": "UPS"},
	    {"carrier_id": "se-333", "carrier_code": "fedex", "friendly_name": "FedEx"}
	  ],
	  "request_id": "req-1",
	  "errors": []
	}`})
	client := newTestClient(t, f)

	carriers, err := client.ListCarriers(context.Background())
	require.NoError(t, err)
	require.Len(t, carriers, 3)
	assert.Equal(t, "se-111", carriers[0].ID)
	assert.True(t, carriers[0].Primary)
	assert.True(t, decimal.RequireFromString("84.35").Equal(carriers[0].Balance))
	require.Len(t, carriers[0].Services, 1)
	assert.Equal(t, "usps_priority_mail", carriers[0].Services[0].Code)
	assert.Equal(t, "fedex", carriers[2].Code)
}

func TestListCarrierServices_ScopedToCarrier(t *testing.T) {
	f := newFakeShipEngine(t, map[string]string{"GET /v1/carriers/carrier_123/services": `{
	  "services": [
	    {"carrier_id": "carrier_123", "service_code": "usps_first_class_mail", "name": "USPS First Class Mail", "domestic": true},
	    {"carrier_id": "carrier_123", "service_code": "usps_priority_mail_international", "name": "USPS Priority Mail Intl", "international": true}
	  ]
	}`})
	client := newTestClient(t, f)

	services, err := client.ListCarrierServices(context.Background(), "carrier_123")
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "usps_first_class_mail", services[0].Code)
	assert.True(t, services[1].International)

	reqs := f.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/v1/carriers/carrier_123/services", reqs[0].Path)
}

func TestCarrierEndpoints(t *testing.T) {
	f := newFakeShipEngine(t, map[string]string{
		"GET /v1/carriers/se-1":          `{"carrier_id": "se-1", "carrier_code": "ups", "nickname": "main"}`,
		"GET /v1/carriers/se-1/packages": `{"packages": [{"package_code": "flat_rate_envelope", "name": "Flat Rate Envelope", "dimensions": {"unit": "inch", "length": 12.5, "width": 9.5, "height": 0}}]}`,
		"GET /v1/carriers/se-1/options":  `{"options": [{"name": "non_machinable", "default_value": "false", "description": "Non-machinable"}]}`,
	})
	client := newTestClient(t, f)
	ctx := context.Background()

	carrier, err := client.GetCarrier(ctx, "se-1")
	require.NoError(t, err)
	assert.Equal(t, "main", carrier.Nickname)

	packages, err := client.ListCarrierPackageTypes(ctx, "se-1")
	require.NoError(t, err)
	require.Len(t, packages, 1)
	require.NotNil(t, packages[0].Dimensions)
	assert.Equal(t, shipengine.Inch, packages[0].Dimensions.Unit)
	assert.Equal(t, 12.5, packages[0].Dimensions.Length)

	options, err := client.GetCarrierOptions(ctx, "se-1")
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "non_machinable", options[0].Name)
}

func TestBlankIDsRejectedBeforeSending(t *testing.T) {
	f := newFakeShipEngine(t, nil)
	client := newTestClient(t, f)
	ctx := context.Background()

	_, err := client.GetCarrier(ctx, "")
	assert.ErrorIs(t, err, shipengine.ErrIDRequired)
	_, err = client.ListCarrierServices(ctx, " ")
	assert.ErrorIs(t, err, shipengine.ErrIDRequired)
	_, err = client.ListCarrierPackageTypes(ctx, "")
	assert.ErrorIs(t, err, shipengine.ErrIDRequired)
	_, err = client.GetCarrierOptions(ctx, "")
	assert.ErrorIs(t, err, shipengine.ErrIDRequired)
	_, err = client.CreateLabelFromRate(ctx, "", shipengine.LabelOptions{})
	assert.ErrorIs(t, err, shipengine.ErrIDRequired)
	_, err = client.GetLabel(ctx, "")
	assert.ErrorIs(t, err, shipengine.ErrIDRequired)
	_, err = client.VoidLabel(ctx, "")
	assert.ErrorIs(t, err, shipengine.ErrIDRequired)
	_, err = client.TrackLabel(ctx, "")
	assert.ErrorIs(t, err, shipengine.ErrIDRequired)

	assert.Empty(t, f.Requests())
}

func TestAPIErrorDecoded(t *testing.T) {
	f := newFakeShipEngine(t, nil)
	client := newTestClient(t, f)

	_, err := client.GetCarrier(context.Background(), "se-missing")
	require.Error(t, err)

	var apiErr *shipengine.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "req-404", apiErr.RequestID)
	require.Len(t, apiErr.Errors, 1)
	assert.Equal(t, "not found", apiErr.Errors[0].Message)
	assert.Equal(t, shipengine.CodeNotFound, shipengine.ErrorCode(err))
}

// ============================================================================
// LABELS
// ============================================================================

const labelBody = `{
  "label_id": "se-label-1",
  "status": "completed",
  "shipment_id": "se-ship-1",
  "ship_date": "2026-01-15T00:00:00Z",
  "created_at": "2026-01-15T10:31:00.5Z",
  "shipment_cost": {"currency": "usd", "amount": 9.45},
  "insurance_cost": {"currency": "usd", "amount": 0.00},
  "tracking_number": "9400111899223197428490",
  "voided": false,
  "voided_at": null,
  "carrier_id": "se-111",
  "carrier_code": "stamps_com",
  "service_code": "usps_priority_mail",
  "label_format": "pdf",
  "label_layout": "4x6",
  "trackable": true,
  "label_download": {"href": "https://api.shipengine.com/v1/downloads/10/label.pdf", "pdf": "https://api.shipengine.com/v1/downloads/10/label.pdf"}
}`

func TestCreateLabel_ForwardsTestFlag(t *testing.T) {
	for _, testLabel := range []bool{true, false} {
		f := newFakeShipEngine(t, map[string]string{"POST /v1/labels": labelBody})
		client := newTestClient(t, f)

		shipment := testShipment()
		shipment.CarrierID = "se-111"
		shipment.ServiceCode = "usps_priority_mail"

		label, err := client.CreateLabel(context.Background(), shipment, shipengine.LabelOptions{
			TestLabel: testLabel,
			Format:    shipengine.LabelPDF,
		})
		require.NoError(t, err)
		assert.Equal(t, "se-label-1", label.ID)
		assert.Equal(t, "9400111899223197428490", label.TrackingNumber)
		assert.True(t, label.VoidedAt.IsZero())

		reqs := f.Requests()
		require.Len(t, reqs, 1)
		var body map[string]any
		require.NoError(t, json.Unmarshal(reqs[0].Body, &body))
		assert.Equal(t, testLabel, body["test_label"])
		assert.Equal(t, "pdf", body["label_format"])
		shipmentBody, ok := body["shipment"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "se-111", shipmentBody["carrier_id"])
	}
}

func TestLabelLifecycle(t *testing.T) {
	f := newFakeShipEngine(t, map[string]string{
		"POST /v1/labels/rates/se-r-1":   labelBody,
		"GET /v1/labels/se-label-1":      labelBody,
		"PUT /v1/labels/se-label-1/void": `{"approved": true, "message": "Request for refund submitted."}`,
		"GET /v1/labels/se-label-1/track": `{
		  "tracking_number": "9400111899223197428490",
		  "status_code": "DE",
		  "status_description": "Delivered",
		  "actual_delivery_date": "2026-01-17T14:02:00Z",
		  "events": [{"occurred_at": "2026-01-17T14:02:00Z", "description": "Delivered", "city_locality": "SAN JOSE", "event_code": "01"}]
		}`,
	})
	client := newTestClient(t, f)
	ctx := context.Background()

	label, err := client.CreateLabelFromRate(ctx, "se-r-1", shipengine.LabelOptions{TestLabel: true})
	require.NoError(t, err)
	assert.Equal(t, "se-label-1", label.ID)

	got, err := client.GetLabel(ctx, "se-label-1")
	require.NoError(t, err)
	assert.Equal(t, shipengine.Layout4x6, got.Layout)

	void, err := client.VoidLabel(ctx, "se-label-1")
	require.NoError(t, err)
	assert.True(t, void.Approved)

	tracking, err := client.TrackLabel(ctx, "se-label-1")
	require.NoError(t, err)
	assert.True(t, tracking.Delivered())
	require.Len(t, tracking.Events, 1)
	assert.Equal(t, "SAN JOSE", tracking.Events[0].City)

	reqs := f.Requests()
	require.Len(t, reqs, 4)
	assert.JSONEq(t, `{"test_label": true}`, string(reqs[0].Body))
	assert.Equal(t, http.MethodPut, reqs[2].Method)
}

type memoryStore struct {
	objects map[string][]byte
	types   map[string]string
}

func (s *memoryStore) Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error) {
	b, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	s.objects[key] = b
	s.types[key] = contentType
	return "mem://" + key, nil
}

func TestDownloadLabel_WritesToStore(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("API-Key")
		w.Header().Set("Content-Type", "application/pdf")
		io.WriteString(w, "%PDF-1.4 label")
	}))
	defer server.Close()

	client, err := shipengine.New(shipengine.Config{APIKey: "k", Logger: quietLogger()})
	require.NoError(t, err)

	store := &memoryStore{objects: map[string][]byte{}, types: map[string]string{}}
	label := &shipengine.Label{
		ID:       "se-label-1",
		Download: shipengine.LabelDownload{PDF: server.URL + "/v1/downloads/10/label.pdf"},
	}

	location, err := client.DownloadLabel(context.Background(), label, shipengine.LabelPDF, store)
	require.NoError(t, err)
	assert.Equal(t, "mem://labels/se-label-1.pdf", location)
	assert.Equal(t, "%PDF-1.4 label", string(store.objects["labels/se-label-1.pdf"]))
	assert.Equal(t, "application/pdf", store.types["labels/se-label-1.pdf"])
	assert.Empty(t, gotKey)
}

func TestDownloadLabel_DefaultHrefKeepsLabelFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "^XA^FDlabel^FS^XZ")
	}))
	defer server.Close()

	client, err := shipengine.New(shipengine.Config{APIKey: "k", Logger: quietLogger()})
	require.NoError(t, err)

	store := &memoryStore{objects: map[string][]byte{}, types: map[string]string{}}
	label := &shipengine.Label{
		ID:       "se-label-2",
		Format:   shipengine.LabelZPL,
		Download: shipengine.LabelDownload{Href: server.URL + "/v1/downloads/10/label.zpl"},
	}

	location, err := client.DownloadLabel(context.Background(), label, "", store)
	require.NoError(t, err)
	assert.Equal(t, "mem://labels/se-label-2.zpl", location)
	assert.Equal(t, "^XA^FDlabel^FS^XZ", string(store.objects["labels/se-label-2.zpl"]))
	assert.NotContains(t, store.objects, "labels/se-label-2.pdf")
}

func TestDownloadLabel_Errors(t *testing.T) {
	client, err := shipengine.New(shipengine.Config{APIKey: "k", Logger: quietLogger()})
	require.NoError(t, err)
	ctx := context.Background()
	store := &memoryStore{objects: map[string][]byte{}, types: map[string]string{}}

	_, err = client.DownloadLabel(ctx, nil, shipengine.LabelPDF, store)
	assert.ErrorIs(t, err, shipengine.ErrIDRequired)

	label := &shipengine.Label{ID: "se-1"}
	_, err = client.DownloadLabel(ctx, label, shipengine.LabelPDF, nil)
	assert.ErrorIs(t, err, shipengine.ErrLabelStoreRequired)

	_, err = client.DownloadLabel(ctx, label, shipengine.LabelZPL, store)
	assert.ErrorIs(t, err, shipengine.ErrNoLabelDownload)
}

// ============================================================================
// METRICS
// ============================================================================

func TestClient_RegistersMetrics(t *testing.T) {
	f := newFakeShipEngine(t, map[string]string{"GET /v1/carriers": `{"carriers": []}`})
	reg := prometheus.NewRegistry()

	client, err := shipengine.New(shipengine.Config{
		APIKey:     "k",
		BaseURL:    f.server.URL,
		Logger:     quietLogger(),
		Registerer: reg,
	})
	require.NoError(t, err)

	_, err = client.ListCarriers(context.Background())
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "shipengine_client_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestClient_RecordsShippingMetrics(t *testing.T) {
	f := newFakeShipEngine(t, map[string]string{"POST /v1/labels": labelBody})
	reg := prometheus.NewRegistry()

	client, err := shipengine.New(shipengine.Config{
		APIKey:     "k",
		BaseURL:    f.server.URL,
		Logger:     quietLogger(),
		Registerer: reg,
	})
	require.NoError(t, err)

	_, err = client.CreateLabel(context.Background(), testShipment(), shipengine.LabelOptions{TestLabel: true})
	require.NoError(t, err)

	expected := `
# HELP shipengine_shipping_labels_created_total Labels purchased
# TYPE shipengine_shipping_labels_created_total counter
shipengine_shipping_labels_created_total{carrier_code="stamps_com",test_label="true"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "shipengine_shipping_labels_created_total"))

	count, err := testutil.GatherAndCount(reg, "shipengine_shipping_label_cost")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
