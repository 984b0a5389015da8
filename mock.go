package shipengine

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockProvider is a test implementation of Provider. Each method delegates to
// its Func field when set and otherwise returns a canned result. Argument
// errors (empty rate options, blank ids) are reported the same way the real
// client reports them.
type MockProvider struct {
	ValidateAddressesFunc       func(ctx context.Context, addrs ...Address) ([]VerificationResult, error)
	ListCarriersFunc            func(ctx context.Context) ([]Carrier, error)
	GetCarrierFunc              func(ctx context.Context, carrierID string) (*Carrier, error)
	ListCarrierServicesFunc     func(ctx context.Context, carrierID string) ([]Service, error)
	ListCarrierPackageTypesFunc func(ctx context.Context, carrierID string) ([]PackageType, error)
	GetCarrierOptionsFunc       func(ctx context.Context, carrierID string) ([]CarrierOption, error)
	GetRatesFunc                func(ctx context.Context, shipment Shipment, opts RateOptions) (*RateResponse, error)
	CreateLabelFunc             func(ctx context.Context, shipment Shipment, opts LabelOptions) (*Label, error)
	CreateLabelFromRateFunc     func(ctx context.Context, rateID string, opts LabelOptions) (*Label, error)
	GetLabelFunc                func(ctx context.Context, labelID string) (*Label, error)
	VoidLabelFunc               func(ctx context.Context, labelID string) (*VoidResult, error)
	TrackLabelFunc              func(ctx context.Context, labelID string) (*TrackingInfo, error)
	DownloadLabelFunc           func(ctx context.Context, label *Label, format LabelFormat, store LabelStore) (string, error)

	mu    sync.Mutex
	calls []string
}

var _ Provider = (*MockProvider)(nil)

// NewMockProvider creates a new mock provider for testing.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// CallLog returns the names of the methods called so far, in order.
func (m *MockProvider) CallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockProvider) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func mockID(prefix string) string {
	return prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// ValidateAddresses echoes each address back as verified.
func (m *MockProvider) ValidateAddresses(ctx context.Context, addrs ...Address) ([]VerificationResult, error) {
	m.record("ValidateAddresses")
	if m.ValidateAddressesFunc != nil {
		return m.ValidateAddressesFunc(ctx, addrs...)
	}

	results := make([]VerificationResult, len(addrs))
	for i, a := range addrs {
		matched := a
		results[i] = VerificationResult{
			Status:          AddressVerified,
			OriginalAddress: a,
			MatchedAddress:  &matched,
		}
	}
	return results, nil
}

// ListCarriers returns a single test carrier.
func (m *MockProvider) ListCarriers(ctx context.Context) ([]Carrier, error) {
	m.record("ListCarriers")
	if m.ListCarriersFunc != nil {
		return m.ListCarriersFunc(ctx)
	}
	return []Carrier{mockCarrier("se-mock")}, nil
}

func (m *MockProvider) GetCarrier(ctx context.Context, carrierID string) (*Carrier, error) {
	m.record("GetCarrier")
	if m.GetCarrierFunc != nil {
		return m.GetCarrierFunc(ctx, carrierID)
	}
	if strings.TrimSpace(carrierID) == "" {
		return nil, ErrIDRequired
	}
	c := mockCarrier(carrierID)
	return &c, nil
}

func (m *MockProvider) ListCarrierServices(ctx context.Context, carrierID string) ([]Service, error) {
	m.record("ListCarrierServices")
	if m.ListCarrierServicesFunc != nil {
		return m.ListCarrierServicesFunc(ctx, carrierID)
	}
	if strings.TrimSpace(carrierID) == "" {
		return nil, ErrIDRequired
	}
	return mockCarrier(carrierID).Services, nil
}

func (m *MockProvider) ListCarrierPackageTypes(ctx context.Context, carrierID string) ([]PackageType, error) {
	m.record("ListCarrierPackageTypes")
	if m.ListCarrierPackageTypesFunc != nil {
		return m.ListCarrierPackageTypesFunc(ctx, carrierID)
	}
	if strings.TrimSpace(carrierID) == "" {
		return nil, ErrIDRequired
	}
	return mockCarrier(carrierID).PackageTypes, nil
}

func (m *MockProvider) GetCarrierOptions(ctx context.Context, carrierID string) ([]CarrierOption, error) {
	m.record("GetCarrierOptions")
	if m.GetCarrierOptionsFunc != nil {
		return m.GetCarrierOptionsFunc(ctx, carrierID)
	}
	if strings.TrimSpace(carrierID) == "" {
		return nil, ErrIDRequired
	}
	return []CarrierOption{}, nil
}

// GetRates returns one flat rate per requested carrier.
func (m *MockProvider) GetRates(ctx context.Context, shipment Shipment, opts RateOptions) (*RateResponse, error) {
	m.record("GetRates")
	if m.GetRatesFunc != nil {
		return m.GetRatesFunc(ctx, shipment, opts)
	}
	if opts.IsEmpty() {
		return nil, ErrEmptyRateOptions
	}

	resp := &RateResponse{
		ShipmentID:    mockID("se"),
		RateRequestID: mockID("se"),
		Status:        "completed",
		CreatedAt:     time.Now().UTC(),
	}
	for _, id := range NewRateOptions(opts.CarrierIDs...).CarrierIDs {
		resp.Rates = append(resp.Rates, Rate{
			ID:             mockID("se"),
			Type:           "shipment",
			CarrierID:      id,
			CarrierCode:    "mock",
			ServiceType:    "Mock Ground",
			ServiceCode:    "mock_ground",
			ShippingAmount: Money{Currency: "usd", Amount: decimal.NewFromInt(10)},
			DeliveryDays:   3,
			Trackable:      true,
		})
	}
	return resp, nil
}

func (m *MockProvider) CreateLabel(ctx context.Context, shipment Shipment, opts LabelOptions) (*Label, error) {
	m.record("CreateLabel")
	if m.CreateLabelFunc != nil {
		return m.CreateLabelFunc(ctx, shipment, opts)
	}
	label := mockLabel(opts)
	label.CarrierID = shipment.CarrierID
	label.ServiceCode = shipment.ServiceCode
	return label, nil
}

func (m *MockProvider) CreateLabelFromRate(ctx context.Context, rateID string, opts LabelOptions) (*Label, error) {
	m.record("CreateLabelFromRate")
	if m.CreateLabelFromRateFunc != nil {
		return m.CreateLabelFromRateFunc(ctx, rateID, opts)
	}
	if strings.TrimSpace(rateID) == "" {
		return nil, ErrIDRequired
	}
	return mockLabel(opts), nil
}

func (m *MockProvider) GetLabel(ctx context.Context, labelID string) (*Label, error) {
	m.record("GetLabel")
	if m.GetLabelFunc != nil {
		return m.GetLabelFunc(ctx, labelID)
	}
	if strings.TrimSpace(labelID) == "" {
		return nil, ErrIDRequired
	}
	label := mockLabel(LabelOptions{})
	label.ID = labelID
	return label, nil
}

func (m *MockProvider) VoidLabel(ctx context.Context, labelID string) (*VoidResult, error) {
	m.record("VoidLabel")
	if m.VoidLabelFunc != nil {
		return m.VoidLabelFunc(ctx, labelID)
	}
	if strings.TrimSpace(labelID) == "" {
		return nil, ErrIDRequired
	}
	return &VoidResult{Approved: true, Message: "Request for refund submitted."}, nil
}

func (m *MockProvider) TrackLabel(ctx context.Context, labelID string) (*TrackingInfo, error) {
	m.record("TrackLabel")
	if m.TrackLabelFunc != nil {
		return m.TrackLabelFunc(ctx, labelID)
	}
	if strings.TrimSpace(labelID) == "" {
		return nil, ErrIDRequired
	}
	return &TrackingInfo{
		TrackingNumber:    "9400" + strings.ToUpper(mockID("")[1:]),
		StatusCode:        "IT",
		StatusDescription: "In Transit",
	}, nil
}

// DownloadLabel writes a placeholder artifact to store.
func (m *MockProvider) DownloadLabel(ctx context.Context, label *Label, format LabelFormat, store LabelStore) (string, error) {
	m.record("DownloadLabel")
	if m.DownloadLabelFunc != nil {
		return m.DownloadLabelFunc(ctx, label, format, store)
	}
	if label == nil || strings.TrimSpace(label.ID) == "" {
		return "", ErrIDRequired
	}
	if store == nil {
		return "", ErrLabelStoreRequired
	}
	if format == "" {
		format = label.Format
	}
	return store.Put(ctx, labelKey(label.ID, format), bytes.NewReader([]byte("mock label")), format.ContentType())
}

func mockCarrier(id string) Carrier {
	return Carrier{
		ID:           id,
		Code:         "mock",
		FriendlyName: "Mock Carrier",
		Primary:      true,
		Services: []Service{{
			CarrierID:   id,
			CarrierCode: "mock",
			Code:        "mock_ground",
			Name:        "Mock Ground",
			Domestic:    true,
		}},
		PackageTypes: []PackageType{{Code: "package", Name: "Package"}},
	}
}

func mockLabel(opts LabelOptions) *Label {
	id := mockID("se")
	format := opts.Format
	if format == "" {
		format = LabelPDF
	}
	return &Label{
		ID:             id,
		Status:         "completed",
		ShipmentID:     mockID("se"),
		CreatedAt:      time.Now().UTC(),
		ShipmentCost:   Money{Currency: "usd", Amount: decimal.NewFromInt(10)},
		TrackingNumber: "9400" + strings.ToUpper(mockID("")[1:]),
		Format:         format,
		Trackable:      true,
		Download: LabelDownload{
			Href: "https://api.shipengine.com/v1/downloads/mock/" + id + "." + string(format),
		},
	}
}
