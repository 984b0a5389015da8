package shipengine

import "context"

// Provider is the set of ShipEngine operations. *Client implements it against
// the live API; MockProvider implements it for tests.
type Provider interface {
	// ValidateAddresses returns one result per address, in order.
	ValidateAddresses(ctx context.Context, addrs ...Address) ([]VerificationResult, error)

	ListCarriers(ctx context.Context) ([]Carrier, error)
	GetCarrier(ctx context.Context, carrierID string) (*Carrier, error)
	ListCarrierServices(ctx context.Context, carrierID string) ([]Service, error)
	ListCarrierPackageTypes(ctx context.Context, carrierID string) ([]PackageType, error)
	GetCarrierOptions(ctx context.Context, carrierID string) ([]CarrierOption, error)

	// GetRates returns ErrEmptyRateOptions when opts names no carrier.
	GetRates(ctx context.Context, shipment Shipment, opts RateOptions) (*RateResponse, error)

	CreateLabel(ctx context.Context, shipment Shipment, opts LabelOptions) (*Label, error)
	CreateLabelFromRate(ctx context.Context, rateID string, opts LabelOptions) (*Label, error)
	GetLabel(ctx context.Context, labelID string) (*Label, error)
	VoidLabel(ctx context.Context, labelID string) (*VoidResult, error)
	TrackLabel(ctx context.Context, labelID string) (*TrackingInfo, error)

	// DownloadLabel stores the label artifact and returns its location.
	DownloadLabel(ctx context.Context, label *Label, format LabelFormat, store LabelStore) (string, error)
}
