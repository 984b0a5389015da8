package wire

import "github.com/shopspring/decimal"

type Carrier struct {
	CarrierID                         string          `json:"carrier_id"`
	CarrierCode                       string          `json:"carrier_code"`
	AccountNumber                     string          `json:"account_number"`
	RequiresFundedAmount              bool            `json:"requires_funded_amount"`
	Balance                           decimal.Decimal `json:"balance"`
	Nickname                          string          `json:"nickname"`
	FriendlyName                      string          `json:"friendly_name"`
	Primary                           bool            `json:"primary"`
	HasMultiPackageSupportingServices bool            `json:"has_multi_package_supporting_services"`
	SupportsLabelMessages             bool            `json:"supports_label_messages"`
	Services                          []Service       `json:"services"`
	Packages                          []PackageType   `json:"packages"`
	Options                           []CarrierOption `json:"options"`
}

type Service struct {
	CarrierID               string `json:"carrier_id"`
	CarrierCode             string `json:"carrier_code"`
	ServiceCode             string `json:"service_code"`
	Name                    string `json:"name"`
	Domestic                bool   `json:"domestic"`
	International           bool   `json:"international"`
	IsMultiPackageSupported bool   `json:"is_multi_package_supported"`
}

type PackageType struct {
	PackageID   string      `json:"package_id"`
	PackageCode string      `json:"package_code"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Dimensions  *Dimensions `json:"dimensions,omitempty"`
}

type CarrierOption struct {
	Name         string `json:"name"`
	DefaultValue string `json:"default_value"`
	Description  string `json:"description"`
}

// ListCarriersResponse is the GET /v1/carriers body. The list fields of the
// carrier responses are pointers so an absent key can be told apart from an
// empty list.
type ListCarriersResponse struct {
	Carriers  *[]Carrier `json:"carriers"`
	RequestID string     `json:"request_id"`
	Errors    []Error    `json:"errors"`
}

// ListServicesResponse is the GET /v1/carriers/{id}/services body.
type ListServicesResponse struct {
	Services *[]Service `json:"services"`
}

// ListPackageTypesResponse is the GET /v1/carriers/{id}/packages body.
type ListPackageTypesResponse struct {
	Packages *[]PackageType `json:"packages"`
}

// ListCarrierOptionsResponse is the GET /v1/carriers/{id}/options body.
type ListCarrierOptionsResponse struct {
	Options *[]CarrierOption `json:"options"`
}
