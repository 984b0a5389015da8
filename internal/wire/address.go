// Package wire holds the JSON shapes exchanged with the ShipEngine v1 API.
// Field names and tags mirror the provider's documented payloads exactly;
// the shipengine package maps these to and from its domain objects.
package wire

// Address is the ShipEngine address object used by validation, rating and labels.
type Address struct {
	Name                        string `json:"name,omitempty"`
	Phone                       string `json:"phone,omitempty"`
	CompanyName                 string `json:"company_name,omitempty"`
	AddressLine1                string `json:"address_line1"`
	AddressLine2                string `json:"address_line2,omitempty"`
	AddressLine3                string `json:"address_line3,omitempty"`
	CityLocality                string `json:"city_locality"`
	StateProvince               string `json:"state_province"`
	PostalCode                  string `json:"postal_code"`
	CountryCode                 string `json:"country_code"`
	AddressResidentialIndicator string `json:"address_residential_indicator,omitempty"`
}

// ResponseMessage is an informational, warning or error message attached to a result.
type ResponseMessage struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	DetailCode string `json:"detail_code"`
}

// AddressValidationResult is one element of the POST /v1/addresses/validate response array.
type AddressValidationResult struct {
	Status          string            `json:"status"`
	OriginalAddress Address           `json:"original_address"`
	MatchedAddress  *Address          `json:"matched_address"`
	Messages        []ResponseMessage `json:"messages"`
}
