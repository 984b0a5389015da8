package shipengine

import (
	"maps"
	"slices"
	"strings"

	"github.com/dukerupert/shipengine/internal/wire"
)

// ResidentialIndicator tells carriers whether an address is residential.
type ResidentialIndicator string

const (
	ResidentialUnknown ResidentialIndicator = "unknown"
	ResidentialYes     ResidentialIndicator = "yes"
	ResidentialNo      ResidentialIndicator = "no"
)

// Address represents a physical address for validation, rating or labels.
type Address struct {
	Name        string
	Phone       string
	Company     string
	Line1       string
	Line2       string
	Line3       string
	City        string
	State       string
	PostalCode  string
	Country     string // ISO 3166-1 alpha-2
	Residential ResidentialIndicator
}

// StreetLines returns the non-empty street lines in order.
func (a Address) StreetLines() []string {
	var lines []string
	for _, l := range []string{a.Line1, a.Line2, a.Line3} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// addressKeys maps accepted raw keys onto Address setters. Both the
// provider's field names and a few shorter aliases are accepted.
var addressKeys = map[string]func(*Address, string){
	"name":                          func(a *Address, v string) { a.Name = v },
	"phone":                         func(a *Address, v string) { a.Phone = v },
	"company_name":                  func(a *Address, v string) { a.Company = v },
	"company":                       func(a *Address, v string) { a.Company = v },
	"address_line1":                 func(a *Address, v string) { a.Line1 = v },
	"address_line2":                 func(a *Address, v string) { a.Line2 = v },
	"address_line3":                 func(a *Address, v string) { a.Line3 = v },
	"city_locality":                 func(a *Address, v string) { a.City = v },
	"city":                          func(a *Address, v string) { a.City = v },
	"state_province":                func(a *Address, v string) { a.State = v },
	"state":                         func(a *Address, v string) { a.State = v },
	"postal_code":                   func(a *Address, v string) { a.PostalCode = v },
	"country_code":                  func(a *Address, v string) { a.Country = v },
	"country":                       func(a *Address, v string) { a.Country = v },
	"address_residential_indicator": func(a *Address, v string) { a.Residential = ResidentialIndicator(v) },
}

// AddressFromMap builds an Address from a loosely-typed mapping, such as
// decoded JSON or YAML. This is the explicit adapter step for callers that do
// not hold a typed Address. The "street" key may be a string or a list of up
// to three lines; unknown keys are ignored. Keys are applied in sorted order,
// so a provider field name overrides its shorter alias.
func AddressFromMap(m map[string]any) (Address, error) {
	var addr Address

	for _, key := range slices.Sorted(maps.Keys(m)) {
		raw := m[key]
		if key == "street" {
			if err := setStreet(&addr, raw); err != nil {
				return Address{}, err
			}
			continue
		}

		set, ok := addressKeys[key]
		if !ok {
			continue
		}
		if raw == nil {
			continue
		}
		v, ok := raw.(string)
		if !ok {
			return Address{}, ErrInvalidAddressField(key, raw)
		}
		set(&addr, strings.TrimSpace(v))
	}

	return addr, nil
}

func setStreet(addr *Address, raw any) error {
	var lines []string
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		lines = []string{v}
	case []string:
		lines = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return ErrInvalidAddressField("street", item)
			}
			lines = append(lines, s)
		}
	default:
		return ErrInvalidAddressField("street", raw)
	}

	if len(lines) > 3 {
		return &Error{Code: CodeInvalid, Message: "address supports at most three street lines"}
	}

	targets := []*string{&addr.Line1, &addr.Line2, &addr.Line3}
	for i, l := range lines {
		*targets[i] = strings.TrimSpace(l)
	}
	return nil
}

func (a Address) toWire() wire.Address {
	return wire.Address{
		Name:                        a.Name,
		Phone:                       a.Phone,
		CompanyName:                 a.Company,
		AddressLine1:                a.Line1,
		AddressLine2:                a.Line2,
		AddressLine3:                a.Line3,
		CityLocality:                a.City,
		StateProvince:               a.State,
		PostalCode:                  a.PostalCode,
		CountryCode:                 a.Country,
		AddressResidentialIndicator: string(a.Residential),
	}
}

func addressFromWire(w wire.Address) Address {
	return Address{
		Name:        w.Name,
		Phone:       w.Phone,
		Company:     w.CompanyName,
		Line1:       w.AddressLine1,
		Line2:       w.AddressLine2,
		Line3:       w.AddressLine3,
		City:        w.CityLocality,
		State:       w.StateProvince,
		PostalCode:  w.PostalCode,
		Country:     w.CountryCode,
		Residential: ResidentialIndicator(w.AddressResidentialIndicator),
	}
}

// AddressStatus is the outcome ShipEngine assigns to a validated address.
type AddressStatus string

const (
	AddressVerified   AddressStatus = "verified"
	AddressUnverified AddressStatus = "unverified"
	AddressWarning    AddressStatus = "warning"
	AddressError      AddressStatus = "error"
)

// Message is an informational, warning or error note attached to a result.
type Message struct {
	Code       string
	Message    string
	Type       string
	DetailCode string
}

// VerificationResult is the validation outcome for one input address.
// MatchedAddress holds the normalized form and is nil when none was found.
type VerificationResult struct {
	Status          AddressStatus
	OriginalAddress Address
	MatchedAddress  *Address
	Messages        []Message
}

// IsValid reports whether the address can be shipped to as matched.
func (r VerificationResult) IsValid() bool {
	return r.Status == AddressVerified || r.Status == AddressWarning
}

func verificationResultFromWire(w wire.AddressValidationResult) VerificationResult {
	res := VerificationResult{
		Status:          AddressStatus(w.Status),
		OriginalAddress: addressFromWire(w.OriginalAddress),
		Messages:        messagesFromWire(w.Messages),
	}
	if w.MatchedAddress != nil {
		matched := addressFromWire(*w.MatchedAddress)
		res.MatchedAddress = &matched
	}
	return res
}

func messagesFromWire(in []wire.ResponseMessage) []Message {
	if len(in) == 0 {
		return nil
	}
	out := make([]Message, len(in))
	for i, m := range in {
		out[i] = Message{
			Code:       m.Code,
			Message:    m.Message,
			Type:       m.Type,
			DetailCode: m.DetailCode,
		}
	}
	return out
}
