package wire

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type MonetaryValue struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// MarshalJSON writes the amount as a JSON number; decimal quotes it by default
// and ShipEngine rejects string amounts.
func (m MonetaryValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Currency string      `json:"currency"`
		Amount   json.Number `json:"amount"`
	}{
		Currency: m.Currency,
		Amount:   json.Number(m.Amount.String()),
	})
}

type Weight struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type Dimensions struct {
	Unit   string  `json:"unit"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Package struct {
	PackageCode  string         `json:"package_code,omitempty"`
	Weight       Weight         `json:"weight"`
	Dimensions   *Dimensions    `json:"dimensions,omitempty"`
	InsuredValue *MonetaryValue `json:"insured_value,omitempty"`
}

type Shipment struct {
	ShipmentID   string    `json:"shipment_id,omitempty"`
	CarrierID    string    `json:"carrier_id,omitempty"`
	ServiceCode  string    `json:"service_code,omitempty"`
	ShipDate     string    `json:"ship_date,omitempty"`
	ShipTo       Address   `json:"ship_to"`
	ShipFrom     Address   `json:"ship_from"`
	Confirmation string    `json:"confirmation,omitempty"`
	Packages     []Package `json:"packages"`
}

type RateOptions struct {
	CarrierIDs []string `json:"carrier_ids"`
}

// GetRatesRequest is the POST /v1/rates body.
type GetRatesRequest struct {
	Shipment    Shipment    `json:"shipment"`
	RateOptions RateOptions `json:"rate_options"`
}

type Rate struct {
	RateID                string        `json:"rate_id"`
	RateType              string        `json:"rate_type"`
	CarrierID             string        `json:"carrier_id"`
	ShippingAmount        MonetaryValue `json:"shipping_amount"`
	InsuranceAmount       MonetaryValue `json:"insurance_amount"`
	ConfirmationAmount    MonetaryValue `json:"confirmation_amount"`
	OtherAmount           MonetaryValue `json:"other_amount"`
	PackageType           string        `json:"package_type"`
	DeliveryDays          int           `json:"delivery_days"`
	GuaranteedService     bool          `json:"guaranteed_service"`
	EstimatedDeliveryDate string        `json:"estimated_delivery_date"`
	CarrierDeliveryDays   string        `json:"carrier_delivery_days"`
	ShipDate              string        `json:"ship_date"`
	NegotiatedRate        bool          `json:"negotiated_rate"`
	ServiceType           string        `json:"service_type"`
	ServiceCode           string        `json:"service_code"`
	Trackable             bool          `json:"trackable"`
	CarrierCode           string        `json:"carrier_code"`
	CarrierNickname       string        `json:"carrier_nickname"`
	CarrierFriendlyName   string        `json:"carrier_friendly_name"`
	ValidationStatus      string        `json:"validation_status"`
	WarningMessages       []string      `json:"warning_messages"`
	ErrorMessages         []string      `json:"error_messages"`
}

type RateResponse struct {
	Rates         []Rate  `json:"rates"`
	InvalidRates  []Rate  `json:"invalid_rates"`
	RateRequestID string  `json:"rate_request_id"`
	ShipmentID    string  `json:"shipment_id"`
	CreatedAt     string  `json:"created_at"`
	Status        string  `json:"status"`
	Errors        []Error `json:"errors"`
}

// GetRatesResponse is the POST /v1/rates body. The echoed shipment fields are
// not needed by callers and are left undecoded.
type GetRatesResponse struct {
	ShipmentID   string        `json:"shipment_id"`
	RateResponse *RateResponse `json:"rate_response"`
}
