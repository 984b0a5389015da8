package shipengine

import (
	"slices"
	"strings"
	"time"

	"github.com/dukerupert/shipengine/internal/wire"
	"github.com/shopspring/decimal"
)

// Money is an amount in a given currency. Amounts are exact decimals.
type Money struct {
	Currency string
	Amount   decimal.Decimal
}

// Add returns m + o. The currency of m wins when m is non-zero.
func (m Money) Add(o Money) Money {
	currency := m.Currency
	if currency == "" {
		currency = o.Currency
	}
	return Money{Currency: currency, Amount: m.Amount.Add(o.Amount)}
}

func (m Money) String() string {
	return m.Amount.StringFixed(2) + " " + strings.ToUpper(m.Currency)
}

func (m Money) toWire() wire.MonetaryValue {
	return wire.MonetaryValue{Currency: m.Currency, Amount: m.Amount}
}

func moneyFromWire(w wire.MonetaryValue) Money {
	return Money{Currency: w.Currency, Amount: w.Amount}
}

type WeightUnit string

const (
	Pound    WeightUnit = "pound"
	Ounce    WeightUnit = "ounce"
	Gram     WeightUnit = "gram"
	Kilogram WeightUnit = "kilogram"
)

type Weight struct {
	Value float64
	Unit  WeightUnit
}

type DimensionUnit string

const (
	Inch       DimensionUnit = "inch"
	Centimeter DimensionUnit = "centimeter"
)

type Dimensions struct {
	Unit   DimensionUnit
	Length float64
	Width  float64
	Height float64
}

func (d *Dimensions) toWire() *wire.Dimensions {
	if d == nil {
		return nil
	}
	return &wire.Dimensions{
		Unit:   string(d.Unit),
		Length: d.Length,
		Width:  d.Width,
		Height: d.Height,
	}
}

func dimensionsFromWire(w *wire.Dimensions) *Dimensions {
	if w == nil {
		return nil
	}
	return &Dimensions{
		Unit:   DimensionUnit(w.Unit),
		Length: w.Length,
		Width:  w.Width,
		Height: w.Height,
	}
}

// Package is a physical parcel in a shipment.
type Package struct {
	PackageCode  string // optional carrier package type, e.g. "flat_rate_envelope"
	Weight       Weight
	Dimensions   *Dimensions
	InsuredValue *Money
}

func (p Package) toWire() wire.Package {
	w := wire.Package{
		PackageCode: p.PackageCode,
		Weight:      wire.Weight{Value: p.Weight.Value, Unit: string(p.Weight.Unit)},
		Dimensions:  p.Dimensions.toWire(),
	}
	if p.InsuredValue != nil {
		v := p.InsuredValue.toWire()
		w.InsuredValue = &v
	}
	return w
}

// Shipment describes what is being shipped, from where and to where. It is
// the input for both rating and label creation.
type Shipment struct {
	ShipFrom     Address
	ShipTo       Address
	Packages     []Package
	CarrierID    string    // required for labels
	ServiceCode  string    // required for labels
	ShipDate     time.Time // zero means the provider's default (today)
	Confirmation string
}

func (s Shipment) toWire() wire.Shipment {
	w := wire.Shipment{
		CarrierID:    s.CarrierID,
		ServiceCode:  s.ServiceCode,
		ShipTo:       s.ShipTo.toWire(),
		ShipFrom:     s.ShipFrom.toWire(),
		Confirmation: s.Confirmation,
		Packages:     make([]wire.Package, len(s.Packages)),
	}
	if !s.ShipDate.IsZero() {
		w.ShipDate = s.ShipDate.Format(time.DateOnly)
	}
	for i, p := range s.Packages {
		w.Packages[i] = p.toWire()
	}
	return w
}

// RateOptions is the set of carriers to request rates from.
type RateOptions struct {
	CarrierIDs []string
}

// NewRateOptions builds RateOptions from carrier ids, dropping blanks and
// duplicates while keeping the first occurrence order.
func NewRateOptions(carrierIDs ...string) RateOptions {
	seen := make(map[string]bool, len(carrierIDs))
	ids := make([]string, 0, len(carrierIDs))
	for _, id := range carrierIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return RateOptions{CarrierIDs: ids}
}

// IsEmpty reports whether no usable carrier id is present.
func (o RateOptions) IsEmpty() bool {
	return len(NewRateOptions(o.CarrierIDs...).CarrierIDs) == 0
}

func (o RateOptions) toWire() wire.RateOptions {
	return wire.RateOptions{CarrierIDs: NewRateOptions(o.CarrierIDs...).CarrierIDs}
}

// Rate is one priced shipping option.
type Rate struct {
	ID                    string
	Type                  string
	CarrierID             string
	CarrierCode           string
	CarrierNickname       string
	CarrierFriendlyName   string
	ServiceType           string
	ServiceCode           string
	PackageType           string
	ShippingAmount        Money
	InsuranceAmount       Money
	ConfirmationAmount    Money
	OtherAmount           Money
	DeliveryDays          int
	CarrierDeliveryDays   string
	EstimatedDeliveryDate time.Time
	ShipDate              time.Time
	Guaranteed            bool
	Negotiated            bool
	Trackable             bool
	ValidationStatus      string
	WarningMessages       []string
	ErrorMessages         []string
}

// Total is the sum of every charge on the rate.
func (r Rate) Total() Money {
	return r.ShippingAmount.
		Add(r.InsuranceAmount).
		Add(r.ConfirmationAmount).
		Add(r.OtherAmount)
}

func rateFromWire(w wire.Rate) Rate {
	return Rate{
		ID:                    w.RateID,
		Type:                  w.RateType,
		CarrierID:             w.CarrierID,
		CarrierCode:           w.CarrierCode,
		CarrierNickname:       w.CarrierNickname,
		CarrierFriendlyName:   w.CarrierFriendlyName,
		ServiceType:           w.ServiceType,
		ServiceCode:           w.ServiceCode,
		PackageType:           w.PackageType,
		ShippingAmount:        moneyFromWire(w.ShippingAmount),
		InsuranceAmount:       moneyFromWire(w.InsuranceAmount),
		ConfirmationAmount:    moneyFromWire(w.ConfirmationAmount),
		OtherAmount:           moneyFromWire(w.OtherAmount),
		DeliveryDays:          w.DeliveryDays,
		CarrierDeliveryDays:   w.CarrierDeliveryDays,
		EstimatedDeliveryDate: parseTime(w.EstimatedDeliveryDate),
		ShipDate:              parseTime(w.ShipDate),
		Guaranteed:            w.GuaranteedService,
		Negotiated:            w.NegotiatedRate,
		Trackable:             w.Trackable,
		ValidationStatus:      w.ValidationStatus,
		WarningMessages:       w.WarningMessages,
		ErrorMessages:         w.ErrorMessages,
	}
}

func ratesFromWire(in []wire.Rate) []Rate {
	out := make([]Rate, len(in))
	for i, r := range in {
		out[i] = rateFromWire(r)
	}
	return out
}

// RateResponse holds the quotes returned for a shipment.
type RateResponse struct {
	ShipmentID    string
	RateRequestID string
	Status        string
	CreatedAt     time.Time
	Rates         []Rate
	InvalidRates  []Rate
	Errors        []ErrorDetail
}

// ByService returns the rates whose service code is one of codes.
func (r *RateResponse) ByService(codes ...string) []Rate {
	var filtered []Rate
	for _, rate := range r.Rates {
		if slices.Contains(codes, rate.ServiceCode) {
			filtered = append(filtered, rate)
		}
	}
	return filtered
}

// Cheapest returns the valid rate with the lowest total, or false when there are none.
func (r *RateResponse) Cheapest() (Rate, bool) {
	if len(r.Rates) == 0 {
		return Rate{}, false
	}
	best := r.Rates[0]
	for _, rate := range r.Rates[1:] {
		if rate.Total().Amount.LessThan(best.Total().Amount) {
			best = rate
		}
	}
	return best, true
}

// rateResponseFromWire expects w.RateResponse to be set.
func rateResponseFromWire(w wire.GetRatesResponse) *RateResponse {
	rr := w.RateResponse
	shipmentID := rr.ShipmentID
	if shipmentID == "" {
		shipmentID = w.ShipmentID
	}
	return &RateResponse{
		ShipmentID:    shipmentID,
		RateRequestID: rr.RateRequestID,
		Status:        rr.Status,
		CreatedAt:     parseTime(rr.CreatedAt),
		Rates:         ratesFromWire(rr.Rates),
		InvalidRates:  ratesFromWire(rr.InvalidRates),
		Errors:        errorDetailsFromWire(rr.Errors),
	}
}

func errorDetailsFromWire(in []wire.Error) []ErrorDetail {
	if len(in) == 0 {
		return nil
	}
	out := make([]ErrorDetail, len(in))
	for i, e := range in {
		out[i] = ErrorDetail{
			Source:  e.ErrorSource,
			Type:    e.ErrorType,
			Code:    e.ErrorCode,
			Message: e.Message,
		}
	}
	return out
}

// parseTime accepts the timestamp and date layouts ShipEngine returns.
// Anything else maps to the zero time.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
