package shipengine

import (
	"github.com/dukerupert/shipengine/internal/wire"
	"github.com/shopspring/decimal"
)

// Carrier is a shipping provider account connected to the ShipEngine account.
type Carrier struct {
	ID                    string
	Code                  string
	AccountNumber         string
	Nickname              string
	FriendlyName          string
	Primary               bool
	Balance               decimal.Decimal
	RequiresFundedAmount  bool
	SupportsMultiPackage  bool
	SupportsLabelMessages bool
	Services              []Service
	PackageTypes          []PackageType
	Options               []CarrierOption
}

// Service is a carrier delivery service, e.g. "usps_priority_mail".
type Service struct {
	CarrierID     string
	CarrierCode   string
	Code          string
	Name          string
	Domestic      bool
	International bool
	MultiPackage  bool
}

// PackageType is a carrier-defined packaging option.
type PackageType struct {
	ID          string
	Code        string
	Name        string
	Description string
	Dimensions  *Dimensions
}

// CarrierOption is an advanced option a carrier accepts on shipments.
type CarrierOption struct {
	Name         string
	DefaultValue string
	Description  string
}

func carrierFromWire(w wire.Carrier) Carrier {
	c := Carrier{
		ID:                    w.CarrierID,
		Code:                  w.CarrierCode,
		AccountNumber:         w.AccountNumber,
		Nickname:              w.Nickname,
		FriendlyName:          w.FriendlyName,
		Primary:               w.Primary,
		Balance:               w.Balance,
		RequiresFundedAmount:  w.RequiresFundedAmount,
		SupportsMultiPackage:  w.HasMultiPackageSupportingServices,
		SupportsLabelMessages: w.SupportsLabelMessages,
	}
	c.Services = servicesFromWire(w.Services)
	c.PackageTypes = packageTypesFromWire(w.Packages)
	c.Options = carrierOptionsFromWire(w.Options)
	return c
}

func carriersFromWire(in []wire.Carrier) []Carrier {
	out := make([]Carrier, len(in))
	for i, c := range in {
		out[i] = carrierFromWire(c)
	}
	return out
}

func servicesFromWire(in []wire.Service) []Service {
	out := make([]Service, len(in))
	for i, s := range in {
		out[i] = Service{
			CarrierID:     s.CarrierID,
			CarrierCode:   s.CarrierCode,
			Code:          s.ServiceCode,
			Name:          s.Name,
			Domestic:      s.Domestic,
			International: s.International,
			MultiPackage:  s.IsMultiPackageSupported,
		}
	}
	return out
}

func packageTypesFromWire(in []wire.PackageType) []PackageType {
	out := make([]PackageType, len(in))
	for i, p := range in {
		out[i] = PackageType{
			ID:          p.PackageID,
			Code:        p.PackageCode,
			Name:        p.Name,
			Description: p.Description,
			Dimensions:  dimensionsFromWire(p.Dimensions),
		}
	}
	return out
}

func carrierOptionsFromWire(in []wire.CarrierOption) []CarrierOption {
	out := make([]CarrierOption, len(in))
	for i, o := range in {
		out[i] = CarrierOption{
			Name:         o.Name,
			DefaultValue: o.DefaultValue,
			Description:  o.Description,
		}
	}
	return out
}
