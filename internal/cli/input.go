package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/dukerupert/shipengine"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// shipmentFile is the YAML layout accepted by --shipment. Addresses are raw
// mappings and go through shipengine.AddressFromMap.
type shipmentFile struct {
	CarrierID    string         `yaml:"carrier_id"`
	ServiceCode  string         `yaml:"service_code"`
	ShipDate     string         `yaml:"ship_date"`
	Confirmation string         `yaml:"confirmation"`
	ShipFrom     addressMapping `yaml:"ship_from"`
	ShipTo       addressMapping `yaml:"ship_to"`
	Packages     []packageFile  `yaml:"packages"`
}

// addressMapping is a raw address as written in YAML. Scalars keep their
// source text, so "postal_code: 02134" stays "02134" instead of decoding
// as an int.
type addressMapping map[string]any

func (m *addressMapping) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: address must be a mapping", node.Line)
	}

	out := make(addressMapping, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := resolveAlias(node.Content[i])
		val, err := scalarText(node.Content[i+1])
		if err != nil {
			return err
		}
		out[key.Value] = val
	}
	*m = out
	return nil
}

// scalarText returns a scalar's text, a list of scalar texts for a sequence,
// and nil for null. Anything else is decoded as is and left for
// AddressFromMap to reject.
func scalarText(node *yaml.Node) (any, error) {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return nil, nil
		}
		return node.Value, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := scalarText(child)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

type packageFile struct {
	PackageCode string `yaml:"package_code"`
	Weight      struct {
		Value float64 `yaml:"value"`
		Unit  string  `yaml:"unit"`
	} `yaml:"weight"`
	Dimensions *struct {
		Unit   string  `yaml:"unit"`
		Length float64 `yaml:"length"`
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"dimensions"`
	InsuredValue *struct {
		Currency string `yaml:"currency"`
		Amount   string `yaml:"amount"`
	} `yaml:"insured_value"`
}

func parseShipment(data []byte) (shipengine.Shipment, error) {
	var f shipmentFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return shipengine.Shipment{}, fmt.Errorf("parsing shipment: %w", err)
	}

	from, err := shipengine.AddressFromMap(f.ShipFrom)
	if err != nil {
		return shipengine.Shipment{}, fmt.Errorf("ship_from: %w", err)
	}
	to, err := shipengine.AddressFromMap(f.ShipTo)
	if err != nil {
		return shipengine.Shipment{}, fmt.Errorf("ship_to: %w", err)
	}

	s := shipengine.Shipment{
		ShipFrom:     from,
		ShipTo:       to,
		CarrierID:    f.CarrierID,
		ServiceCode:  f.ServiceCode,
		Confirmation: f.Confirmation,
	}

	if f.ShipDate != "" {
		s.ShipDate, err = time.Parse(time.DateOnly, f.ShipDate)
		if err != nil {
			return shipengine.Shipment{}, fmt.Errorf("ship_date must be YYYY-MM-DD: %w", err)
		}
	}

	if len(f.Packages) == 0 {
		return shipengine.Shipment{}, errors.New("shipment needs at least one package")
	}
	for i, p := range f.Packages {
		pkg := shipengine.Package{
			PackageCode: p.PackageCode,
			Weight: shipengine.Weight{
				Value: p.Weight.Value,
				Unit:  shipengine.WeightUnit(p.Weight.Unit),
			},
		}
		if pkg.Weight.Unit == "" {
			pkg.Weight.Unit = shipengine.Ounce
		}
		if p.Dimensions != nil {
			pkg.Dimensions = &shipengine.Dimensions{
				Unit:   shipengine.DimensionUnit(p.Dimensions.Unit),
				Length: p.Dimensions.Length,
				Width:  p.Dimensions.Width,
				Height: p.Dimensions.Height,
			}
		}
		if p.InsuredValue != nil {
			amount, err := decimal.NewFromString(p.InsuredValue.Amount)
			if err != nil {
				return shipengine.Shipment{}, fmt.Errorf("packages[%d].insured_value: %w", i, err)
			}
			pkg.InsuredValue = &shipengine.Money{Currency: p.InsuredValue.Currency, Amount: amount}
		}
		s.Packages = append(s.Packages, pkg)
	}

	return s, nil
}

// parseAddresses reads a YAML list of raw address mappings.
func parseAddresses(data []byte) ([]shipengine.Address, error) {
	var raw []addressMapping
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing addresses: %w", err)
	}

	addrs := make([]shipengine.Address, 0, len(raw))
	for i, m := range raw {
		addr, err := shipengine.AddressFromMap(m)
		if err != nil {
			return nil, fmt.Errorf("address %d: %w", i+1, err)
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}
