package shipengine

import (
	"context"
	"io"
	"time"

	"github.com/dukerupert/shipengine/internal/wire"
)

// LabelFormat is the file format of a label artifact.
type LabelFormat string

const (
	LabelPDF LabelFormat = "pdf"
	LabelPNG LabelFormat = "png"
	LabelZPL LabelFormat = "zpl"
)

// ContentType returns the MIME type used when storing the artifact.
func (f LabelFormat) ContentType() string {
	switch f {
	case LabelPNG:
		return "image/png"
	case LabelZPL:
		return "application/zpl"
	default:
		return "application/pdf"
	}
}

// LabelLayout is the paper size a label is rendered for.
type LabelLayout string

const (
	Layout4x6    LabelLayout = "4x6"
	LayoutLetter LabelLayout = "letter"
)

// LabelOptions controls how a label is purchased and rendered.
// TestLabel is sent to ShipEngine as given; test labels are not charged.
type LabelOptions struct {
	TestLabel    bool
	Format       LabelFormat
	Layout       LabelLayout
	DownloadType string // "url" or "inline"
}

func (o LabelOptions) toWire(s Shipment) wire.CreateLabelRequest {
	return wire.CreateLabelRequest{
		Shipment:          s.toWire(),
		TestLabel:         o.TestLabel,
		LabelFormat:       string(o.Format),
		LabelLayout:       string(o.Layout),
		LabelDownloadType: o.DownloadType,
	}
}

func (o LabelOptions) toWireFromRate() wire.CreateLabelFromRateRequest {
	return wire.CreateLabelFromRateRequest{
		TestLabel:         o.TestLabel,
		LabelFormat:       string(o.Format),
		LabelLayout:       string(o.Layout),
		LabelDownloadType: o.DownloadType,
	}
}

// LabelDownload holds the links to a label's artifacts.
type LabelDownload struct {
	Href string
	PDF  string
	PNG  string
	ZPL  string
}

// For returns the link for format, falling back to Href when format is empty.
func (d LabelDownload) For(format LabelFormat) string {
	switch format {
	case LabelPDF:
		return d.PDF
	case LabelPNG:
		return d.PNG
	case LabelZPL:
		return d.ZPL
	default:
		return d.Href
	}
}

// Label is a purchased shipping label.
type Label struct {
	ID             string
	Status         string
	ShipmentID     string
	ShipDate       time.Time
	CreatedAt      time.Time
	ShipmentCost   Money
	InsuranceCost  Money
	TrackingNumber string
	IsReturn       bool
	Voided         bool
	VoidedAt       time.Time
	CarrierID      string
	CarrierCode    string
	ServiceCode    string
	PackageCode    string
	Format         LabelFormat
	Layout         LabelLayout
	Trackable      bool
	TrackingStatus string
	Download       LabelDownload
}

// TotalCost is the shipment cost plus insurance.
func (l Label) TotalCost() Money {
	return l.ShipmentCost.Add(l.InsuranceCost)
}

func labelFromWire(w wire.Label) *Label {
	return &Label{
		ID:             w.LabelID,
		Status:         w.Status,
		ShipmentID:     w.ShipmentID,
		ShipDate:       parseTime(w.ShipDate),
		CreatedAt:      parseTime(w.CreatedAt),
		ShipmentCost:   moneyFromWire(w.ShipmentCost),
		InsuranceCost:  moneyFromWire(w.InsuranceCost),
		TrackingNumber: w.TrackingNumber,
		IsReturn:       w.IsReturnLabel,
		Voided:         w.Voided,
		VoidedAt:       parseTime(w.VoidedAt),
		CarrierID:      w.CarrierID,
		CarrierCode:    w.CarrierCode,
		ServiceCode:    w.ServiceCode,
		PackageCode:    w.PackageCode,
		Format:         LabelFormat(w.LabelFormat),
		Layout:         LabelLayout(w.LabelLayout),
		Trackable:      w.Trackable,
		TrackingStatus: w.TrackingStatus,
		Download: LabelDownload{
			Href: w.LabelDownload.Href,
			PDF:  w.LabelDownload.PDF,
			PNG:  w.LabelDownload.PNG,
			ZPL:  w.LabelDownload.ZPL,
		},
	}
}

// VoidResult reports whether the carrier accepted a void request.
type VoidResult struct {
	Approved bool
	Message  string
}

// TrackingEvent is one scan or status change reported by the carrier.
type TrackingEvent struct {
	OccurredAt  time.Time
	Description string
	City        string
	State       string
	PostalCode  string
	Country     string
	Company     string
	Signer      string
	EventCode   string
}

// TrackingInfo is the tracking history of a label.
type TrackingInfo struct {
	TrackingNumber           string
	StatusCode               string
	StatusDescription        string
	CarrierStatusCode        string
	CarrierStatusDescription string
	ShipDate                 time.Time
	EstimatedDeliveryDate    time.Time
	ActualDeliveryDate       time.Time
	ExceptionDescription     string
	Events                   []TrackingEvent
}

// Delivered reports whether the carrier has recorded a delivery.
func (t TrackingInfo) Delivered() bool {
	return t.StatusCode == "DE" || !t.ActualDeliveryDate.IsZero()
}

func trackingInfoFromWire(w wire.TrackingInfo) *TrackingInfo {
	info := &TrackingInfo{
		TrackingNumber:           w.TrackingNumber,
		StatusCode:               w.StatusCode,
		StatusDescription:        w.StatusDescription,
		CarrierStatusCode:        w.CarrierStatusCode,
		CarrierStatusDescription: w.CarrierStatusDescription,
		ShipDate:                 parseTime(w.ShipDate),
		EstimatedDeliveryDate:    parseTime(w.EstimatedDeliveryDate),
		ActualDeliveryDate:       parseTime(w.ActualDeliveryDate),
		ExceptionDescription:     w.ExceptionDescription,
	}
	for _, e := range w.Events {
		info.Events = append(info.Events, TrackingEvent{
			OccurredAt:  parseTime(e.OccurredAt),
			Description: e.Description,
			City:        e.CityLocality,
			State:       e.StateProvince,
			PostalCode:  e.PostalCode,
			Country:     e.CountryCode,
			Company:     e.CompanyName,
			Signer:      e.Signer,
			EventCode:   e.EventCode,
		})
	}
	return info
}

// LabelStore receives downloaded label artifacts. internal/storage backends
// satisfy it.
type LabelStore interface {
	Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error)
}

// labelKey is the storage key for a label artifact, e.g. "labels/se-123.pdf".
func labelKey(labelID string, format LabelFormat) string {
	if format == "" {
		format = LabelPDF
	}
	return "labels/" + labelID + "." + string(format)
}
