package wire

// CreateLabelRequest is the POST /v1/labels body.
type CreateLabelRequest struct {
	Shipment          Shipment `json:"shipment"`
	TestLabel         bool     `json:"test_label"`
	LabelFormat       string   `json:"label_format,omitempty"`
	LabelLayout       string   `json:"label_layout,omitempty"`
	LabelDownloadType string   `json:"label_download_type,omitempty"`
}

// CreateLabelFromRateRequest is the POST /v1/labels/rates/{rate_id} body.
type CreateLabelFromRateRequest struct {
	TestLabel         bool   `json:"test_label"`
	LabelFormat       string `json:"label_format,omitempty"`
	LabelLayout       string `json:"label_layout,omitempty"`
	LabelDownloadType string `json:"label_download_type,omitempty"`
}

type LabelDownload struct {
	Href string `json:"href"`
	PDF  string `json:"pdf"`
	PNG  string `json:"png"`
	ZPL  string `json:"zpl"`
}

type Label struct {
	LabelID        string        `json:"label_id"`
	Status         string        `json:"status"`
	ShipmentID     string        `json:"shipment_id"`
	ShipDate       string        `json:"ship_date"`
	CreatedAt      string        `json:"created_at"`
	ShipmentCost   MonetaryValue `json:"shipment_cost"`
	InsuranceCost  MonetaryValue `json:"insurance_cost"`
	TrackingNumber string        `json:"tracking_number"`
	IsReturnLabel  bool          `json:"is_return_label"`
	Voided         bool          `json:"voided"`
	VoidedAt       string        `json:"voided_at"`
	CarrierID      string        `json:"carrier_id"`
	CarrierCode    string        `json:"carrier_code"`
	ServiceCode    string        `json:"service_code"`
	PackageCode    string        `json:"package_code"`
	LabelFormat    string        `json:"label_format"`
	LabelLayout    string        `json:"label_layout"`
	Trackable      bool          `json:"trackable"`
	TrackingStatus string        `json:"tracking_status"`
	LabelDownload  LabelDownload `json:"label_download"`
}

// VoidLabelResponse is the PUT /v1/labels/{label_id}/void body.
type VoidLabelResponse struct {
	Approved bool   `json:"approved"`
	Message  string `json:"message"`
}

type TrackingEvent struct {
	OccurredAt    string `json:"occurred_at"`
	Description   string `json:"description"`
	CityLocality  string `json:"city_locality"`
	StateProvince string `json:"state_province"`
	PostalCode    string `json:"postal_code"`
	CountryCode   string `json:"country_code"`
	CompanyName   string `json:"company_name"`
	Signer        string `json:"signer"`
	EventCode     string `json:"event_code"`
}

// TrackingInfo is the GET /v1/labels/{label_id}/track body.
type TrackingInfo struct {
	TrackingNumber           string          `json:"tracking_number"`
	StatusCode               string          `json:"status_code"`
	StatusDescription        string          `json:"status_description"`
	CarrierStatusCode        string          `json:"carrier_status_code"`
	CarrierStatusDescription string          `json:"carrier_status_description"`
	ShipDate                 string          `json:"ship_date"`
	EstimatedDeliveryDate    string          `json:"estimated_delivery_date"`
	ActualDeliveryDate       string          `json:"actual_delivery_date"`
	ExceptionDescription     string          `json:"exception_description"`
	Events                   []TrackingEvent `json:"events"`
}
