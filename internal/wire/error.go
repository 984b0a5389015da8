package wire

// Error is one entry of ShipEngine's "errors" array.
type Error struct {
	ErrorSource string `json:"error_source"`
	ErrorType   string `json:"error_type"`
	ErrorCode   string `json:"error_code"`
	Message     string `json:"message"`
}

// ErrorResponse is the envelope returned with any non-2xx status.
type ErrorResponse struct {
	RequestID string  `json:"request_id"`
	Errors    []Error `json:"errors"`
}
