// Package shipengine is a client for the ShipEngine shipping API.
//
// It covers address validation, carrier discovery, rate quotes and the label
// lifecycle (create, fetch, void, track, download). Every operation takes a
// context and returns typed domain values; the JSON shapes of the API stay
// inside the module.
//
//	client, err := shipengine.New(shipengine.Config{APIKey: os.Getenv("SHIPENGINE_API_KEY")})
//	if err != nil {
//		return err
//	}
//	rates, err := client.GetRates(ctx, shipment, shipengine.NewRateOptions("se-123456"))
//
// Non-2xx responses are returned as *APIError. Argument problems such as an
// empty carrier list are returned as *Error before any request is sent. Use
// ErrorCode to classify either.
package shipengine
