package domain

// OrderPlacedEvent states that an order number is durably committed and ready
// for downstream processing. Emitted at most once per successful placement.
type OrderPlacedEvent struct {
	OrderNumber string `json:"orderNumber"`
}
