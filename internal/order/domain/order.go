package domain

import "time"

// Order is the aggregate written by the placement workflow. The order number
// is generated once per placement attempt and never reused; after a successful
// save the aggregate is write-once from this workflow's point of view.
type Order struct {
	OrderNumber string
	Items       []OrderLineItem
	CreatedAt   time.Time
}

// OrderLineItem belongs to exactly one Order. The same sku code may appear on
// several line items of one order; lines are never merged.
type OrderLineItem struct {
	SKUCode    string
	Quantity   int
	PriceCents int64
}

func NewOrder(orderNumber string, items []OrderLineItem) Order {
	return Order{
		OrderNumber: orderNumber,
		Items:       items,
		CreatedAt:   time.Now().UTC(),
	}
}

// SKUCodes returns the distinct sku codes of the order's line items in
// first-occurrence order. Duplicate lines contribute one code.
func (o Order) SKUCodes() []string {
	seen := make(map[string]struct{}, len(o.Items))
	codes := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.SKUCode]; ok {
			continue
		}
		seen[item.SKUCode] = struct{}{}
		codes = append(codes, item.SKUCode)
	}
	return codes
}
