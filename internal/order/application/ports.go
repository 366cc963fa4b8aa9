package application

import (
	"context"

	"github.com/microshop/order-service/internal/order/domain"
)

type OrderRepository interface {
	Save(ctx context.Context, o domain.Order) error
	GetByNumber(ctx context.Context, orderNumber string) (domain.Order, error)
}

type InventoryClient interface {
	CheckAvailability(ctx context.Context, skuCodes []string) ([]domain.AvailabilityResult, error)
}

// EventPublisher hands the event off for asynchronous delivery. Implementations
// must not block on broker round trips and must keep delivery failures on their
// own error channel; a returned error means the hand-off itself was refused.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.OrderPlacedEvent) error
}
