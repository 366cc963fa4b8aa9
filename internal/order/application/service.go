package application

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/microshop/order-service/internal/order/domain"
)

// LineItemInput is one requested line of a placement request. Bounds checking
// happens at the edge; by the time it reaches the service the input is trusted.
type LineItemInput struct {
	SKUCode    string
	Quantity   int
	PriceCents int64
}

type Service struct {
	log    *slog.Logger
	repo   OrderRepository
	inv    InventoryClient
	events EventPublisher
	tracer trace.Tracer
}

func NewService(log *slog.Logger, repo OrderRepository, inv InventoryClient, events EventPublisher) *Service {
	return &Service{
		log:    log,
		repo:   repo,
		inv:    inv,
		events: events,
		tracer: otel.Tracer("order-placement"),
	}
}

// PlaceOrder runs one placement attempt: assemble the order under a fresh
// order number, confirm every distinct sku code is in stock, persist the whole
// aggregate, then hand the placed event off for async delivery. The persistence
// write is the atomicity boundary; if the process dies between commit and
// publish the event is lost and only external reconciliation can recover it.
func (s *Service) PlaceOrder(ctx context.Context, items []LineItemInput) (string, error) {
	order := domain.NewOrder(uuid.NewString(), mapLineItems(items))

	allInStock, err := s.lookupAvailability(ctx, order.SKUCodes())
	if err != nil {
		return "", &AvailabilityError{Err: err}
	}
	if !allInStock {
		return "", ErrOutOfStock
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return "", &StorageError{Err: err}
	}

	// Committed from here on. A publish failure stays inside the publisher and
	// must not alter the result already decided above; WithoutCancel keeps the
	// hand-off alive after the caller's request context ends.
	if err := s.events.Publish(context.WithoutCancel(ctx), domain.OrderPlacedEvent{OrderNumber: order.OrderNumber}); err != nil {
		s.log.ErrorContext(ctx, "order placed event hand-off refused", "order_number", order.OrderNumber, "err", err)
	}

	s.log.InfoContext(ctx, "order placed", "order_number", order.OrderNumber, "line_items", len(order.Items))
	return order.OrderNumber, nil
}

func (s *Service) GetOrder(ctx context.Context, orderNumber string) (domain.Order, error) {
	return s.repo.GetByNumber(ctx, orderNumber)
}

// lookupAvailability wraps the remote query in one span. The span ends on
// every exit path, including lookup failure. An empty sku-code set passes
// vacuously: the zero-line-item order is persisted as requested.
func (s *Service) lookupAvailability(ctx context.Context, skuCodes []string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryServiceLookup")
	defer span.End()

	results, err := s.inv.CheckAvailability(ctx, skuCodes)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "inventory lookup failed")
		return false, err
	}

	inStock := make(map[string]bool, len(results))
	for _, r := range results {
		inStock[r.SKUCode] = r.InStock
	}
	// A requested code the response did not mention counts as not in stock.
	for _, code := range skuCodes {
		if !inStock[code] {
			return false, nil
		}
	}
	return true, nil
}

func mapLineItems(items []LineItemInput) []domain.OrderLineItem {
	out := make([]domain.OrderLineItem, len(items))
	for i, item := range items {
		out[i] = domain.OrderLineItem{
			SKUCode:    item.SKUCode,
			Quantity:   item.Quantity,
			PriceCents: item.PriceCents,
		}
	}
	return out
}
