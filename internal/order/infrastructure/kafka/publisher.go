package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/microshop/order-service/internal/order/domain"
	"github.com/microshop/order-service/pkg/tracing"
)

// Producer is the part of kafka.Writer the publisher needs.
type Producer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Writer struct {
	*kafka.Writer
}

func NewWriter(brokers []string) *Writer {
	return &Writer{
		Writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

// ErrQueueFull is returned when the outbound queue cannot accept another
// event. The order itself is already committed when this happens.
var ErrQueueFull = errors.New("publish queue full")

// Publisher decouples the placement path from broker latency: Publish enqueues
// into a bounded channel and a single worker drains it toward the broker.
// Delivery is best effort; after the retry budget is spent the event is logged
// and dropped. Recovery of dropped events is an external reconciliation
// concern, not handled here.
type Publisher struct {
	log      *slog.Logger
	producer Producer
	topic    string
	queue    chan kafka.Message
	retries  int
	backoff  time.Duration
}

func NewPublisher(log *slog.Logger, producer Producer, topic string, queueSize int) *Publisher {
	return &Publisher{
		log:      log,
		producer: producer,
		topic:    topic,
		queue:    make(chan kafka.Message, queueSize),
		retries:  3,
		backoff:  250 * time.Millisecond,
	}
}

// Publish hands the event to the outbound worker without waiting for delivery.
// The returned error only ever reports a refused hand-off (full queue), never a
// broker failure.
func (p *Publisher) Publish(ctx context.Context, event domain.OrderPlacedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Topic:   p.topic,
		Key:     []byte(event.OrderNumber),
		Value:   payload,
		Headers: tracing.InjectKafkaHeaders(ctx, nil),
	}

	select {
	case p.queue <- msg:
		return nil
	default:
		p.log.ErrorContext(ctx, "publish queue full, event dropped", "order_number", event.OrderNumber)
		return ErrQueueFull
	}
}

// Run drains the queue until ctx is cancelled, then finishes whatever is still
// buffered before returning.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			p.drain()
			p.log.Info("publisher stopping", "topic", p.topic)
			return nil
		case msg := <-p.queue:
			p.deliver(context.Background(), msg)
		}
	}
}

func (p *Publisher) drain() {
	for {
		select {
		case msg := <-p.queue:
			p.deliver(context.Background(), msg)
		default:
			return
		}
	}
}

func (p *Publisher) deliver(ctx context.Context, msg kafka.Message) {
	var err error
	for attempt := 0; attempt <= p.retries; attempt++ {
		if attempt > 0 {
			time.Sleep(p.backoff * time.Duration(attempt))
		}
		if err = p.producer.WriteMessages(ctx, msg); err == nil {
			p.log.Debug("event delivered", "topic", p.topic, "key", string(msg.Key))
			return
		}
	}
	p.log.Error("event delivery failed, dropping", "topic", p.topic, "key", string(msg.Key), "err", err)
}
