package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// Handler consumes a decoded event envelope.
type Handler func(ctx context.Context, event Envelope) error

// InProcessBus is an in-memory event bus for local mode (no RabbitMQ).
// Events are delivered synchronously to subscribed handlers.
type InProcessBus struct {
	mu       sync.Mutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

// NewInProcessBus creates a new in-process event bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for a routing key. The empty key subscribes
// to every event.
func (b *InProcessBus) Subscribe(routingKey string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[routingKey] = append(b.handlers[routingKey], h)
}

// Publish decodes the payload and dispatches it synchronously. Handler
// failures are logged, never propagated: local-mode publishing must not
// fail the operation that raised the event.
func (b *InProcessBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	var event Envelope
	if err := json.Unmarshal(payload, &event); err != nil {
		b.logger.Error("failed to unmarshal event payload", "routing_key", routingKey, "error", err)
		return nil
	}
	if event.RoutingKey == "" {
		event.RoutingKey = routingKey
	}

	b.mu.Lock()
	targets := make([]Handler, 0, len(b.handlers[routingKey])+len(b.handlers[""]))
	targets = append(targets, b.handlers[routingKey]...)
	targets = append(targets, b.handlers[""]...)
	b.mu.Unlock()

	for _, h := range targets {
		if err := h(ctx, event); err != nil {
			b.logger.Error("event handler failed",
				"routing_key", routingKey,
				"event_id", event.EventID,
				"error", err,
			)
		}
	}
	return nil
}

// Close is a no-op for the in-process bus.
func (b *InProcessBus) Close() error {
	return nil
}
