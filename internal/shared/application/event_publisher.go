package application

import (
	"context"
	"encoding/json"
	"log/slog"

	sharedDomain "github.com/felixgeelhaar/daybreak/internal/shared/domain"
	"github.com/felixgeelhaar/daybreak/internal/shared/infrastructure/eventbus"
)

// PublishEvents serializes an aggregate's uncommitted events and hands them
// to the publisher. Publishing is best-effort: a broker outage must never
// fail the user's reaction, so errors are logged and swallowed.
func PublishEvents(ctx context.Context, pub eventbus.Publisher, logger *slog.Logger, agg sharedDomain.AggregateRoot) {
	if pub == nil {
		return
	}
	for _, event := range agg.DomainEvents() {
		payload, err := json.Marshal(eventbus.Envelope{
			EventID:       event.EventID(),
			AggregateID:   event.AggregateID(),
			AggregateType: event.AggregateType(),
			RoutingKey:    event.RoutingKey(),
			OccurredAt:    event.OccurredAt(),
		})
		if err != nil {
			logger.Error("failed to marshal domain event", "routing_key", event.RoutingKey(), "error", err)
			continue
		}
		if err := pub.Publish(ctx, event.RoutingKey(), payload); err != nil {
			logger.Error("failed to publish domain event", "routing_key", event.RoutingKey(), "error", err)
		}
	}
	agg.ClearDomainEvents()
}
