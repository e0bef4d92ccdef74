package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshalEnvelope(t *testing.T, routingKey string) []byte {
	t.Helper()
	payload, err := json.Marshal(Envelope{
		EventID:       uuid.New(),
		AggregateID:   uuid.New(),
		AggregateType: "Memo",
		RoutingKey:    routingKey,
		OccurredAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	return payload
}

func TestInProcessBus_Publish(t *testing.T) {
	t.Run("dispatches to matching subscriber", func(t *testing.T) {
		bus := NewInProcessBus(nil)

		var received []Envelope
		bus.Subscribe("memo.accepted", func(ctx context.Context, event Envelope) error {
			received = append(received, event)
			return nil
		})

		err := bus.Publish(context.Background(), "memo.accepted", marshalEnvelope(t, "memo.accepted"))

		require.NoError(t, err)
		require.Len(t, received, 1)
		assert.Equal(t, "memo.accepted", received[0].RoutingKey)
	})

	t.Run("does not dispatch to non-matching subscriber", func(t *testing.T) {
		bus := NewInProcessBus(nil)

		called := false
		bus.Subscribe("memo.rejected", func(ctx context.Context, event Envelope) error {
			called = true
			return nil
		})

		err := bus.Publish(context.Background(), "memo.accepted", marshalEnvelope(t, "memo.accepted"))

		require.NoError(t, err)
		assert.False(t, called)
	})

	t.Run("empty key subscribes to everything", func(t *testing.T) {
		bus := NewInProcessBus(nil)

		count := 0
		bus.Subscribe("", func(ctx context.Context, event Envelope) error {
			count++
			return nil
		})

		require.NoError(t, bus.Publish(context.Background(), "memo.accepted", marshalEnvelope(t, "memo.accepted")))
		require.NoError(t, bus.Publish(context.Background(), "day.rolled_over", marshalEnvelope(t, "day.rolled_over")))

		assert.Equal(t, 2, count)
	})

	t.Run("handler failure does not fail publish", func(t *testing.T) {
		bus := NewInProcessBus(nil)

		bus.Subscribe("memo.completed", func(ctx context.Context, event Envelope) error {
			return errors.New("consumer broke")
		})

		err := bus.Publish(context.Background(), "memo.completed", marshalEnvelope(t, "memo.completed"))
		assert.NoError(t, err)
	})

	t.Run("malformed payload is skipped", func(t *testing.T) {
		bus := NewInProcessBus(nil)

		err := bus.Publish(context.Background(), "memo.accepted", []byte("{not json"))
		assert.NoError(t, err)
	})
}
