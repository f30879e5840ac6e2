package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialpro/apiserver/internal/mq"
	"github.com/dialpro/apiserver/internal/services"
)

// fakeBackend queues published messages and replays them to the next
// subscriber.
type fakeBackend struct {
	channel string
	queued  []mq.Message
	handled []error
}

func (b *fakeBackend) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	b.channel = channel
	msg := mq.Message{ID: fmt.Sprintf("m-%d", len(b.queued)+1), Data: data, Attributes: attrs}
	b.queued = append(b.queued, msg)
	return msg.ID, nil
}

func (b *fakeBackend) Subscribe(ctx context.Context, channel string, handler mq.Handler) error {
	b.channel = channel
	for _, msg := range b.queued {
		b.handled = append(b.handled, handler(ctx, msg))
	}
	return nil
}

func (b *fakeBackend) Close() error { return nil }

func TestIntentPublishAndConsumeRoundTrip(t *testing.T) {
	backend := &fakeBackend{}
	broker := mq.New(backend)

	publisher := services.NewIntentPublisher(broker, "call-intents", nil)
	eventID, err := publisher.Publish(context.Background(), services.IntentPlayRecording, "1", "", "admin@company.com")
	require.NoError(t, err)
	require.Len(t, backend.queued, 1)
	assert.Equal(t, "call-intents", backend.channel)
	assert.Equal(t, "play_recording", backend.queued[0].Attributes["kind"])

	var event services.IntentEvent
	require.NoError(t, json.Unmarshal(backend.queued[0].Data, &event))
	assert.Equal(t, eventID, event.ID)
	assert.Equal(t, services.IntentPlayRecording, event.Kind)
	assert.Equal(t, "1", event.CallID)

	consumer := services.NewIntentConsumer(broker, "call-intents", nil)
	require.NoError(t, consumer.Run(context.Background()))
	require.Len(t, backend.handled, 1)
	assert.NoError(t, backend.handled[0])
}

func TestIntentConsumerDropsMalformedPayloads(t *testing.T) {
	backend := &fakeBackend{queued: []mq.Message{{ID: "m-1", Data: []byte("{not json")}}}
	broker := mq.New(backend)

	consumer := services.NewIntentConsumer(broker, "call-intents", nil)
	require.NoError(t, consumer.Run(context.Background()))

	// The bad payload is dropped without a nack.
	require.Len(t, backend.handled, 1)
	assert.NoError(t, backend.handled[0])
}
