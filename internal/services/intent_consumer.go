package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/dialpro/apiserver/internal/metrics"
	"github.com/dialpro/apiserver/internal/mq"
)

// IntentConsumer drains intent events from the broker. The API server
// only publishes intents; the consumer is where a telephony integration
// would act on them. The built-in behavior records and logs each event.
type IntentConsumer struct {
	broker  *mq.MQ
	channel string
	logger  *slog.Logger
}

// NewIntentConsumer constructs a consumer for the given channel.
func NewIntentConsumer(broker *mq.MQ, channel string, logger *slog.Logger) *IntentConsumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &IntentConsumer{broker: broker, channel: channel, logger: logger}
}

// Run blocks consuming events until the context is canceled.
func (c *IntentConsumer) Run(ctx context.Context) error {
	return c.broker.Subscribe(ctx, c.channel, c.handle)
}

func (c *IntentConsumer) handle(ctx context.Context, msg mq.Message) error {
	var event IntentEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		// Malformed payloads are dropped, not requeued.
		c.logger.Warn("dropping malformed intent event", "message_id", msg.ID, "error", err)
		return nil
	}

	metrics.IntentEventsConsumedTotal.WithLabelValues(string(event.Kind)).Inc()
	c.logger.InfoContext(ctx, "intent consumed",
		"event_id", event.ID,
		"kind", event.Kind,
		"call_id", event.CallID,
		"requested_by", event.RequestedBy,
	)
	return nil
}
