package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/dialpro/apiserver/internal/metrics"
	"github.com/dialpro/apiserver/internal/mq"
	"github.com/google/uuid"
)

// IntentKind names an outbound action request.
type IntentKind string

const (
	IntentPlayRecording     IntentKind = "play_recording"
	IntentDownloadRecording IntentKind = "download_recording"
	IntentAddNote           IntentKind = "add_note"
)

// IntentEvent is the payload published for an outbound action request.
// The core validates the referenced call exists and emits the intent;
// it never performs the requested I/O itself.
type IntentEvent struct {
	ID          string     `json:"id"`
	Kind        IntentKind `json:"kind"`
	CallID      string     `json:"call_id"`
	Note        string     `json:"note,omitempty"`
	RequestedBy string     `json:"requested_by"`
	RequestedAt time.Time  `json:"requested_at"`
}

// IntentPublisher emits intent events on the configured channel. With
// no broker configured it still assigns event IDs and logs the intent,
// so callers behave identically in every environment.
type IntentPublisher struct {
	broker  *mq.MQ
	channel string
	now     func() time.Time
	logger  *slog.Logger
}

// NewIntentPublisher constructs a publisher. broker may be nil.
func NewIntentPublisher(broker *mq.MQ, channel string, logger *slog.Logger) *IntentPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &IntentPublisher{
		broker:  broker,
		channel: channel,
		now:     time.Now,
		logger:  logger,
	}
}

// Publish emits one intent event and returns its ID.
func (p *IntentPublisher) Publish(ctx context.Context, kind IntentKind, callID, note, requestedBy string) (string, error) {
	event := IntentEvent{
		ID:          uuid.NewString(),
		Kind:        kind,
		CallID:      callID,
		Note:        note,
		RequestedBy: requestedBy,
		RequestedAt: p.now(),
	}

	if p.broker != nil {
		attrs := map[string]string{"kind": string(kind)}
		if _, err := p.broker.PublishJSON(ctx, p.channel, event, attrs); err != nil {
			return "", err
		}
	}

	metrics.IntentEventsTotal.WithLabelValues(string(kind)).Inc()
	p.logger.InfoContext(ctx, "intent emitted",
		"event_id", event.ID,
		"kind", kind,
		"call_id", callID,
		"requested_by", requestedBy,
	)
	return event.ID, nil
}
