package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"
)

// PubSubHandler receives record messages from a Pub/Sub subscription and
// feeds them to the ingestor.
type PubSubHandler struct {
	client           *pubsub.Client
	subscriber       *pubsub.Subscriber
	subscriptionName string
	ingestor         *Ingestor
	logger           zerolog.Logger
}

// PubSubConfig holds configuration for the Pub/Sub handler.
type PubSubConfig struct {
	ProjectID        string
	SubscriptionName string
	Ingestor         *Ingestor
	Logger           zerolog.Logger
}

// NewPubSubHandler creates a new Pub/Sub handler.
func NewPubSubHandler(ctx context.Context, cfg PubSubConfig) (*PubSubHandler, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	subscriber := client.Subscriber(cfg.SubscriptionName)

	// Configure receive settings.
	subscriber.ReceiveSettings.MaxOutstandingMessages = 50
	subscriber.ReceiveSettings.MaxExtension = 10 * time.Minute

	return &PubSubHandler{
		client:           client,
		subscriber:       subscriber,
		subscriptionName: cfg.SubscriptionName,
		ingestor:         cfg.Ingestor,
		logger:           cfg.Logger,
	}, nil
}

// Start begins processing Pub/Sub messages.
func (h *PubSubHandler) Start(ctx context.Context) error {
	h.logger.Info().
		Str("subscription", h.subscriptionName).
		Msg("starting record ingest handler")

	return h.subscriber.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		h.handleMessage(ctx, msg)
	})
}

// Close closes the Pub/Sub client.
func (h *PubSubHandler) Close() error {
	return h.client.Close()
}

func (h *PubSubHandler) handleMessage(ctx context.Context, msg *pubsub.Message) {
	startTime := time.Now()

	logger := h.logger.With().
		Str("message_id", msg.ID).
		Str("publish_time", msg.PublishTime.Format(time.RFC3339)).
		Logger()

	logger.Debug().Msg("received record message")

	var record RecordMessage
	if err := json.Unmarshal(msg.Data, &record); err != nil {
		logger.Error().Err(err).Msg("failed to parse message")
		msg.Ack() // Malformed messages can never succeed; drop them.
		return
	}

	if err := h.ingestor.Ingest(ctx, &record); err != nil {
		if errors.Is(err, ErrInvalidMessage) {
			logger.Warn().Err(err).Str("kind", record.Kind).Msg("dropping invalid record")
			msg.Ack() // Ack invalid messages to prevent redelivery.
			return
		}
		logger.Error().Err(err).Str("kind", record.Kind).Msg("record ingest failed")
		msg.Nack()
		return
	}

	logger.Info().
		Str("kind", record.Kind).
		Dur("duration", time.Since(startTime)).
		Msg("record ingested")

	msg.Ack()
}
