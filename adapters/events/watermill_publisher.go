package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/layer-3/goplus/core"
	"github.com/layer-3/goplus/ports"
)

// TopicCredentialRefreshed carries CredentialRefreshedEvent payloads
const TopicCredentialRefreshed = "goplus.credential.refreshed"

// CredentialRefreshedEvent is the wire form of core.CredentialRefreshed
type CredentialRefreshedEvent struct {
	AppKey    string    `json:"app_key"`
	ExpiresAt time.Time `json:"expires_at"`
	Source    string    `json:"source"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     TopicCredentialRefreshed,
	}
}

// PublishCredentialRefreshed publishes a refresh event
func (p *WatermillPublisher) PublishCredentialRefreshed(ctx context.Context, event core.CredentialRefreshed) error {
	payload, err := json.Marshal(CredentialRefreshedEvent{
		AppKey:    event.AppKey,
		ExpiresAt: event.ExpiresAt.UTC(),
		Source:    string(event.Source),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
