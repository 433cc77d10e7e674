package ports

import (
	"context"

	"github.com/layer-3/goplus/core"
)

// EventPublisher publishes events to notify other instances
type EventPublisher interface {
	PublishCredentialRefreshed(ctx context.Context, event core.CredentialRefreshed) error
}
