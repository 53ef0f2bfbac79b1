package outbound

import (
	"context"
	"time"
)

// ExportStoragePort keeps generated payment reports for later download.
type ExportStoragePort interface {
	Upload(ctx context.Context, key string, content []byte, contentType string) error
	// DownloadURL returns a link to key that stops working after ttl.
	DownloadURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// EventPublisherPort receives payment lifecycle events after finalization.
// Publish errors are logged by the caller and never undo a finalization.
type EventPublisherPort interface {
	Publish(ctx context.Context, event any) error
}
