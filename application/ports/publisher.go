package ports

import "context"

// Event lifecycle notification types
const (
	EventCreated       = "EventCreated"
	EventUpdated       = "EventUpdated"
	EventDeleted       = "EventDeleted"
	EventRSVPAdded     = "EventRSVPAdded"
	EventRSVPCancelled = "EventRSVPCancelled"
)

// EventPublisher emits lifecycle notifications after successful event
// mutations. Publishing is best-effort: failures are logged by the
// implementation and never surface to the request path.
type EventPublisher interface {
	Publish(ctx context.Context, detailType string, eventID string, detail interface{})
}
