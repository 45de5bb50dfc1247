package ports

import (
	"context"

	"ntlango-api/domain/entities"
)

// EventFilters is the normalized form of a list-events query string: a
// conjunction of equality matches plus set-membership matches. An empty
// filter set matches every event.
type EventFilters struct {
	// Equals maps an event field name to a required value.
	Equals map[string]string
	// MemberOf maps a set-valued field (organizers, rSVPs) to a list of
	// identifiers; a document matches when its set intersects the list.
	MemberOf map[string][]string
}

// NewEventFilters creates an empty filter set
func NewEventFilters() EventFilters {
	return EventFilters{
		Equals:   make(map[string]string),
		MemberOf: make(map[string][]string),
	}
}

// IsEmpty reports whether no filter entry has been set
func (f EventFilters) IsEmpty() bool {
	return len(f.Equals) == 0 && len(f.MemberOf) == 0
}

// EventRepository is the sole component permitted to issue document-store
// queries for events. Implementations translate store-level failures into
// the application error taxonomy.
type EventRepository interface {
	// Create inserts a new event document. A uniqueness violation on the
	// identifier surfaces as an invalid-argument error naming the
	// conflicting field and value.
	Create(ctx context.Context, event *entities.Event) (*entities.Event, error)

	// ReadEventByID fetches one event, optionally restricted to the given
	// projection fields. The identifier is always included.
	ReadEventByID(ctx context.Context, eventID string, projections []string) (*entities.Event, error)

	// ReadEvents fetches every event matching the filters. Zero matches is
	// not an error; the result is an empty slice.
	ReadEvents(ctx context.Context, filters EventFilters, projections []string) ([]*entities.Event, error)

	// UpdateEvent applies a partial field replacement and returns the
	// post-update document.
	UpdateEvent(ctx context.Context, eventID string, input *entities.UpdateEventInput) (*entities.Event, error)

	// DeleteEvent removes the document and returns its prior state.
	DeleteEvent(ctx context.Context, eventID string) (*entities.Event, error)

	// RSVP adds user ids to the event's RSVP set (set union, one atomic
	// store update) and returns the updated document.
	RSVP(ctx context.Context, eventID string, userIDs []string) (*entities.Event, error)

	// CancelRSVP removes user ids from the event's RSVP set (set
	// difference, one atomic store update) and returns the updated document.
	CancelRSVP(ctx context.Context, eventID string, userIDs []string) (*entities.Event, error)
}
