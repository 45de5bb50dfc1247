package entities

import (
	"fmt"
)

// EventStatus is the lifecycle state of an event
type EventStatus string

const (
	EventStatusCancelled EventStatus = "Cancelled"
	EventStatusCompleted EventStatus = "Completed"
	EventStatusOngoing   EventStatus = "Ongoing"
	EventStatusUpcoming  EventStatus = "Upcoming"
)

// EventType categorizes the format of an event
type EventType string

const (
	EventTypeConcert    EventType = "Concert"
	EventTypeConference EventType = "Conference"
	EventTypeNetworking EventType = "Networking"
	EventTypeParty      EventType = "Party"
	EventTypeSport      EventType = "Sport"
	EventTypeWorkshop   EventType = "Workshop"
	EventTypeOther      EventType = "Other"
)

// EventCategory categorizes the topic of an event
type EventCategory string

const (
	EventCategoryArts         EventCategory = "Arts"
	EventCategoryMusic        EventCategory = "Music"
	EventCategoryTechnology   EventCategory = "Technology"
	EventCategoryHealth       EventCategory = "Health"
	EventCategoryFoodAndDrink EventCategory = "FoodAndDrink"
	EventCategoryTravel       EventCategory = "Travel"
	EventCategoryOther        EventCategory = "Other"
)

// PrivacySetting controls who can see an event
type PrivacySetting string

const (
	PrivacyPublic     PrivacySetting = "Public"
	PrivacyPrivate    PrivacySetting = "Private"
	PrivacyInvitation PrivacySetting = "Invitation"
)

// Enumeration value sets, in the order the API documents them.
var (
	EventStatusValues    = []string{"Cancelled", "Completed", "Ongoing", "Upcoming"}
	EventTypeValues      = []string{"Concert", "Conference", "Networking", "Party", "Sport", "Workshop", "Other"}
	EventCategoryValues  = []string{"Arts", "Music", "Technology", "Health", "FoodAndDrink", "Travel", "Other"}
	PrivacySettingValues = []string{"Public", "Private", "Invitation"}
)

// Event is the RSVP-able calendar resource managed by this service.
//
// EventID is the slug of the title, computed once at creation. Organizers
// and RSVPs are stored as DynamoDB string sets so that RSVP mutations can be
// expressed as single atomic set updates.
type Event struct {
	EventID           string                 `json:"_id" dynamodbav:"EventID"`
	Title             string                 `json:"title" dynamodbav:"Title"`
	Description       string                 `json:"description" dynamodbav:"Description"`
	StartDate         string                 `json:"startDate,omitempty" dynamodbav:"StartDate,omitempty"`
	EndDate           string                 `json:"endDate,omitempty" dynamodbav:"EndDate,omitempty"`
	Location          string                 `json:"location,omitempty" dynamodbav:"Location,omitempty"`
	Organizers        []string               `json:"organizers,omitempty" dynamodbav:"Organizers,stringset,omitemptyelem,omitempty"`
	EventType         EventType              `json:"eventType,omitempty" dynamodbav:"EventType,omitempty"`
	EventCategory     EventCategory          `json:"eventCategory,omitempty" dynamodbav:"EventCategory,omitempty"`
	Capacity          *int                   `json:"capacity,omitempty" dynamodbav:"Capacity,omitempty"`
	RSVPs             []string               `json:"rSVPs,omitempty" dynamodbav:"RSVPs,stringset,omitemptyelem,omitempty"`
	Tags              map[string]string      `json:"tags,omitempty" dynamodbav:"Tags,omitempty"`
	EventLink         string                 `json:"eventLink,omitempty" dynamodbav:"EventLink,omitempty"`
	Status            EventStatus            `json:"status,omitempty" dynamodbav:"Status,omitempty"`
	Media             map[string]interface{} `json:"media,omitempty" dynamodbav:"Media,omitempty"`
	AdditionalDetails map[string]interface{} `json:"additionalDetails,omitempty" dynamodbav:"AdditionalDetails,omitempty"`
	Comments          map[string]string      `json:"comments,omitempty" dynamodbav:"Comments,omitempty"`
	PrivacySetting    PrivacySetting         `json:"privacySetting,omitempty" dynamodbav:"PrivacySetting,omitempty"`
	CreatedAt         string                 `json:"createdAt,omitempty" dynamodbav:"CreatedAt,omitempty"`
	UpdatedAt         string                 `json:"updatedAt,omitempty" dynamodbav:"UpdatedAt,omitempty"`
}

// Validate checks the entity-level invariants: title and description always
// present, enumerated fields within their value sets, capacity non-negative.
func (e *Event) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("event id is required")
	}
	if e.Title == "" {
		return fmt.Errorf("title is required")
	}
	if e.Description == "" {
		return fmt.Errorf("description is required")
	}
	if e.Status != "" && !contains(EventStatusValues, string(e.Status)) {
		return fmt.Errorf("invalid status %q", e.Status)
	}
	if e.EventType != "" && !contains(EventTypeValues, string(e.EventType)) {
		return fmt.Errorf("invalid eventType %q", e.EventType)
	}
	if e.EventCategory != "" && !contains(EventCategoryValues, string(e.EventCategory)) {
		return fmt.Errorf("invalid eventCategory %q", e.EventCategory)
	}
	if e.PrivacySetting != "" && !contains(PrivacySettingValues, string(e.PrivacySetting)) {
		return fmt.Errorf("invalid privacySetting %q", e.PrivacySetting)
	}
	if e.Capacity != nil && *e.Capacity < 0 {
		return fmt.Errorf("capacity must be non-negative")
	}
	return nil
}

// NormalizeSets collapses duplicate members in the set-backed fields and
// drops empty sets entirely. The store rejects an empty string set, so an
// empty list and an absent attribute are the same document state.
func (e *Event) NormalizeSets() {
	e.Organizers = NormalizeStringSet(e.Organizers)
	e.RSVPs = NormalizeStringSet(e.RSVPs)
}

// NormalizeStringSet deduplicates members preserving first-seen order and
// returns nil for an empty result.
func NormalizeStringSet(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// HasRSVP reports whether the given user has responded to the event
func (e *Event) HasRSVP(userID string) bool {
	return contains(e.RSVPs, userID)
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

// UpdateEventInput carries a partial field replacement for an event. Nil
// fields are left untouched. The identifier itself is never updatable.
type UpdateEventInput struct {
	Title             *string                 `json:"title,omitempty"`
	Description       *string                 `json:"description,omitempty"`
	StartDate         *string                 `json:"startDate,omitempty"`
	EndDate           *string                 `json:"endDate,omitempty"`
	Location          *string                 `json:"location,omitempty"`
	Organizers        *[]string               `json:"organizers,omitempty"`
	EventType         *string                 `json:"eventType,omitempty"`
	EventCategory     *string                 `json:"eventCategory,omitempty"`
	Capacity          *int                    `json:"capacity,omitempty"`
	RSVPs             *[]string               `json:"rSVPs,omitempty"`
	Tags              *map[string]string      `json:"tags,omitempty"`
	EventLink         *string                 `json:"eventLink,omitempty"`
	Status            *string                 `json:"status,omitempty"`
	Media             *map[string]interface{} `json:"media,omitempty"`
	AdditionalDetails *map[string]interface{} `json:"additionalDetails,omitempty"`
	Comments          *map[string]string      `json:"comments,omitempty"`
	PrivacySetting    *string                 `json:"privacySetting,omitempty"`
}

// IsEmpty reports whether the input carries no field at all
func (in *UpdateEventInput) IsEmpty() bool {
	return in.Title == nil && in.Description == nil && in.StartDate == nil &&
		in.EndDate == nil && in.Location == nil && in.Organizers == nil &&
		in.EventType == nil && in.EventCategory == nil && in.Capacity == nil &&
		in.RSVPs == nil && in.Tags == nil && in.EventLink == nil &&
		in.Status == nil && in.Media == nil && in.AdditionalDetails == nil &&
		in.Comments == nil && in.PrivacySetting == nil
}
