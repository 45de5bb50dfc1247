package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"ntlango-api/application/ports"
	"ntlango-api/domain/entities"
	"ntlango-api/domain/valueobjects"
	"ntlango-api/interfaces/http/rest/preprocess"
	"ntlango-api/interfaces/http/rest/validation"
	apperrors "ntlango-api/pkg/errors"
	"ntlango-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EventHandler handles event-related HTTP requests. Each request issues
// exactly one repository call; failures are forwarded untransformed to the
// error handler.
type EventHandler struct {
	repo         ports.EventRepository
	publisher    ports.EventPublisher
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(
	repo ports.EventRepository,
	publisher ports.EventPublisher,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *EventHandler {
	return &EventHandler{
		repo:         repo,
		publisher:    publisher,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// CreateEventRequest represents the request body for creating an event
type CreateEventRequest struct {
	Title             string                 `json:"title" validate:"required"`
	Description       string                 `json:"description" validate:"required"`
	StartDate         string                 `json:"startDate,omitempty" validate:"omitempty,iso8601"`
	EndDate           string                 `json:"endDate,omitempty" validate:"omitempty,iso8601"`
	Location          string                 `json:"location,omitempty"`
	Organizers        []string               `json:"organizers,omitempty"`
	EventType         string                 `json:"eventType,omitempty" validate:"omitempty,oneof=Concert Conference Networking Party Sport Workshop Other"`
	EventCategory     string                 `json:"eventCategory,omitempty" validate:"omitempty,oneof=Arts Music Technology Health FoodAndDrink Travel Other"`
	Capacity          *int                   `json:"capacity,omitempty" validate:"omitempty,gte=0"`
	RSVPs             []string               `json:"rSVPs,omitempty"`
	Tags              map[string]string      `json:"tags,omitempty"`
	EventLink         string                 `json:"eventLink,omitempty" validate:"omitempty,url"`
	Status            string                 `json:"status,omitempty" validate:"omitempty,oneof=Cancelled Completed Ongoing Upcoming"`
	Media             map[string]interface{} `json:"media,omitempty"`
	AdditionalDetails map[string]interface{} `json:"additionalDetails,omitempty"`
	Comments          map[string]string      `json:"comments,omitempty"`
	PrivacySetting    string                 `json:"privacySetting,omitempty" validate:"omitempty,oneof=Public Private Invitation"`
}

// UpdateEventRequest represents the request body for a partial event update
type UpdateEventRequest struct {
	Title             *string                 `json:"title,omitempty" validate:"omitempty,min=1"`
	Description       *string                 `json:"description,omitempty" validate:"omitempty,min=1"`
	StartDate         *string                 `json:"startDate,omitempty" validate:"omitempty,iso8601"`
	EndDate           *string                 `json:"endDate,omitempty" validate:"omitempty,iso8601"`
	Location          *string                 `json:"location,omitempty"`
	Organizers        *[]string               `json:"organizers,omitempty"`
	EventType         *string                 `json:"eventType,omitempty" validate:"omitempty,oneof=Concert Conference Networking Party Sport Workshop Other"`
	EventCategory     *string                 `json:"eventCategory,omitempty" validate:"omitempty,oneof=Arts Music Technology Health FoodAndDrink Travel Other"`
	Capacity          *int                    `json:"capacity,omitempty" validate:"omitempty,gte=0"`
	RSVPs             *[]string               `json:"rSVPs,omitempty"`
	Tags              *map[string]string      `json:"tags,omitempty"`
	EventLink         *string                 `json:"eventLink,omitempty" validate:"omitempty,url"`
	Status            *string                 `json:"status,omitempty" validate:"omitempty,oneof=Cancelled Completed Ongoing Upcoming"`
	Media             *map[string]interface{} `json:"media,omitempty"`
	AdditionalDetails *map[string]interface{} `json:"additionalDetails,omitempty"`
	Comments          *map[string]string      `json:"comments,omitempty"`
	PrivacySetting    *string                 `json:"privacySetting,omitempty" validate:"omitempty,oneof=Public Private Invitation"`
}

// CreateEvent handles POST /events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInvalidArgumentError("Invalid request body"))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInvalidArgumentError(err.Error()))
		return
	}

	slug, err := valueobjects.NewSlugFromTitle(req.Title)
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInvalidArgumentError(err.Error()))
		return
	}

	event := &entities.Event{
		EventID:           slug.String(),
		Title:             req.Title,
		Description:       req.Description,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		Location:          req.Location,
		Organizers:        req.Organizers,
		EventType:         entities.EventType(req.EventType),
		EventCategory:     entities.EventCategory(req.EventCategory),
		Capacity:          req.Capacity,
		RSVPs:             req.RSVPs,
		Tags:              req.Tags,
		EventLink:         req.EventLink,
		Status:            entities.EventStatus(req.Status),
		Media:             req.Media,
		AdditionalDetails: req.AdditionalDetails,
		Comments:          req.Comments,
		PrivacySetting:    entities.PrivacySetting(req.PrivacySetting),
	}

	created, err := h.repo.Create(r.Context(), event)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.publisher.Publish(r.Context(), ports.EventCreated, created.EventID, created)

	h.respondJSON(w, http.StatusCreated, created)
}

// GetEventByID handles GET /events/{eventId}
func (h *EventHandler) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	if err := validation.Apply(r.URL.Query(), validation.ReadEventByIDRules()); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	projections := preprocess.Projections(r.URL.Query())

	event, err := h.repo.ReadEventByID(r.Context(), eventID, projections)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, event)
}

// GetEvents handles GET /events
func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	if err := validation.Apply(r.URL.Query(), validation.ReadEventsRules()); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	filters, projections := preprocess.ReadEvents(r.URL.Query())

	events, err := h.repo.ReadEvents(r.Context(), filters, projections)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, events)
}

// UpdateEvent handles PUT /events/{eventId}
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	var req UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInvalidArgumentError("Invalid request body"))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInvalidArgumentError(err.Error()))
		return
	}

	input := &entities.UpdateEventInput{
		Title:             req.Title,
		Description:       req.Description,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		Location:          req.Location,
		Organizers:        req.Organizers,
		EventType:         req.EventType,
		EventCategory:     req.EventCategory,
		Capacity:          req.Capacity,
		RSVPs:             req.RSVPs,
		Tags:              req.Tags,
		EventLink:         req.EventLink,
		Status:            req.Status,
		Media:             req.Media,
		AdditionalDetails: req.AdditionalDetails,
		Comments:          req.Comments,
		PrivacySetting:    req.PrivacySetting,
	}

	if input.IsEmpty() {
		h.errorHandler.Handle(w, r, apperrors.NewInvalidArgumentError("No fields provided for update"))
		return
	}

	updated, err := h.repo.UpdateEvent(r.Context(), eventID, input)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.publisher.Publish(r.Context(), ports.EventUpdated, updated.EventID, updated)

	h.respondJSON(w, http.StatusOK, updated)
}

// DeleteEvent handles DELETE /events/{eventId}
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	deleted, err := h.repo.DeleteEvent(r.Context(), eventID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.publisher.Publish(r.Context(), ports.EventDeleted, deleted.EventID, deleted)

	h.respondJSON(w, http.StatusOK, deleted)
}

// RSVPToEvent handles PUT /events/{eventId}/rsvp
func (h *EventHandler) RSVPToEvent(w http.ResponseWriter, r *http.Request) {
	h.mutateRSVP(w, r, ports.EventRSVPAdded, h.repo.RSVP)
}

// CancelRSVPToEvent handles PUT /events/{eventId}/cancelrsvp
func (h *EventHandler) CancelRSVPToEvent(w http.ResponseWriter, r *http.Request) {
	h.mutateRSVP(w, r, ports.EventRSVPCancelled, h.repo.CancelRSVP)
}

type rsvpMutation func(ctx context.Context, eventID string, userIDs []string) (*entities.Event, error)

// mutateRSVP validates the userIds parameter before any repository call
func (h *EventHandler) mutateRSVP(w http.ResponseWriter, r *http.Request, detailType string, mutate rsvpMutation) {
	eventID := chi.URLParam(r, "eventId")

	userIDs := preprocess.SplitList(r.URL.Query().Get("userIds"))
	if len(userIDs) == 0 {
		h.errorHandler.Handle(w, r, apperrors.NewInvalidArgumentError("userIds is required"))
		return
	}

	updated, err := mutate(r.Context(), eventID, userIDs)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.publisher.Publish(r.Context(), detailType, updated.EventID, updated)

	h.respondJSON(w, http.StatusOK, updated)
}

// respondJSON sends a JSON response
func (h *EventHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
