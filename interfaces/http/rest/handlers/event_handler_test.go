package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ntlango-api/application/ports"
	"ntlango-api/domain/entities"
	apperrors "ntlango-api/pkg/errors"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockEventRepository struct {
	mock.Mock
}

func (m *mockEventRepository) Create(ctx context.Context, event *entities.Event) (*entities.Event, error) {
	args := m.Called(ctx, event)
	if out := args.Get(0); out != nil {
		return out.(*entities.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEventRepository) ReadEventByID(ctx context.Context, eventID string, projections []string) (*entities.Event, error) {
	args := m.Called(ctx, eventID, projections)
	if out := args.Get(0); out != nil {
		return out.(*entities.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEventRepository) ReadEvents(ctx context.Context, filters ports.EventFilters, projections []string) ([]*entities.Event, error) {
	args := m.Called(ctx, filters, projections)
	if out := args.Get(0); out != nil {
		return out.([]*entities.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEventRepository) UpdateEvent(ctx context.Context, eventID string, input *entities.UpdateEventInput) (*entities.Event, error) {
	args := m.Called(ctx, eventID, input)
	if out := args.Get(0); out != nil {
		return out.(*entities.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEventRepository) DeleteEvent(ctx context.Context, eventID string) (*entities.Event, error) {
	args := m.Called(ctx, eventID)
	if out := args.Get(0); out != nil {
		return out.(*entities.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEventRepository) RSVP(ctx context.Context, eventID string, userIDs []string) (*entities.Event, error) {
	args := m.Called(ctx, eventID, userIDs)
	if out := args.Get(0); out != nil {
		return out.(*entities.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEventRepository) CancelRSVP(ctx context.Context, eventID string, userIDs []string) (*entities.Event, error) {
	args := m.Called(ctx, eventID, userIDs)
	if out := args.Get(0); out != nil {
		return out.(*entities.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, detailType string, eventID string, detail interface{}) {
	m.Called(ctx, detailType, eventID, detail)
}

func newTestEventRouter(t *testing.T) (http.Handler, *mockEventRepository, *mockPublisher) {
	t.Helper()

	repo := &mockEventRepository{}
	publisher := &mockPublisher{}
	logger := zap.NewNop()
	handler := NewEventHandler(repo, publisher, apperrors.NewErrorHandler(logger, false), logger)

	router := chi.NewRouter()
	router.Route("/events", func(r chi.Router) {
		r.Post("/", handler.CreateEvent)
		r.Get("/", handler.GetEvents)
		r.Get("/{eventId}", handler.GetEventByID)
		r.Put("/{eventId}", handler.UpdateEvent)
		r.Delete("/{eventId}", handler.DeleteEvent)
		r.Put("/{eventId}/rsvp", handler.RSVPToEvent)
		r.Put("/{eventId}/cancelrsvp", handler.CancelRSVPToEvent)
	})

	return router, repo, publisher
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateEventDerivesSlugAndReturns201(t *testing.T) {
	router, repo, publisher := newTestEventRouter(t)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *entities.Event) bool {
		return e.EventID == "sample-event" && e.Title == "Sample Event"
	})).Return(&entities.Event{EventID: "sample-event", Title: "Sample Event", Description: "d"}, nil)
	publisher.On("Publish", mock.Anything, ports.EventCreated, "sample-event", mock.Anything).Return()

	req := httptest.NewRequest(http.MethodPost, "/events",
		strings.NewReader(`{"title":"Sample Event","description":"d"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "sample-event", decodeBody(t, rec)["_id"])
	repo.AssertNumberOfCalls(t, "Create", 1)
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestCreateEventMissingTitleIs400BeforeRepository(t *testing.T) {
	router, repo, _ := newTestEventRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/events",
		strings.NewReader(`{"description":"d"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateEventBadStartDateIs400(t *testing.T) {
	router, repo, _ := newTestEventRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/events",
		strings.NewReader(`{"title":"t","description":"d","startDate":"tomorrow"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["message"], "ISO8601")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateEventDuplicateSlugIs400(t *testing.T) {
	router, repo, publisher := newTestEventRouter(t)

	repo.On("Create", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewInvalidArgumentError("(eventId = sample-event), already exists"))

	req := httptest.NewRequest(http.MethodPost, "/events",
		strings.NewReader(`{"title":"Sample Event","description":"d"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "(eventId = sample-event), already exists", decodeBody(t, rec)["message"])
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetEventByIDForwardsProjections(t *testing.T) {
	router, repo, _ := newTestEventRouter(t)

	repo.On("ReadEventByID", mock.Anything, "sample-event", []string{"title", "description"}).
		Return(&entities.Event{EventID: "sample-event", Title: "Sample Event"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/events/sample-event?projections=title,description", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestGetEventByIDMissingIs404(t *testing.T) {
	router, repo, _ := newTestEventRouter(t)

	repo.On("ReadEventByID", mock.Anything, "ghost", mock.Anything).
		Return(nil, apperrors.NewResourceNotFoundError("Event not found"))

	req := httptest.NewRequest(http.MethodGet, "/events/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Event not found", decodeBody(t, rec)["message"])
	repo.AssertNumberOfCalls(t, "ReadEventByID", 1)
}

func TestGetEventsEmptyQueryMeansEmptyFilters(t *testing.T) {
	router, repo, _ := newTestEventRouter(t)

	repo.On("ReadEvents", mock.Anything, mock.MatchedBy(func(f ports.EventFilters) bool {
		return f.IsEmpty()
	}), mock.Anything).Return([]*entities.Event{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestGetEventsInvalidEventTypeIs400BeforeRepository(t *testing.T) {
	router, repo, _ := newTestEventRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/events?eventType=Rave", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "ReadEvents", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateEventReturnsUpdatedDocument(t *testing.T) {
	router, repo, publisher := newTestEventRouter(t)

	repo.On("UpdateEvent", mock.Anything, "sample-event", mock.MatchedBy(func(in *entities.UpdateEventInput) bool {
		return in.Title != nil && *in.Title == "New Title" && in.Description == nil
	})).Return(&entities.Event{EventID: "sample-event", Title: "New Title", Description: "d"}, nil)
	publisher.On("Publish", mock.Anything, ports.EventUpdated, "sample-event", mock.Anything).Return()

	req := httptest.NewRequest(http.MethodPut, "/events/sample-event",
		strings.NewReader(`{"title":"New Title"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "New Title", decodeBody(t, rec)["title"])
}

func TestUpdateEventEmptyBodyIs400BeforeRepository(t *testing.T) {
	router, repo, publisher := newTestEventRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/events/sample-event", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No fields provided for update", decodeBody(t, rec)["message"])
	repo.AssertNotCalled(t, "UpdateEvent", mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteMissingEventIs404WithOneRepositoryCall(t *testing.T) {
	router, repo, publisher := newTestEventRouter(t)

	repo.On("DeleteEvent", mock.Anything, "ghost").
		Return(nil, apperrors.NewResourceNotFoundError("Event not found"))

	req := httptest.NewRequest(http.MethodDelete, "/events/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	repo.AssertNumberOfCalls(t, "DeleteEvent", 1)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRSVPMissingUserIdsIs400BeforeRepository(t *testing.T) {
	router, repo, _ := newTestEventRouter(t)

	for _, target := range []string{"/events/sample-event/rsvp", "/events/sample-event/cancelrsvp"} {
		req := httptest.NewRequest(http.MethodPut, target, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, "userIds is required", decodeBody(t, rec)["message"], target)
	}

	repo.AssertNotCalled(t, "RSVP", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CancelRSVP", mock.Anything, mock.Anything, mock.Anything)
}

func TestRSVPSplitsUserIdsAndReturnsUpdatedDocument(t *testing.T) {
	router, repo, publisher := newTestEventRouter(t)

	updated := &entities.Event{EventID: "sample-event", Title: "t", Description: "d", RSVPs: []string{"u1", "u2"}}
	repo.On("RSVP", mock.Anything, "sample-event", []string{"u1", "u2"}).Return(updated, nil)
	publisher.On("Publish", mock.Anything, ports.EventRSVPAdded, "sample-event", mock.Anything).Return()

	req := httptest.NewRequest(http.MethodPut, "/events/sample-event/rsvp?userIds=u1,u2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.ElementsMatch(t, []interface{}{"u1", "u2"}, body["rSVPs"])
	repo.AssertNumberOfCalls(t, "RSVP", 1)
}

func TestCancelRSVPForwardsToRepository(t *testing.T) {
	router, repo, publisher := newTestEventRouter(t)

	updated := &entities.Event{EventID: "sample-event", Title: "t", Description: "d"}
	repo.On("CancelRSVP", mock.Anything, "sample-event", []string{"u1"}).Return(updated, nil)
	publisher.On("Publish", mock.Anything, ports.EventRSVPCancelled, "sample-event", mock.Anything).Return()

	req := httptest.NewRequest(http.MethodPut, "/events/sample-event/cancelrsvp?userIds=u1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertNumberOfCalls(t, "CancelRSVP", 1)
}
