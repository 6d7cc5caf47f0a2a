package public_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"incidentTrust/internal/api/handlers/http/public"
	mock_public "incidentTrust/internal/api/handlers/http/public/mocks"
	"incidentTrust/internal/domain"
	"incidentTrust/internal/middleware"
	"incidentTrust/internal/render"
	"incidentTrust/pkg/e"
)

var guest = domain.GuestVoter("guest-1")

type fixture struct {
	h         *public.Handler
	incidents *mock_public.MockIncidents
	upvotes   *mock_public.MockUpvotes
	guests    *mock_public.MockGuests
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		incidents: mock_public.NewMockIncidents(ctrl),
		upvotes:   mock_public.NewMockUpvotes(ctrl),
		guests:    mock_public.NewMockGuests(ctrl),
	}
	f.h = public.NewHandler(newTestLogger(), f.incidents, f.upvotes, f.guests)
	return f
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func addChiURLParam(r *http.Request, key, val string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func asVoter(r *http.Request, v domain.VoterIdentity) *http.Request {
	return r.WithContext(middleware.WithVoter(r.Context(), v))
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

func TestCreateIncident_OK_201(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	body := `{"title":"Kitchen fire","type":"fire","lat":37.7749,"lng":-122.4194}`
	req := asVoter(httptest.NewRequest(http.MethodPost, "/api/v1/incidents", bytes.NewBufferString(body)), guest)
	rr := httptest.NewRecorder()

	created := &domain.Incident{ID: uuid.New(), Title: "Kitchen fire", Type: domain.TypeFire, Status: domain.StatusReported}
	existing := &domain.Incident{ID: uuid.New(), Type: domain.TypeFire, Status: domain.StatusVerified}

	f.incidents.EXPECT().
		CreateIncident(gomock.Any(), domain.CreateIncidentRequest{
			Title: "Kitchen fire",
			Type:  domain.TypeFire,
			Lat:   37.7749,
			Lng:   -122.4194,
		}, guest).
		Return(created, []domain.NearbyIncident{{Incident: existing, DistanceMeters: 40}}, nil).
		Times(1)

	f.h.CreateIncident(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected %d got %d body=%s", http.StatusCreated, rr.Code, rr.Body.String())
	}
	got := decodeJSON[domain.CreateIncidentResponse](t, rr)
	if got.Incident == nil || got.Incident.ID != created.ID {
		t.Fatalf("expected created incident in response, got %+v", got.Incident)
	}
	if len(got.DuplicateCandidates) != 1 || got.DuplicateCandidates[0].Incident.ID != existing.ID {
		t.Fatalf("expected one duplicate candidate, got %+v", got.DuplicateCandidates)
	}
}

func TestCreateIncident_InvalidJSON_400(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	req := asVoter(httptest.NewRequest(http.MethodPost, "/api/v1/incidents", bytes.NewBufferString(`{"title":`)), guest)
	rr := httptest.NewRecorder()

	f.h.CreateIncident(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
	if body := decodeJSON[render.ErrorBody](t, rr); body.Code != e.CodeValidation {
		t.Fatalf("expected code %s got %s", e.CodeValidation, body.Code)
	}
}

func TestCreateIncident_InvalidCoordinates_400(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	body := `{"title":"Kitchen fire","type":"fire","lat":95,"lng":0}`
	req := asVoter(httptest.NewRequest(http.MethodPost, "/api/v1/incidents", bytes.NewBufferString(body)), guest)
	rr := httptest.NewRecorder()

	f.h.CreateIncident(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestCreateIncident_NoVoter_401(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	body := `{"title":"Kitchen fire","type":"fire","lat":1,"lng":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/incidents", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	f.h.CreateIncident(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d got %d body=%s", http.StatusUnauthorized, rr.Code, rr.Body.String())
	}
}

func TestGetIncident_NotFound_404(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	id := uuid.New()
	req := addChiURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/incidents/"+id.String(), nil), "id", id.String())
	rr := httptest.NewRecorder()

	f.incidents.EXPECT().GetIncident(gomock.Any(), id).Return(nil, e.NotFound("incident %s", id)).Times(1)

	f.h.GetIncident(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected %d got %d body=%s", http.StatusNotFound, rr.Code, rr.Body.String())
	}
}

func TestGetIncident_InvalidID_400(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	req := addChiURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/incidents/x", nil), "id", "x")
	rr := httptest.NewRecorder()

	f.h.GetIncident(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestNearbyIncidents_OK(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/incidents/nearby?lat=37.77&lng=-122.41&radius_m=500&type=flood&limit=5", nil)
	rr := httptest.NewRecorder()

	match := domain.NearbyIncident{
		Incident:       &domain.Incident{ID: uuid.New(), Type: domain.TypeFlood},
		DistanceMeters: 120.5,
	}
	f.incidents.EXPECT().
		FindNearby(gomock.Any(), domain.NearbyQuery{
			Point:        domain.GeoPoint{Lng: -122.41, Lat: 37.77},
			RadiusMeters: 500,
			Type:         domain.TypeFlood,
			Limit:        5,
		}).
		Return([]domain.NearbyIncident{match}, nil).
		Times(1)

	f.h.NearbyIncidents(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
	got := decodeJSON[map[string]any](t, rr)
	if int(got["count"].(float64)) != 1 {
		t.Fatalf("expected count=1, got %+v", got)
	}
}

func TestNearbyIncidents_BadParams_400(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"missing lat":      "lng=1&radius_m=100",
		"non numeric lng":  "lat=1&lng=east&radius_m=100",
		"lat out of range": "lat=91&lng=1&radius_m=100",
		"zero radius":      "lat=1&lng=1&radius_m=0",
		"radius too large": "lat=1&lng=1&radius_m=50001",
		"unknown type":     "lat=1&lng=1&radius_m=100&type=meteor",
	}
	for name, query := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/incidents/nearby?"+query, nil)
			rr := httptest.NewRecorder()

			f.h.NearbyIncidents(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestAddUpvote_OK_201(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	id := uuid.New()
	req := asVoter(addChiURLParam(httptest.NewRequest(http.MethodPost, "/", nil), "id", id.String()), guest)
	rr := httptest.NewRecorder()

	f.upvotes.EXPECT().
		AddUpvote(gomock.Any(), id, guest).
		Return(&domain.Incident{ID: id, UpvoteCount: 1, VerificationScore: 15}, nil).
		Times(1)

	f.h.AddUpvote(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected %d got %d body=%s", http.StatusCreated, rr.Code, rr.Body.String())
	}
	got := decodeJSON[map[string]any](t, rr)
	if int(got["upvote_count"].(float64)) != 1 || int(got["verification_score"].(float64)) != 15 {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestAddUpvote_Duplicate_409(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	id := uuid.New()
	req := asVoter(addChiURLParam(httptest.NewRequest(http.MethodPost, "/", nil), "id", id.String()), guest)
	rr := httptest.NewRecorder()

	f.upvotes.EXPECT().AddUpvote(gomock.Any(), id, guest).Return(nil, e.DuplicateVote("already upvoted")).Times(1)

	f.h.AddUpvote(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected %d got %d body=%s", http.StatusConflict, rr.Code, rr.Body.String())
	}
	body := decodeJSON[render.ErrorBody](t, rr)
	if body.Code != e.CodeDuplicateVote || body.Hint == "" {
		t.Fatalf("expected duplicate_vote with hint, got %+v", body)
	}
}

func TestAddUpvote_NoVoter_401(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	id := uuid.New()
	req := addChiURLParam(httptest.NewRequest(http.MethodPost, "/", nil), "id", id.String())
	rr := httptest.NewRecorder()

	f.h.AddUpvote(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d got %d body=%s", http.StatusUnauthorized, rr.Code, rr.Body.String())
	}
}

func TestRemoveUpvote_NotVoted_404(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	id := uuid.New()
	req := asVoter(addChiURLParam(httptest.NewRequest(http.MethodDelete, "/", nil), "id", id.String()), guest)
	rr := httptest.NewRecorder()

	f.upvotes.EXPECT().RemoveUpvote(gomock.Any(), id, guest).Return(nil, e.NotFound("no upvote")).Times(1)

	f.h.RemoveUpvote(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected %d got %d body=%s", http.StatusNotFound, rr.Code, rr.Body.String())
	}
}

func TestRegisterGuest_OK_201(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	expires := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	f.guests.EXPECT().
		RegisterGuest(gomock.Any()).
		Return(&domain.Guest{ID: "guest-new", MaxActions: 10, ExpiresAt: expires}, nil).
		Times(1)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/guests", nil)
	rr := httptest.NewRecorder()

	f.h.RegisterGuest(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected %d got %d body=%s", http.StatusCreated, rr.Code, rr.Body.String())
	}
	got := decodeJSON[domain.GuestQuota](t, rr)
	if got.GuestID != "guest-new" || got.Remaining != 10 || !got.ExpiresAt.Equal(expires) {
		t.Fatalf("unexpected quota: %+v", got)
	}
}

func TestGetGuest_Expired_404(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.guests.EXPECT().GetGuest(gomock.Any(), "old").Return(nil, e.NotFound("guest old expired")).Times(1)

	req := addChiURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/guests/old", nil), "id", "old")
	rr := httptest.NewRecorder()

	f.h.GetGuest(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected %d got %d body=%s", http.StatusNotFound, rr.Code, rr.Body.String())
	}
}
