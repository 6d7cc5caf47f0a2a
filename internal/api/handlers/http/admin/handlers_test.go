package admin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"incidentTrust/internal/api/handlers/http/admin"
	mock_admin "incidentTrust/internal/api/handlers/http/admin/mocks"
	"incidentTrust/internal/domain"
	"incidentTrust/internal/middleware"
	"incidentTrust/internal/render"
	"incidentTrust/pkg/e"
)

var official = domain.RegisteredVoter("official-1")

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func addChiURLParam(r *http.Request, key, val string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func asOfficial(r *http.Request) *http.Request {
	ctx := middleware.WithVoter(r.Context(), official)
	return r.WithContext(middleware.WithRole(ctx, middleware.RoleOfficial))
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

func newHandler(ctrl *gomock.Controller) (*admin.Handler, *mock_admin.MockWorkflow, *mock_admin.MockGuestGrants) {
	wf := mock_admin.NewMockWorkflow(ctrl)
	guests := mock_admin.NewMockGuestGrants(ctrl)
	return admin.NewHandler(newTestLogger(), wf, guests), wf, guests
}

func TestTransitionIncident_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, wf, _ := newHandler(ctrl)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/incidents/"+id.String()+"/transitions",
		bytes.NewBufferString(`{"status":"verified","reason":"confirmed on site"}`))
	req = asOfficial(addChiURLParam(req, "id", id.String()))
	rr := httptest.NewRecorder()

	wf.EXPECT().
		TransitionStatus(gomock.Any(), id, domain.TransitionRequest{Status: domain.StatusVerified, Reason: "confirmed on site"}, official).
		Return(&domain.Incident{ID: id, Status: domain.StatusVerified}, nil).
		Times(1)

	h.TransitionIncident(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
	got := decodeJSON[domain.Incident](t, rr)
	if got.Status != domain.StatusVerified {
		t.Fatalf("expected status verified, got %s", got.Status)
	}
}

func TestTransitionIncident_InvalidID_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newHandler(ctrl)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/incidents/bad/transitions", bytes.NewBufferString(`{"status":"verified"}`))
	req = asOfficial(addChiURLParam(req, "id", "not-a-uuid"))
	rr := httptest.NewRecorder()

	h.TransitionIncident(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestTransitionIncident_UnknownStatus_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newHandler(ctrl)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"status":"teleported"}`))
	req = asOfficial(addChiURLParam(req, "id", id.String()))
	rr := httptest.NewRecorder()

	h.TransitionIncident(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestTransitionIncident_Rejected_409(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		err  error
		code string
	}{
		"not adjacent": {e.Transition("reported -> in_progress is not allowed"), e.CodeTransition},
		"stale state":  {e.StaleState("status moved"), e.CodeStaleState},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			h, wf, _ := newHandler(ctrl)
			id := uuid.New()

			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"status":"in_progress"}`))
			req = asOfficial(addChiURLParam(req, "id", id.String()))
			rr := httptest.NewRecorder()

			wf.EXPECT().TransitionStatus(gomock.Any(), id, gomock.Any(), official).Return(nil, tc.err).Times(1)

			h.TransitionIncident(rr, req)

			if rr.Code != http.StatusConflict {
				t.Fatalf("expected %d got %d body=%s", http.StatusConflict, rr.Code, rr.Body.String())
			}
			if body := decodeJSON[render.ErrorBody](t, rr); body.Code != tc.code {
				t.Fatalf("expected code %s got %s", tc.code, body.Code)
			}
		})
	}
}

func TestTransitionIncident_NoActor_401(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newHandler(ctrl)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"status":"verified"}`))
	req = addChiURLParam(req, "id", id.String())
	rr := httptest.NewRecorder()

	h.TransitionIncident(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d got %d body=%s", http.StatusUnauthorized, rr.Code, rr.Body.String())
	}
}

func TestRecomputeScore_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, wf, _ := newHandler(ctrl)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = asOfficial(addChiURLParam(req, "id", id.String()))
	rr := httptest.NewRecorder()

	wf.EXPECT().RecomputeScore(gomock.Any(), id).Return(35, nil).Times(1)

	h.RecomputeScore(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
	got := decodeJSON[map[string]any](t, rr)
	if int(got["verification_score"].(float64)) != 35 {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestRecomputeScore_NotFound_404(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, wf, _ := newHandler(ctrl)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = asOfficial(addChiURLParam(req, "id", id.String()))
	rr := httptest.NewRecorder()

	wf.EXPECT().RecomputeScore(gomock.Any(), id).Return(0, e.NotFound("incident %s", id)).Times(1)

	h.RecomputeScore(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected %d got %d body=%s", http.StatusNotFound, rr.Code, rr.Body.String())
	}
}

func TestListIncidents_Defaults_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, wf, _ := newHandler(ctrl)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/incidents", nil)
	rr := httptest.NewRecorder()

	wf.EXPECT().
		ListIncidents(gomock.Any(), domain.ListIncidentsRequest{Page: 1, Limit: 20}).
		Return(&domain.ListIncidentsResponse{Incidents: []*domain.Incident{}, Page: 1, Limit: 20}, nil).
		Times(1)

	h.ListIncidents(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
	resp := decodeJSON[map[string]any](t, rr)
	if int(resp["page"].(float64)) != 1 || int(resp["limit"].(float64)) != 20 {
		t.Fatalf("unexpected pagination: %+v", resp)
	}
}

func TestListIncidents_LimitClampedTo100_WithStatus(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, wf, _ := newHandler(ctrl)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/incidents?page=2&limit=500&status=verified", nil)
	rr := httptest.NewRecorder()

	wf.EXPECT().
		ListIncidents(gomock.Any(), domain.ListIncidentsRequest{Page: 2, Limit: 100, Status: domain.StatusVerified}).
		Return(&domain.ListIncidentsResponse{Incidents: []*domain.Incident{}, Page: 2, Limit: 100}, nil).
		Times(1)

	h.ListIncidents(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
}

func TestGrantGuestActions_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, guests := newHandler(ctrl)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/guests/guest-1/grants", bytes.NewBufferString(`{"actions":5}`))
	req = addChiURLParam(req, "id", "guest-1")
	rr := httptest.NewRecorder()

	guests.EXPECT().
		GrantGuestActions(gomock.Any(), "guest-1", 5).
		Return(&domain.Guest{ID: "guest-1", ActionCount: 10, MaxActions: 15}, nil).
		Times(1)

	h.GrantGuestActions(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
	got := decodeJSON[domain.GuestQuota](t, rr)
	if got.Remaining != 5 || got.MaxActions != 15 {
		t.Fatalf("unexpected quota: %+v", got)
	}
}

func TestGrantGuestActions_InvalidBody_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newHandler(ctrl)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"actions":0}`))
	req = addChiURLParam(req, "id", "guest-1")
	rr := httptest.NewRecorder()

	h.GrantGuestActions(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}
