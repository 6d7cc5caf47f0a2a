package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"incidentTrust/internal/api"
	"incidentTrust/internal/config"
	"incidentTrust/internal/domain"
	"incidentTrust/internal/metrics"
	"incidentTrust/internal/middleware"
	"incidentTrust/internal/render"
	"incidentTrust/internal/service"
	"incidentTrust/internal/storage/memory"
	"incidentTrust/pkg/e"
)

const apiKey = "test-key"

type client struct {
	t      *testing.T
	server *httptest.Server
}

func newClient(t *testing.T, guestActions int) *client {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	reg := prometheus.NewRegistry()
	opts := service.Options{
		Logger:          logger,
		GuestMaxActions: guestActions,
		GuestTTL:        time.Hour,
		Metrics:         metrics.New(reg),
		RetryInterval:   time.Millisecond,
	}
	svc, err := service.New(store, store, opts)
	if err != nil {
		t.Fatalf("service.New: %v", err)
	}
	cfg := &config.Config{
		APIKey:    apiKey,
		RateLimit: config.RateLimitConfig{RPS: 1000, Burst: 1000, TTL: time.Minute},
	}

	srv := httptest.NewServer(api.NewServer(ctx, cfg, logger, svc, nil, reg).Handler())
	t.Cleanup(srv.Close)
	return &client{t: t, server: srv}
}

type call struct {
	method  string
	path    string
	body    string
	headers map[string]string
}

func (c *client) do(req call) (*http.Response, []byte) {
	c.t.Helper()

	var body io.Reader
	if req.body != "" {
		body = strings.NewReader(req.body)
	}
	r, err := http.NewRequest(req.method, c.server.URL+req.path, body)
	if err != nil {
		c.t.Fatalf("NewRequest: %v", err)
	}
	for k, v := range req.headers {
		r.Header.Set(k, v)
	}
	resp, err := c.server.Client().Do(r)
	if err != nil {
		c.t.Fatalf("%s %s: %v", req.method, req.path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func as(v domain.VoterIdentity) map[string]string {
	return map[string]string{
		middleware.HeaderVoterKind: string(v.Kind),
		middleware.HeaderVoterID:   v.ID,
	}
}

func asOfficial() map[string]string {
	h := as(domain.RegisteredVoter("official-1"))
	h[middleware.HeaderRole] = string(middleware.RoleOfficial)
	h[middleware.HeaderAPIKey] = apiKey
	return h
}

func expectStatus(t *testing.T, resp *http.Response, raw []byte, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, raw)
	}
}

func decode(t *testing.T, raw []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
}

func (c *client) registerGuest() domain.VoterIdentity {
	c.t.Helper()
	resp, raw := c.do(call{method: http.MethodPost, path: "/api/v1/guests"})
	expectStatus(c.t, resp, raw, http.StatusCreated)

	var q domain.GuestQuota
	decode(c.t, raw, &q)
	return domain.GuestVoter(q.GuestID)
}

func (c *client) report(v domain.VoterIdentity, lng, lat float64) *domain.Incident {
	c.t.Helper()
	body, err := json.Marshal(domain.CreateIncidentRequest{Title: "Flooded underpass", Type: domain.TypeFlood, Lng: lng, Lat: lat})
	if err != nil {
		c.t.Fatalf("marshal: %v", err)
	}

	resp, raw := c.do(call{method: http.MethodPost, path: "/api/v1/incidents", body: string(body), headers: as(v)})
	expectStatus(c.t, resp, raw, http.StatusCreated)

	var out domain.CreateIncidentResponse
	decode(c.t, raw, &out)
	return out.Incident
}

func TestRouter_GuestReportsAndUpvotes(t *testing.T) {
	c := newClient(t, 10)
	reporter := c.registerGuest()
	voter := c.registerGuest()

	inc := c.report(reporter, 13.4050, 52.5200)
	if inc.Status != domain.StatusReported {
		t.Fatalf("expected status reported, got %s", inc.Status)
	}

	path := "/api/v1/incidents/" + inc.ID.String() + "/upvotes"
	resp, raw := c.do(call{method: http.MethodPost, path: path, headers: as(voter)})
	expectStatus(t, resp, raw, http.StatusCreated)
	if got := resp.Header.Get(middleware.HeaderGuestRemaining); got != "9" {
		t.Fatalf("expected 9 guest actions remaining, got %q", got)
	}

	resp, raw = c.do(call{method: http.MethodPost, path: path, headers: as(voter)})
	expectStatus(t, resp, raw, http.StatusConflict)
	var body render.ErrorBody
	decode(t, raw, &body)
	if body.Code != e.CodeDuplicateVote {
		t.Fatalf("expected code %s, got %s", e.CodeDuplicateVote, body.Code)
	}

	resp, raw = c.do(call{method: http.MethodGet, path: "/api/v1/incidents/" + inc.ID.String()})
	expectStatus(t, resp, raw, http.StatusOK)
	var stored domain.Incident
	decode(t, raw, &stored)
	if stored.UpvoteCount != 1 {
		t.Fatalf("expected 1 upvote, got %d", stored.UpvoteCount)
	}

	resp, raw = c.do(call{method: http.MethodDelete, path: path, headers: as(voter)})
	expectStatus(t, resp, raw, http.StatusOK)
}

func TestRouter_AnonymousCannotMutate(t *testing.T) {
	c := newClient(t, 10)

	resp, raw := c.do(call{method: http.MethodPost, path: "/api/v1/incidents", body: `{"title":"x"}`})
	expectStatus(t, resp, raw, http.StatusUnauthorized)
}

func TestRouter_GuestQuotaExhausted(t *testing.T) {
	c := newClient(t, 1)
	g := c.registerGuest()

	c.report(g, 0, 0)

	resp, raw := c.do(call{
		method:  http.MethodPost,
		path:    "/api/v1/incidents",
		body:    `{"title":"Second report","type":"fire","lat":0,"lng":0}`,
		headers: as(g),
	})
	expectStatus(t, resp, raw, http.StatusTooManyRequests)

	var body render.ErrorBody
	decode(t, raw, &body)
	if body.Code != e.CodeLimitExceeded || body.Hint != "register to continue" {
		t.Fatalf("unexpected error body: %+v", body)
	}
}

func TestRouter_NearbyOrdersByDistance(t *testing.T) {
	c := newClient(t, 10)
	citizen := domain.RegisteredVoter("citizen-1")

	far := c.report(citizen, 0, 0.003)
	near := c.report(citizen, 0, 0.001)
	c.report(citizen, 0, 1)

	resp, raw := c.do(call{method: http.MethodGet, path: "/api/v1/incidents/nearby?lat=0&lng=0&radius_m=1000"})
	expectStatus(t, resp, raw, http.StatusOK)

	var out struct {
		Incidents []domain.NearbyIncident `json:"incidents"`
		Count     int                     `json:"count"`
	}
	decode(t, raw, &out)
	if out.Count != 2 || len(out.Incidents) != 2 {
		t.Fatalf("expected 2 nearby incidents, got %d", out.Count)
	}
	if out.Incidents[0].Incident.ID != near.ID || out.Incidents[1].Incident.ID != far.ID {
		t.Fatalf("expected nearest first, got %s then %s", out.Incidents[0].Incident.ID, out.Incidents[1].Incident.ID)
	}
	if out.Incidents[0].DistanceMeters >= out.Incidents[1].DistanceMeters {
		t.Fatalf("distances not ascending: %f >= %f", out.Incidents[0].DistanceMeters, out.Incidents[1].DistanceMeters)
	}
}

func TestRouter_AdminWorkflow(t *testing.T) {
	c := newClient(t, 10)
	inc := c.report(domain.RegisteredVoter("citizen-1"), 1, 1)
	transitions := "/api/v1/admin/incidents/" + inc.ID.String() + "/transitions"

	t.Run("citizen is forbidden", func(t *testing.T) {
		h := as(domain.RegisteredVoter("citizen-1"))
		h[middleware.HeaderAPIKey] = apiKey
		resp, raw := c.do(call{method: http.MethodPost, path: transitions, body: `{"status":"verified"}`, headers: h})
		expectStatus(t, resp, raw, http.StatusForbidden)
	})

	t.Run("missing api key", func(t *testing.T) {
		h := asOfficial()
		delete(h, middleware.HeaderAPIKey)
		resp, raw := c.do(call{method: http.MethodPost, path: transitions, body: `{"status":"verified"}`, headers: h})
		expectStatus(t, resp, raw, http.StatusUnauthorized)
	})

	t.Run("skipping states is rejected", func(t *testing.T) {
		resp, raw := c.do(call{method: http.MethodPost, path: transitions, body: `{"status":"in_progress"}`, headers: asOfficial()})
		expectStatus(t, resp, raw, http.StatusConflict)
	})

	t.Run("assignee with the wrong status is rejected", func(t *testing.T) {
		resp, raw := c.do(call{method: http.MethodPost, path: transitions, body: `{"status":"verified","assigned_to":{"kind":"registered","id":"crew-7"}}`, headers: asOfficial()})
		expectStatus(t, resp, raw, http.StatusBadRequest)
	})

	t.Run("verify", func(t *testing.T) {
		resp, raw := c.do(call{method: http.MethodPost, path: transitions, body: `{"status":"verified","reason":"seen"}`, headers: asOfficial()})
		expectStatus(t, resp, raw, http.StatusOK)

		var got domain.Incident
		decode(t, raw, &got)
		if got.Status != domain.StatusVerified || len(got.StatusHistory) != 2 || got.VerifiedAt == nil {
			t.Fatalf("unexpected incident after verify: %+v", got)
		}
	})

	t.Run("list filtered by status", func(t *testing.T) {
		resp, raw := c.do(call{method: http.MethodGet, path: "/api/v1/admin/incidents?status=verified", headers: asOfficial()})
		expectStatus(t, resp, raw, http.StatusOK)

		var got domain.ListIncidentsResponse
		decode(t, raw, &got)
		if len(got.Incidents) != 1 || got.Incidents[0].ID != inc.ID {
			t.Fatalf("expected only %s, got %+v", inc.ID, got.Incidents)
		}
	})
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	c := newClient(t, 10)
	c.report(domain.RegisteredVoter("citizen-1"), 1, 1)

	resp, raw := c.do(call{method: http.MethodGet, path: "/api/v1/health"})
	expectStatus(t, resp, raw, http.StatusOK)
	if string(raw) != "ok" {
		t.Fatalf("expected body ok, got %q", raw)
	}

	resp, raw = c.do(call{method: http.MethodGet, path: "/api/v1/ready"})
	expectStatus(t, resp, raw, http.StatusOK)

	resp, raw = c.do(call{method: http.MethodGet, path: "/metrics"})
	expectStatus(t, resp, raw, http.StatusOK)
	if !strings.Contains(string(raw), "incident_trust_") {
		t.Fatalf("expected incident_trust_ metrics in scrape output")
	}
}
