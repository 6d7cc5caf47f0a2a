package system_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"incidentTrust/internal/api/handlers/http/system"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSystemHealth_OK(t *testing.T) {
	t.Parallel()

	h := system.NewHandler(newTestLogger(), nil)
	rr := httptest.NewRecorder()

	h.SystemHealth(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("expected 200 ok, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	cases := []struct {
		name   string
		checks map[string]system.Check
		status int
		report map[string]string
	}{
		{"no checks", nil, http.StatusOK, map[string]string{}},
		{"all up", map[string]system.Check{"store": ok, "redis": ok}, http.StatusOK, map[string]string{"store": "ok", "redis": "ok"}},
		{"one down", map[string]system.Check{"store": ok, "redis": down}, http.StatusServiceUnavailable, map[string]string{"store": "ok", "redis": "unavailable"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := system.NewHandler(newTestLogger(), tc.checks)
			rr := httptest.NewRecorder()

			h.Readiness(rr, httptest.NewRequest(http.MethodGet, "/api/v1/ready", nil))

			if rr.Code != tc.status {
				t.Fatalf("expected %d got %d body=%s", tc.status, rr.Code, rr.Body.String())
			}
			var body struct {
				Checks map[string]string `json:"checks"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if len(body.Checks) != len(tc.report) {
				t.Fatalf("expected %v got %v", tc.report, body.Checks)
			}
			for k, v := range tc.report {
				if body.Checks[k] != v {
					t.Fatalf("check %s: expected %s got %s", k, v, body.Checks[k])
				}
			}
		})
	}
}
