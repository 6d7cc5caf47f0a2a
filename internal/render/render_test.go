package render

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"incidentTrust/pkg/e"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{e.Validation("bad"), http.StatusBadRequest},
		{e.NotFound("gone"), http.StatusNotFound},
		{e.Transition("nope"), http.StatusConflict},
		{e.StaleState("moved"), http.StatusConflict},
		{e.DuplicateVote("twice"), http.StatusConflict},
		{e.Conflict("race"), http.StatusConflict},
		{e.LimitExceeded("quota"), http.StatusTooManyRequests},
		{e.Infrastructure("op", errors.New("down")), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestError_RendersCodeAndHint(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/incidents", nil)

	Error(rr, req, logger, e.LimitExceeded("guest action quota exhausted"))

	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, e.CodeLimitExceeded, body.Code)
	assert.Equal(t, "register to continue", body.Hint)
}

func TestError_HidesInternalDetails(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/incidents/x", nil)

	Error(rr, req, logger, errors.New("pq: password authentication failed"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, e.CodeInternal, body.Code)
	assert.Equal(t, "Internal Server Error", body.Error)
}
