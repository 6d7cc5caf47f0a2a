package workers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"incidentTrust/internal/domain"
	"incidentTrust/internal/metrics"
	"incidentTrust/internal/redis"
)

type chanSource struct {
	events chan domain.AuditEvent
}

func (s *chanSource) BRPop(ctx context.Context, timeout time.Duration) (domain.AuditEvent, error) {
	select {
	case ev := <-s.events:
		return ev, nil
	case <-ctx.Done():
		return domain.AuditEvent{}, ctx.Err()
	case <-time.After(10 * time.Millisecond):
		return domain.AuditEvent{}, redis.ErrQueueEmpty
	}
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestAuditDispatcher_DeliversEvents(t *testing.T) {
	var mu sync.Mutex
	var got []domain.AuditEvent
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev domain.AuditEvent
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mu.Lock()
		got = append(got, ev)
		mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}))
	defer sink.Close()

	src := &chanSource{events: make(chan domain.AuditEvent, 4)}
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		src.events <- domain.AuditEvent{ID: id, Action: domain.AuditUpvoteAdded}
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	d := NewAuditDispatcher(discard(), AuditDispatcherConfig{URL: sink.URL, PoolSize: 2, Backoff: time.Millisecond}, src, m)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	expected := `
# HELP incident_trust_audit_deliveries_total Audit events forwarded to the sink by result
# TYPE incident_trust_audit_deliveries_total counter
incident_trust_audit_deliveries_total{result="ok"} 3
`
	require.Eventually(t, func() bool {
		return testutil.GatherAndCompare(reg, strings.NewReader(expected), "incident_trust_audit_deliveries_total") == nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, len(ids))
	seen := map[uuid.UUID]bool{}
	for _, ev := range got {
		seen[ev.ID] = true
	}
	for _, id := range ids {
		assert.True(t, seen[id], "event %s not delivered", id)
	}
}

func TestAuditDispatcher_RetriesThenDrops(t *testing.T) {
	var calls atomic.Int32
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer sink.Close()

	d := NewAuditDispatcher(discard(), AuditDispatcherConfig{URL: sink.URL, Retries: 3, Backoff: time.Millisecond}, &chanSource{}, nil)
	d.deliver(context.Background(), domain.AuditEvent{ID: uuid.New()})

	assert.EqualValues(t, 3, calls.Load())
}

func TestAuditDispatcher_RecoversAfterTransientFailure(t *testing.T) {
	var calls atomic.Int32
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer sink.Close()

	d := NewAuditDispatcher(discard(), AuditDispatcherConfig{URL: sink.URL, Retries: 5, Backoff: time.Millisecond}, &chanSource{}, nil)
	d.deliver(context.Background(), domain.AuditEvent{ID: uuid.New()})

	assert.EqualValues(t, 2, calls.Load())
}
