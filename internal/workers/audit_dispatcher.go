package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"incidentTrust/internal/domain"
	"incidentTrust/internal/metrics"
	"incidentTrust/internal/redis"
)

const popTimeout = 5 * time.Second

// AuditSource yields queued audit events. BRPop returns redis.ErrQueueEmpty
// when nothing arrived within the timeout.
type AuditSource interface {
	BRPop(ctx context.Context, timeout time.Duration) (domain.AuditEvent, error)
}

type AuditDispatcherConfig struct {
	URL      string
	Timeout  time.Duration
	Retries  int
	PoolSize int
	// Backoff is the base delay between delivery attempts; attempt n waits n*Backoff.
	Backoff time.Duration
}

// AuditDispatcher drains the audit queue and POSTs every event to an HTTP
// sink. Delivery is at-most-once per dequeue: an event that exhausts its
// retries is logged and dropped.
type AuditDispatcher struct {
	logger  *slog.Logger
	cfg     AuditDispatcherConfig
	source  AuditSource
	metrics *metrics.Metrics
	http    *http.Client
}

func NewAuditDispatcher(logger *slog.Logger, cfg AuditDispatcherConfig, source AuditSource, m *metrics.Metrics) *AuditDispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Retries <= 0 {
		cfg.Retries = 3
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 1
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = time.Second
	}
	return &AuditDispatcher{
		logger:  logger,
		cfg:     cfg,
		source:  source,
		metrics: m,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// Run blocks until ctx is cancelled and every worker has returned.
func (d *AuditDispatcher) Run(ctx context.Context) {
	d.logger.Info("audit dispatcher started", slog.String("url", d.cfg.URL), slog.Int("workers", d.cfg.PoolSize))

	var wg sync.WaitGroup
	for i := 0; i < d.cfg.PoolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.worker(ctx)
		}()
	}
	wg.Wait()

	d.logger.Info("audit dispatcher stopped", slog.String("reason", context.Cause(ctx).Error()))
}

func (d *AuditDispatcher) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ev, err := d.source.BRPop(ctx, popTimeout)
		if err != nil {
			if errors.Is(err, redis.ErrQueueEmpty) || ctx.Err() != nil {
				continue
			}
			d.logger.Error("audit BRPop failed", slog.Any("error", err))
			if !sleep(ctx, 500*time.Millisecond) {
				return
			}
			continue
		}

		d.deliver(ctx, ev)
	}
}

func (d *AuditDispatcher) deliver(ctx context.Context, ev domain.AuditEvent) {
	body, err := json.Marshal(ev)
	if err != nil {
		d.metrics.AuditDelivery("dropped")
		d.logger.Error("marshal audit event failed", slog.String("error", err.Error()))
		return
	}

	for attempt := 1; attempt <= d.cfg.Retries; attempt++ {
		err := d.post(ctx, body)
		if err == nil {
			d.metrics.AuditDelivery("ok")
			return
		}
		if ctx.Err() != nil {
			d.metrics.AuditDelivery("dropped")
			d.logger.Info("stop audit retries due to context cancel", slog.String("event_id", ev.ID.String()))
			return
		}

		d.logger.Warn("audit delivery failed",
			slog.Int("attempt", attempt),
			slog.String("event_id", ev.ID.String()),
			slog.String("reason", err.Error()),
		)
		if attempt < d.cfg.Retries && !sleep(ctx, time.Duration(attempt)*d.cfg.Backoff) {
			break
		}
	}

	d.metrics.AuditDelivery("dropped")
	d.logger.Error("audit event dropped",
		slog.String("event_id", ev.ID.String()),
		slog.String("action", string(ev.Action)),
	)
}

func (d *AuditDispatcher) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.http.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sink responded %s", resp.Status)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
