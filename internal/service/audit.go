package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"incidentTrust/internal/domain"
	"incidentTrust/internal/metrics"

	"github.com/google/uuid"
)

const defaultAuditTimeout = 2 * time.Second

// Auditor invokes an AuditHook fire-and-forget. A slow or failing hook never
// blocks or fails the operation that emitted the event.
type Auditor struct {
	hook    AuditHook
	logger  *slog.Logger
	metrics *metrics.Metrics
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewAuditor(hook AuditHook, logger *slog.Logger, m *metrics.Metrics) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{hook: hook, logger: logger, metrics: m, timeout: defaultAuditTimeout}
}

func (a *Auditor) Emit(ctx context.Context, ev domain.AuditEvent) {
	if a == nil || a.hook == nil {
		return
	}
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				a.metrics.AuditDropped()
				a.logger.Error("audit hook panicked",
					slog.String("action", string(ev.Action)),
					slog.String("panic", fmt.Sprint(r)),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()

		if err := a.hook.Record(ctx, ev); err != nil {
			a.metrics.AuditDropped()
			a.logger.Error("audit hook failed",
				slog.String("action", string(ev.Action)),
				slog.String("incident_id", ev.IncidentID.String()),
				slog.Any("error", err),
			)
		}
	}()
}

// Wait blocks until every emitted event has been handed to the hook.
func (a *Auditor) Wait() {
	if a == nil {
		return
	}
	a.wg.Wait()
}

// LogAuditHook records events to the structured log only.
type LogAuditHook struct {
	logger *slog.Logger
}

func NewLogAuditHook(logger *slog.Logger) *LogAuditHook {
	return &LogAuditHook{logger: logger}
}

func (h *LogAuditHook) Record(_ context.Context, ev domain.AuditEvent) error {
	h.logger.Info("audit",
		slog.String("action", string(ev.Action)),
		slog.String("incident_id", ev.IncidentID.String()),
		slog.String("actor", ev.Actor.Key()),
		slog.String("from", string(ev.From)),
		slog.String("to", string(ev.To)),
		slog.Time("at", ev.At),
	)
	return nil
}
