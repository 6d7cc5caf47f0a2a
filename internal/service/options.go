package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"incidentTrust/internal/domain"
	"incidentTrust/internal/metrics"
	"incidentTrust/pkg/e"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultStoreTimeout    = 3 * time.Second
	defaultDuplicateRadius = 100.0
	readRetries            = 3
	scoreWriteAttempts     = 3
)

type Options struct {
	Logger *slog.Logger
	// Policy holds the scoring weights; nil selects DefaultScoringPolicy.
	Policy                *domain.ScoringPolicy
	StoreTimeout          time.Duration
	DuplicateRadiusMeters float64
	GuestMaxActions       int
	GuestTTL              time.Duration
	Metrics               *metrics.Metrics
	Auditor               *Auditor
	Now                   func() time.Time
	// RetryInterval is the initial backoff for read retries.
	RetryInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Policy == nil {
		p := domain.DefaultScoringPolicy()
		o.Policy = &p
	}
	if o.StoreTimeout <= 0 {
		o.StoreTimeout = defaultStoreTimeout
	}
	if o.DuplicateRadiusMeters <= 0 {
		o.DuplicateRadiusMeters = defaultDuplicateRadius
	}
	if o.GuestMaxActions <= 0 {
		o.GuestMaxActions = domain.DefaultGuestMaxActions
	}
	if o.GuestTTL <= 0 {
		o.GuestTTL = domain.DefaultGuestTTL
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.RetryInterval <= 0 {
		o.RetryInterval = 100 * time.Millisecond
	}
	return o
}

// Validate rejects settings the services cannot run with. Zero values are
// valid and select defaults.
func (o Options) Validate() error {
	if o.Policy != nil {
		if err := o.Policy.Validate(); err != nil {
			return err
		}
	}
	if o.StoreTimeout < 0 {
		return e.Validation("store timeout must not be negative")
	}
	if o.DuplicateRadiusMeters < 0 || o.DuplicateRadiusMeters > domain.MaxNearbyRadiusMeters {
		return e.Validation("duplicate radius must be in [0, %.0f]", domain.MaxNearbyRadiusMeters)
	}
	if o.GuestMaxActions < 0 {
		return e.Validation("guest max actions must not be negative")
	}
	if o.GuestTTL < 0 {
		return e.Validation("guest ttl must not be negative")
	}
	return nil
}

// call runs one store operation under the store timeout. A deadline hit
// inside the store surfaces as an infrastructure error.
func call[T any](ctx context.Context, timeout time.Duration, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := fn(ctx)
	if err != nil {
		if ctx.Err() != nil && !e.IsDomain(err) {
			return res, e.Infrastructure(op, ctx.Err())
		}
		return res, e.WrapError(ctx, op, err)
	}
	return res, nil
}

// retryRead retries read-only operations on infrastructure errors with
// exponential backoff. Domain errors stop immediately.
func retryRead[T any](ctx context.Context, o Options, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = o.RetryInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(b, readRetries), ctx)

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		res, err := call(ctx, o.StoreTimeout, op, fn)
		if err == nil {
			out = res
			return nil
		}
		if !e.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		o.Logger.Warn("read failed, retrying",
			slog.String("op", op),
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)
		return err
	}, policy)
	if err != nil && !e.IsDomain(err) && !e.IsRetryable(err) && !errors.Is(err, e.ErrConcurrencyConflict) {
		err = e.WrapError(ctx, op, err)
	}
	return out, err
}

// scoreKeeper recomputes and persists verification scores. Writes are
// conditional on the upvote count the score was computed from, so a stale
// recompute never overwrites a fresher one.
type scoreKeeper struct {
	store IncidentStore
	opts  Options
}

// refresh returns the persisted score and the incident it was computed from.
// A lost race against a newer upvote mutation is not an error: that mutation
// refreshes the score itself.
func (k scoreKeeper) refresh(ctx context.Context, inc *domain.Incident) (*domain.Incident, error) {
	const op = "service.scoreKeeper.refresh"

	for attempt := 1; ; attempt++ {
		score := domain.Score(inc, *k.opts.Policy, k.opts.Now())
		if score == inc.VerificationScore {
			return inc, nil
		}

		_, err := call(ctx, k.opts.StoreTimeout, op, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, k.store.UpdateScoreIf(ctx, inc.ID, score, inc.UpvoteCount)
		})
		switch {
		case err == nil:
			k.opts.Metrics.ScoreWrite("ok")
			inc.VerificationScore = score
			return inc, nil
		case errors.Is(err, e.ErrConcurrencyConflict) && attempt < scoreWriteAttempts:
			k.opts.Metrics.ScoreWrite("conflict")
			fresh, getErr := call(ctx, k.opts.StoreTimeout, op, func(ctx context.Context) (*domain.Incident, error) {
				return k.store.Get(ctx, inc.ID)
			})
			if getErr != nil {
				return nil, getErr
			}
			inc = fresh
		case errors.Is(err, e.ErrConcurrencyConflict):
			k.opts.Metrics.ScoreWrite("superseded")
			k.opts.Logger.Debug("score write superseded", slog.String("id", inc.ID.String()))
			return inc, nil
		default:
			k.opts.Metrics.ScoreWrite("error")
			return nil, err
		}
	}
}
