package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"incidentTrust/internal/domain"
	"incidentTrust/internal/render"
)

const HeaderGuestRemaining = "X-Guest-Actions-Remaining"

type GuestActionConsumer interface {
	TryConsumeGuestAction(ctx context.Context, id string) (*domain.Guest, error)
}

// GuestQuota spends one guest action before a mutating request reaches its
// handler. Registered voters and anonymous callers are not metered.
func GuestQuota(logger *slog.Logger, guests GuestActionConsumer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			voter, ok := VoterFromContext(r.Context())
			if !ok || !voter.IsGuest() {
				next.ServeHTTP(w, r)
				return
			}

			g, err := guests.TryConsumeGuestAction(r.Context(), voter.ID)
			if err != nil {
				render.Error(w, r, logger, err)
				return
			}
			w.Header().Set(HeaderGuestRemaining, strconv.Itoa(g.Remaining()))
			next.ServeHTTP(w, r)
		})
	}
}
