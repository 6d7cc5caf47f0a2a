package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"incidentTrust/internal/domain"
	"incidentTrust/internal/render"
	"incidentTrust/pkg/e"
)

const (
	HeaderVoterKind = "X-Voter-Kind"
	HeaderVoterID   = "X-Voter-ID"
	HeaderRole      = "X-Role"
)

type Role string

const (
	RoleCitizen  Role = "citizen"
	RoleOfficial Role = "official"
	RoleAdmin    Role = "admin"
)

type ctxKey int

const (
	voterKey ctxKey = iota
	roleKey
)

// Identity reads the caller identity set by the trusted upstream. Requests
// without voter headers pass through anonymous; malformed ones are rejected.
func Identity(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			kind := strings.TrimSpace(r.Header.Get(HeaderVoterKind))
			id := strings.TrimSpace(r.Header.Get(HeaderVoterID))
			if kind != "" || id != "" {
				k, err := domain.ParseVoterKind(kind)
				if err != nil {
					render.Error(w, r, logger, err)
					return
				}
				voter := domain.VoterIdentity{Kind: k, ID: id}
				if err := voter.Validate(); err != nil {
					render.Error(w, r, logger, err)
					return
				}
				ctx = WithVoter(ctx, voter)
			}

			role := RoleCitizen
			if raw := strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderRole))); raw != "" {
				role = Role(raw)
				if !slices.Contains([]Role{RoleCitizen, RoleOfficial, RoleAdmin}, role) {
					render.Error(w, r, logger, e.Validation("unknown role %q", raw))
					return
				}
			}
			ctx = context.WithValue(ctx, roleKey, role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithVoter(ctx context.Context, v domain.VoterIdentity) context.Context {
	return context.WithValue(ctx, voterKey, v)
}

func WithRole(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, roleKey, role)
}

func VoterFromContext(ctx context.Context) (domain.VoterIdentity, bool) {
	v, ok := ctx.Value(voterKey).(domain.VoterIdentity)
	return v, ok
}

func RoleFromContext(ctx context.Context) Role {
	if r, ok := ctx.Value(roleKey).(Role); ok {
		return r
	}
	return RoleCitizen
}

// RequireVoter rejects anonymous requests.
func RequireVoter(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := VoterFromContext(r.Context()); !ok {
				render.Fail(w, logger, http.StatusUnauthorized, "unauthenticated", "voter identity required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequireRole(logger *slog.Logger, roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if !slices.Contains(roles, role) {
				logger.Warn("role rejected", slog.String("role", string(role)), slog.String("path", r.URL.Path))
				render.Fail(w, logger, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
