package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/stayhive/backend/internal/domain/policy"
)

type contextKey string

const actorKey contextKey = "actor"

// IdentityMiddleware extracts the caller's identity claims injected by the
// authenticating gateway. The core consumes these values and never verifies
// credentials itself.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := policy.Actor{ID: r.Header.Get("X-User-ID")}
		if isAdmin, err := strconv.ParseBool(r.Header.Get("X-User-Admin")); err == nil {
			actor.IsAdmin = isAdmin
		}
		ctx := context.WithValue(r.Context(), actorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext returns the caller extracted by IdentityMiddleware, or an
// anonymous actor.
func ActorFromContext(ctx context.Context) policy.Actor {
	if actor, ok := ctx.Value(actorKey).(policy.Actor); ok {
		return actor
	}
	return policy.Actor{}
}
