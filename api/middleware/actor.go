package middleware

import (
	"context"
	"net/http"

	"github.com/parkpulse/parkpulse-backend/pkg/logger"
)

// ActorHeader identifies the client across requests. Holds are owned by
// this identity, so the client must send a stable value.
const ActorHeader = "X-Client-Id"

type actorKey struct{}

// Actor stores the client identity from the request header on the
// context. An absent header leaves the actor empty; handlers that need
// one reject the request.
func Actor(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := r.Header.Get(ActorHeader)

			ctx := context.WithValue(r.Context(), actorKey{}, actor)
			if logg != nil && actor != "" {
				ctx = logg.WithActorID(ctx, actor)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorID returns the client identity set by Actor, or "".
func ActorID(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok {
		return actor
	}
	return ""
}
