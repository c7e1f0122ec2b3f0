package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Priyanshu055/intern-match-backend/internal/policy"
)

var errMissingToken = errors.New("auth: missing bearer token")

// contextKey is an unexported type for context keys in this package.
// Using a package-private type means no other package can read or shadow
// the actor value stored in the request context.
type contextKey string

const actorKey contextKey = "actor"

// RequireAuth enforces authentication on protected routes: it reads the
// bearer token from the Authorization header, validates it, and stores
// the resulting actor in the request context. Missing or invalid tokens
// get 401 and the chain stops; the distinction from 403 matters: 401
// means "we don't know who you are", 403 means "we know, and no".
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := extractActor(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"valid authentication required"}`))
				return
			}

			ctx := context.WithValue(r.Context(), actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromContext retrieves the authenticated actor from the request
// context. Returns (zero, false) if the request never passed RequireAuth.
func ActorFromContext(ctx context.Context) (policy.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(policy.Actor)
	return actor, ok
}

// extractActor pulls the JWT out of the Authorization header and
// validates it.
func extractActor(r *http.Request, tokens *TokenService) (policy.Actor, error) {
	header := r.Header.Get("Authorization")
	tokenStr, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenStr == "" {
		return policy.Actor{}, errMissingToken
	}
	return tokens.Validate(tokenStr)
}
