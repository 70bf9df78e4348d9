package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/wordtiles/internal/api/apierr"
	"github.com/mcoot/wordtiles/internal/model"
)

// UserHeader carries the caller's user ID, set by the upstream auth layer
const UserHeader = "X-User-ID"

type contextKey string

const userContextKey contextKey = "user"

// Identity requires the caller identity header and stores it in the context
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(UserHeader))
			if userID == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}
			ctx := context.WithValue(r.Context(), userContextKey, model.UserID(userID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the calling user from the request context
func GetUser(ctx context.Context) (model.UserID, bool) {
	userID, ok := ctx.Value(userContextKey).(model.UserID)
	return userID, ok
}

// MustGetUser returns the calling user or panics
func MustGetUser(ctx context.Context) model.UserID {
	userID, ok := GetUser(ctx)
	if !ok {
		panic("no user in context - identity middleware not applied?")
	}
	return userID
}
