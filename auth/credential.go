package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const ProfileIDKey contextKey = "profile_id"

// Credential extracts the bearer credential presented on the websocket handshake.
// Browsers cannot set headers on a websocket upgrade, so the token query parameter wins.
func Credential(r *http.Request) string {
	if token := strings.TrimSpace(r.URL.Query().Get("token")); token != "" {
		return token
	}
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func WithProfileID(ctx context.Context, profileID int64) context.Context {
	return context.WithValue(ctx, ProfileIDKey, profileID)
}

func ProfileIDFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ProfileIDKey).(int64)
	return id, ok
}
