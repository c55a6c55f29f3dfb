package ws

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestRateLimitMiddleware(t *testing.T) {
	req := require.New(t)
	rejected := 0
	limiter := NewIPRateLimiter(rate.Limit(0.001), 2)
	handler := RateLimitMiddleware(limiter, func() { rejected++ })(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(remote string) int {
		r := httptest.NewRequest(http.MethodGet, "/ws/match/1/", nil)
		r.RemoteAddr = remote
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	// Given a burst of two per IP
	req.Equal(http.StatusNoContent, call("10.0.0.1:5000"))
	req.Equal(http.StatusNoContent, call("10.0.0.1:5001"))

	// Then the third call from the same IP is refused
	req.Equal(http.StatusTooManyRequests, call("10.0.0.1:5002"))
	req.Equal(1, rejected)

	// And another IP has its own bucket
	req.Equal(http.StatusNoContent, call("10.0.0.2:5000"))
}

func TestCORSMiddleware(t *testing.T) {
	req := require.New(t)
	handler := CORSMiddleware([]string{"https://scores.example"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest(http.MethodGet, "/matches/1", nil)
	r.Header.Set("Origin", "https://scores.example")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	req.Equal("https://scores.example", w.Header().Get("Access-Control-Allow-Origin"))
	req.Equal(http.StatusNoContent, w.Code)

	r = httptest.NewRequest(http.MethodOptions, "/matches/1", nil)
	r.Header.Set("Origin", "https://elsewhere.example")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	req.Empty(w.Header().Get("Access-Control-Allow-Origin"))
	req.Equal(http.StatusOK, w.Code)
}

func TestSessionState_Transitions(t *testing.T) {
	req := require.New(t)

	req.True(StateConnecting.CanTransition(StateAuthenticating))
	req.True(StateAuthenticating.CanTransition(StateRejected))
	req.True(StateAuthorized.CanTransition(StateActive))
	req.True(StateRejected.CanTransition(StateClosed))
	req.False(StateRejected.CanTransition(StateActive))
	req.False(StateConnecting.CanTransition(StateActive))
	req.False(StateClosed.CanTransition(StateConnecting))
	req.Equal("authenticating", StateAuthenticating.String())
}
