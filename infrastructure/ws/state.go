package ws

import "log/slog"

// SessionState tracks a scorekeeper connection through authorization.
type SessionState int

const (
	StateConnecting SessionState = iota
	StateAuthenticating
	StateAuthorized
	StateActive
	StateRejected
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthorized:
		return "authorized"
	case StateActive:
		return "active"
	case StateRejected:
		return "rejected"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

var transitions = map[SessionState][]SessionState{
	StateConnecting:     {StateAuthenticating, StateRejected, StateClosed},
	StateAuthenticating: {StateAuthorized, StateRejected, StateClosed},
	StateAuthorized:     {StateActive, StateClosed},
	StateActive:         {StateClosed},
	StateRejected:       {StateClosed},
}

// CanTransition reports whether next may follow s.
func (s SessionState) CanTransition(next SessionState) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type sessionState struct {
	current SessionState
	log     *slog.Logger
}

func newSessionState(log *slog.Logger) *sessionState {
	return &sessionState{current: StateConnecting, log: log}
}

func (s *sessionState) to(next SessionState) {
	if !s.current.CanTransition(next) {
		s.log.Warn("Illegal session transition", "from", s.current, "to", next)
		return
	}
	s.log.Debug("Session state", "from", s.current, "to", next)
	s.current = next
}
