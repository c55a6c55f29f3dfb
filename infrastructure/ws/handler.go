package ws

import (
	"billiard-live/auth"
	"billiard-live/contract"
	"billiard-live/domain"
	"billiard-live/domain/event"
	"billiard-live/errors"
	"billiard-live/observability"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// Authorizer resolves a scorekeeper credential to its profile.
type Authorizer interface {
	Authorize(credential string) (domain.Profile, error)
}

type Options struct {
	SessionBufferSize int
	WriteTimeout      time.Duration
	PongTimeout       time.Duration
	ReadLimit         int64
	AllowedOrigins    []string
}

type Handler struct {
	hub        contract.IHub
	matches    contract.IMatchService
	authorizer Authorizer
	upgrader   websocket.Upgrader
	opts       Options
	log        *slog.Logger
	metrics    *observability.Metrics
	monitoring *observability.MonitoringManager
}

func NewHandler(
	log *slog.Logger,
	hub contract.IHub,
	matches contract.IMatchService,
	authorizer Authorizer,
	opts Options,
	metrics *observability.Metrics,
	monitoring *observability.MonitoringManager,
) *Handler {
	if opts.SessionBufferSize <= 0 {
		opts.SessionBufferSize = 64
	}
	if opts.ReadLimit <= 0 {
		opts.ReadLimit = 64 * 1024
	}
	origins := originSet(opts.AllowedOrigins)
	return &Handler{
		hub:        hub,
		matches:    matches,
		authorizer: authorizer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if len(origins) == 0 || origin == "" {
					return true
				}
				_, ok := origins[origin]
				return ok
			},
		},
		opts:       opts,
		log:        log,
		metrics:    metrics,
		monitoring: monitoring,
	}
}

// Spectate serves the read-only channel of a match: one match_state, then the broadcast stream.
func (h *Handler) Spectate(w http.ResponseWriter, r *http.Request) {
	matchID, ok := matchIDParam(w, r)
	if !ok {
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("Upgrade failed", "error", err)
		return
	}

	session := h.open(conn, RoleSpectator)
	defer h.release(session)
	log := session.log.With("match_id", matchID)

	if err := h.hub.Subscribe(r.Context(), matchID, session); err != nil {
		log.Warn("Subscribe failed", "error", err)
		session.Close(contract.CloseInternalError, errors.AckMessage(err))
		return
	}
	defer h.hub.Unsubscribe(matchID, session)

	h.readLoop(conn, func(raw []byte) {
		if IsPing(raw) {
			_ = session.Send(event.Notice{Type: event.Pong})
			return
		}
		log.Debug("Ignoring message on read-only channel")
	})
}

// Keep serves the scorekeeper control channel of a match.
func (h *Handler) Keep(w http.ResponseWriter, r *http.Request) {
	matchID, ok := matchIDParam(w, r)
	if !ok {
		return
	}
	credential := auth.Credential(r)
	state := newSessionState(h.log.With("match_id", matchID))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("Upgrade failed", "error", err)
		return
	}

	session := h.open(conn, RoleBiro)
	defer h.release(session)
	defer state.to(StateClosed)

	state.to(StateAuthenticating)
	profile, err := h.authorizer.Authorize(credential)
	if err != nil {
		state.to(StateRejected)
		code, reason := rejection(err)
		h.metrics.AuthRejected(reason)
		state.log.Info("Scorekeeper rejected", "reason", reason, "error", err)
		session.Close(code, reason)
		return
	}
	state.to(StateAuthorized)

	ctx := auth.WithProfileID(r.Context(), int64(profile.ID))
	if err := h.hub.Subscribe(ctx, matchID, session); err != nil {
		state.log.Warn("Subscribe failed", "error", err)
		session.Close(contract.CloseInternalError, errors.AckMessage(err))
		return
	}
	defer h.hub.Unsubscribe(matchID, session)
	state.to(StateActive)

	h.readLoop(conn, func(raw []byte) {
		if IsPing(raw) {
			_ = session.Send(event.Notice{Type: event.Pong})
			return
		}
		h.command(ctx, session, matchID, raw)
	})
}

// command decodes and dispatches one inbound frame. Malformed frames get an error reply.
func (h *Handler) command(ctx context.Context, session *Session, matchID domain.MatchID, raw []byte) {
	action, cmd, err := DecodeCommand(matchID, raw)
	if err == nil {
		err = h.hub.Dispatch(ctx, session, cmd)
	}
	if err != nil {
		profileID, _ := auth.ProfileIDFrom(ctx)
		session.log.Debug("Command refused", "action", action, "profile_id", profileID, "error", err)
		_ = session.Send(event.Failure(action, errors.AckMessage(err)))
	}
}

// Snapshot answers GET /matches/{matchID} with the same payload as match_state.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	matchID, ok := matchIDParam(w, r)
	if !ok {
		return
	}
	snapshot, err := h.matches.Snapshot(r.Context(), matchID)
	switch {
	case errors.Is(err, errors.ErrNotFound):
		http.Error(w, "Match not found", http.StatusNotFound)
		return
	case err != nil:
		h.log.Error("Snapshot failed", "match_id", matchID, "error", err)
		http.Error(w, errors.ErrInternal.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshot.Data); err != nil {
		h.log.Debug("Failed to encode snapshot", "error", err)
	}
}

func (h *Handler) open(conn *websocket.Conn, role Role) *Session {
	session := NewSession(conn, role, h.opts.SessionBufferSize, h.opts.WriteTimeout, h.opts.PongTimeout, h.log)
	conn.SetReadLimit(h.opts.ReadLimit)
	if h.opts.PongTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(h.opts.PongTimeout))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(h.opts.PongTimeout))
		})
	}
	go session.WriteLoop()

	h.metrics.SessionOpened(string(role))
	if h.monitoring != nil {
		h.monitoring.IncrSessions()
	}
	session.log.Debug("Session opened")
	return session
}

// release closes the session and waits for its writer to let go of the socket.
func (h *Handler) release(session *Session) {
	session.Close(contract.CloseNormal, "")
	<-session.Done()

	h.metrics.SessionClosed(string(session.Role()))
	if h.monitoring != nil {
		h.monitoring.DecrSessions()
	}
	session.log.Debug("Session closed")
}

func (h *Handler) readLoop(conn *websocket.Conn, onMessage func(raw []byte)) {
	for {
		kind, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debug("Read failed", "error", err)
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		onMessage(raw)
	}
}

func rejection(err error) (int, string) {
	switch {
	case errors.Is(err, errors.ErrNoCredential):
		return contract.CloseNoCredential, errors.ErrNoCredential.Error()
	case errors.Is(err, errors.ErrInvalidCredential):
		return contract.CloseForbidden, errors.ErrInvalidCredential.Error()
	case errors.Is(err, errors.ErrForbidden):
		return contract.CloseForbidden, errors.ErrForbidden.Error()
	default:
		return contract.CloseInternalError, errors.ErrInternal.Error()
	}
}

func matchIDParam(w http.ResponseWriter, r *http.Request) (domain.MatchID, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "matchID"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, fmt.Sprintf("Invalid match ID %q", chi.URLParam(r, "matchID")), http.StatusBadRequest)
		return 0, false
	}
	return domain.MatchID(id), true
}
