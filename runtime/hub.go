// Package runtime routes sessions and commands to match rooms.
// It orchestrates the system without containing business logic or domain rules.
package runtime

import (
	"billiard-live/contract"
	"billiard-live/domain"
	"billiard-live/errors"
	"billiard-live/observability"
	"billiard-live/runtime/workers"
	"context"
	"log/slog"
	"sync"
)

type Set map[string]struct{}

type roomEntry struct {
	room     *workers.MatchRoom
	sessions Set
}

// Hub is the process-wide registry of match rooms. A room is created on the
// first subscribe and closed when its last session leaves; the next subscribe
// builds a fresh one that waits for the old one to drain.
type Hub struct {
	mu         sync.Mutex
	ctx        context.Context
	cancel     context.CancelFunc
	stopped    bool
	log        *slog.Logger
	supervisor contract.ISupervisor
	service    contract.IMatchService
	bufferSize int
	metrics    *observability.Metrics
	monitoring *observability.MonitoringManager
	rooms      map[domain.MatchID]*roomEntry
	draining   map[domain.MatchID]*workers.MatchRoom
}

func NewHub(
	log *slog.Logger,
	supervisor contract.ISupervisor,
	service contract.IMatchService,
	bufferSize int,
	metrics *observability.Metrics,
	monitoring *observability.MonitoringManager,
) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		ctx:        ctx,
		cancel:     cancel,
		log:        log,
		supervisor: supervisor,
		service:    service,
		bufferSize: bufferSize,
		metrics:    metrics,
		monitoring: monitoring,
		rooms:      make(map[domain.MatchID]*roomEntry),
		draining:   make(map[domain.MatchID]*workers.MatchRoom),
	}
}

// Subscribe adds the session to the match's room. The session receives
// match_state (or an error notice for an unknown match) before any later broadcast.
func (h *Hub) Subscribe(ctx context.Context, matchID domain.MatchID, session contract.Session) error {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return errors.ErrRoomClosed
	}
	entry, ok := h.rooms[matchID]
	if !ok {
		entry = h.openRoom(matchID)
	}
	entry.sessions[session.ID()] = struct{}{}
	h.mu.Unlock()

	if err := entry.room.Join(ctx, session); err != nil {
		h.Unsubscribe(matchID, session)
		return err
	}
	return nil
}

// openRoom must be called with h.mu held.
func (h *Hub) openRoom(matchID domain.MatchID) *roomEntry {
	room := workers.NewMatchRoom(matchID, h.service, h.bufferSize, h.log, h.metrics, h.monitoring).
		After(h.draining[matchID])
	entry := &roomEntry{room: room, sessions: make(Set)}
	h.rooms[matchID] = entry

	roomCtx, cancel := context.WithCancel(h.ctx)
	h.supervisor.Start(roomCtx, room)
	go func() {
		defer cancel()
		select {
		case <-room.Done():
		case <-roomCtx.Done():
		}
		h.mu.Lock()
		if h.draining[matchID] == room {
			delete(h.draining, matchID)
		}
		h.mu.Unlock()
	}()

	h.metrics.RoomOpened()
	h.log.Debug("Room opened", "match_id", matchID)
	return entry
}

// Unsubscribe is idempotent. Commands the session already queued still complete.
func (h *Hub) Unsubscribe(matchID domain.MatchID, session contract.Session) {
	h.mu.Lock()
	entry, ok := h.rooms[matchID]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, member := entry.sessions[session.ID()]; !member {
		h.mu.Unlock()
		return
	}
	delete(entry.sessions, session.ID())
	empty := len(entry.sessions) == 0
	if empty {
		delete(h.rooms, matchID)
		h.draining[matchID] = entry.room
	}
	h.mu.Unlock()

	entry.room.Leave(session)
	if empty {
		entry.room.Close()
		h.metrics.RoomClosed()
		h.log.Debug("Room closed", "match_id", matchID)
	}
}

// Dispatch hands a command to its match's room.
// The sender must be subscribed to that match.
func (h *Hub) Dispatch(ctx context.Context, sender contract.Session, cmd domain.Command) error {
	h.mu.Lock()
	entry, ok := h.rooms[cmd.MatchID()]
	if ok {
		_, ok = entry.sessions[sender.ID()]
	}
	h.mu.Unlock()
	if !ok {
		return errors.ErrRoomClosed
	}
	return entry.room.Submit(ctx, sender, cmd)
}

// Rooms returns the number of live rooms.
func (h *Hub) Rooms() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}

// Stop closes every room and cancels their workers.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	rooms := h.rooms
	h.rooms = make(map[domain.MatchID]*roomEntry)
	h.mu.Unlock()

	h.log.Info("Stopping hub", "rooms", len(rooms))
	for _, entry := range rooms {
		entry.room.Close()
		h.metrics.RoomClosed()
	}
	h.cancel()
}
