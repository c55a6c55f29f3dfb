package workers

import (
	"billiard-live/contract"
	"billiard-live/domain"
	"billiard-live/domain/event"
	"billiard-live/errors"
	"billiard-live/observability"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

type roomMessage interface{ isRoomMessage() }

type joinMessage struct{ session contract.Session }
type leaveMessage struct{ session contract.Session }
type commandMessage struct {
	sender contract.Session
	cmd    domain.Command
}

func (joinMessage) isRoomMessage()    {}
func (leaveMessage) isRoomMessage()   {}
func (commandMessage) isRoomMessage() {}

// MatchRoom serializes everything that happens to one match: joins, leaves and
// scorekeeper commands are handled one at a time in arrival order.
// The subscriber set is owned by the room.
type MatchRoom struct {
	matchID    domain.MatchID
	service    contract.IMatchService
	log        *slog.Logger
	metrics    *observability.Metrics
	monitoring *observability.MonitoringManager

	sendMu   sync.RWMutex
	closed   bool
	commands chan roomMessage

	mu          sync.RWMutex
	subscribers map[string]contract.Session

	after    <-chan struct{}
	done     chan struct{}
	doneOnce sync.Once
}

func NewMatchRoom(
	matchID domain.MatchID,
	service contract.IMatchService,
	bufferSize int,
	log *slog.Logger,
	metrics *observability.Metrics,
	monitoring *observability.MonitoringManager,
) *MatchRoom {
	return &MatchRoom{
		matchID:     matchID,
		service:     service,
		log:         log.With("match_id", matchID),
		metrics:     metrics,
		monitoring:  monitoring,
		commands:    make(chan roomMessage, bufferSize),
		subscribers: make(map[string]contract.Session),
		done:        make(chan struct{}),
	}
}

// After delays processing until the given room (an older room of the same match) is drained.
func (r *MatchRoom) After(previous *MatchRoom) *MatchRoom {
	if previous != nil {
		r.after = previous.Done()
	}
	return r
}

func (r *MatchRoom) MatchID() domain.MatchID { return r.matchID }

// Done is closed once the room drained its queue after Close.
func (r *MatchRoom) Done() <-chan struct{} { return r.done }

func (r *MatchRoom) Run(ctx context.Context) error {
	if r.after != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.after:
		}
	}

	for {
		select {
		case <-ctx.Done():
			r.log.Debug("Stopping room")
			return ctx.Err()
		case msg, ok := <-r.commands:
			if !ok {
				r.log.Debug("Room drained")
				r.doneOnce.Do(func() { close(r.done) })
				return nil
			}
			r.handle(ctx, msg)
		}
	}
}

// Join queues the session so that its match_state is ordered with respect to broadcasts.
func (r *MatchRoom) Join(ctx context.Context, session contract.Session) error {
	return r.submit(ctx, joinMessage{session: session})
}

// Leave removes the session. After Close it is removed right away.
func (r *MatchRoom) Leave(session contract.Session) {
	if err := r.submit(context.Background(), leaveMessage{session: session}); err != nil {
		r.remove(session)
	}
}

// Submit queues a command. It blocks while the queue is full.
func (r *MatchRoom) Submit(ctx context.Context, sender contract.Session, cmd domain.Command) error {
	if cmd.MatchID() != r.matchID {
		return fmt.Errorf("%w: command for match %d sent to room %d", errors.ErrInvalidCommand, cmd.MatchID(), r.matchID)
	}
	return r.submit(ctx, commandMessage{sender: sender, cmd: cmd})
}

// Close stops accepting messages. Already queued ones are still handled.
func (r *MatchRoom) Close() {
	r.sendMu.Lock()
	defer r.sendMu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	close(r.commands)
}

func (r *MatchRoom) Subscribers() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subscribers)
}

func (r *MatchRoom) submit(ctx context.Context, msg roomMessage) error {
	r.sendMu.RLock()
	defer r.sendMu.RUnlock()
	if r.closed {
		return errors.ErrRoomClosed
	}
	select {
	case r.commands <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *MatchRoom) handle(ctx context.Context, msg roomMessage) {
	switch m := msg.(type) {
	case joinMessage:
		r.join(ctx, m.session)
	case leaveMessage:
		r.remove(m.session)
	case commandMessage:
		r.apply(ctx, m.sender, m.cmd)
	}
}

func (r *MatchRoom) join(ctx context.Context, session contract.Session) {
	r.mu.Lock()
	r.subscribers[session.ID()] = session
	r.mu.Unlock()

	snapshot, err := r.service.Snapshot(ctx, r.matchID)
	if err != nil {
		r.log.Warn("No match state for new subscriber", "session", session.ID(), "error", err)
		r.deliver(session, event.Notice{Type: event.Error, Message: errors.AckMessage(err)})
		return
	}
	r.deliver(session, snapshot)
}

func (r *MatchRoom) remove(session contract.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subscribers, session.ID())
}

// apply runs one command to completion. A panic becomes a generic failure ack and nothing is broadcast.
func (r *MatchRoom) apply(ctx context.Context, sender contract.Session, cmd domain.Command) {
	started := time.Now()
	outcome := r.execute(ctx, cmd)
	r.metrics.CommandApplied(string(cmd.Action()), outcome.Ack.Success, time.Since(started))
	if r.monitoring != nil {
		r.monitoring.IncrCommands()
	}

	r.deliver(sender, outcome.Ack)
	if outcome.Broadcast != nil {
		r.Publish(*outcome.Broadcast)
	}
}

func (r *MatchRoom) execute(ctx context.Context, cmd domain.Command) (outcome event.Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("Command panicked", "action", cmd.Action(), "panic", rec)
			outcome = event.Outcome{Ack: event.Failure(cmd.Action(), errors.ErrInternal.Error())}
		}
	}()
	return r.service.Execute(ctx, cmd)
}

// Publish fans the broadcast out to every subscriber. Sessions that cannot keep up are evicted.
func (r *MatchRoom) Publish(b event.Broadcast) {
	r.mu.RLock()
	sessions := make([]contract.Session, 0, len(r.subscribers))
	for _, s := range r.subscribers {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	r.metrics.Broadcast(string(b.Type))
	if r.monitoring != nil {
		r.monitoring.IncrBroadcasts()
	}
	for _, s := range sessions {
		r.deliver(s, b)
	}
}

func (r *MatchRoom) deliver(session contract.Session, msg event.Outbound) {
	if session == nil {
		return
	}
	err := session.Send(msg)
	switch {
	case err == nil:
	case errors.Is(err, errors.ErrSessionGone):
		// the ack of a disconnected sender is dropped
		r.remove(session)
	default:
		r.log.Warn("Evicting session", "session", session.ID(), "type", msg.MessageType(), "error", err)
		r.metrics.SessionEvicted()
		r.remove(session)
		session.Close(contract.CloseTryAgainLater, "slow consumer")
	}
}
