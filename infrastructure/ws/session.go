package ws

import (
	"billiard-live/domain/event"
	"billiard-live/errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Role string

const (
	RoleSpectator Role = "spectator"
	RoleBiro      Role = "biro"
)

type closeFrame struct {
	code   int
	reason string
}

// Session is one websocket connection. A single writer goroutine owns the socket for writes;
// Send and Close never block the caller.
type Session struct {
	id           string
	role         Role
	conn         *websocket.Conn
	log          *slog.Logger
	writeTimeout time.Duration
	pingPeriod   time.Duration

	mu       sync.Mutex
	closed   bool
	outbound chan event.Outbound
	closing  chan closeFrame
	done     chan struct{}
}

func NewSession(conn *websocket.Conn, role Role, bufferSize int, writeTimeout, pongTimeout time.Duration, log *slog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:           id,
		role:         role,
		conn:         conn,
		log:          log.With("session_id", id, "role", role),
		writeTimeout: writeTimeout,
		pingPeriod:   pongTimeout * 9 / 10,
		outbound:     make(chan event.Outbound, bufferSize),
		closing:      make(chan closeFrame, 1),
		done:         make(chan struct{}),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Role() Role { return s.role }

// Done is closed once the writer released the socket.
func (s *Session) Done() <-chan struct{} { return s.done }

// Send queues a message. It fails with ErrSlowConsumer when the buffer is full
// and with ErrSessionGone once the session is closing.
func (s *Session) Send(msg event.Outbound) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrSessionGone
	}
	select {
	case s.outbound <- msg:
		return nil
	default:
		return errors.ErrSlowConsumer
	}
}

// Close asks the writer to flush what is queued, send a close frame and release the socket.
// Only the first call counts.
func (s *Session) Close(code int, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.closing <- closeFrame{code: code, reason: reason}
}

// WriteLoop runs until Close is called or a write fails.
func (s *Session) WriteLoop() {
	defer close(s.done)
	defer s.conn.Close()

	var ping <-chan time.Time
	if s.pingPeriod > 0 {
		ticker := time.NewTicker(s.pingPeriod)
		defer ticker.Stop()
		ping = ticker.C
	}

	for {
		select {
		case msg := <-s.outbound:
			if err := s.write(msg); err != nil {
				s.fail(err)
				return
			}
		case <-ping:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, s.deadline()); err != nil {
				s.fail(err)
				return
			}
		case frame := <-s.closing:
			s.flush()
			msg := websocket.FormatCloseMessage(frame.code, frame.reason)
			if err := s.conn.WriteControl(websocket.CloseMessage, msg, s.deadline()); err != nil {
				s.log.Debug("Close frame not delivered", "error", err)
			}
			return
		}
	}
}

func (s *Session) flush() {
	for {
		select {
		case msg := <-s.outbound:
			if err := s.write(msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (s *Session) write(msg event.Outbound) error {
	if err := s.conn.SetWriteDeadline(s.deadline()); err != nil {
		return err
	}
	return s.conn.WriteJSON(msg)
}

func (s *Session) deadline() time.Time {
	if s.writeTimeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(s.writeTimeout)
}

func (s *Session) fail(err error) {
	s.log.Debug("Write failed, dropping session", "error", err)
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
