//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"billiard-live/domain"
	"billiard-live/domain/event"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself, the supervisor does.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// Used for logging during supervision.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Close codes sent to clients, aligned with RFC 6455 and the private 4000 range.
const (
	CloseNormal        = 1000
	CloseGoingAway     = 1001
	CloseInternalError = 1011
	CloseTryAgainLater = 1013
	CloseNoCredential  = 4001
	CloseForbidden     = 4003
)

// Session is one connected client as seen by a room.
// Send must never block: a full outbound buffer returns an error and the room evicts the session.
type Session interface {
	ID() string
	Send(msg event.Outbound) error
	Close(code int, reason string)
}

// IHub owns one room per watched match.
type IHub interface {
	Subscribe(ctx context.Context, matchID domain.MatchID, session Session) error
	Unsubscribe(matchID domain.MatchID, session Session)
	Dispatch(ctx context.Context, sender Session, cmd domain.Command) error
	Rooms() int
	Stop()
}

// IMatchService applies scorekeeper commands and builds snapshots.
// Execute never returns an error: faults are folded into a failure ack.
type IMatchService interface {
	Execute(ctx context.Context, cmd domain.Command) event.Outcome
	Snapshot(ctx context.Context, matchID domain.MatchID) (event.Broadcast, error)
}
