//go:generate go run go.uber.org/mock/mockgen -source=event.go -destination=../mocks/mock_event_repository.go -package=mocks
package repositories

import (
	"billiard-live/domain"
	"billiard-live/errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

// IEventRepository is the event log of every frame.
// Event records live in an arena keyed by id; frames only own ordered memberships.
type IEventRepository interface {
	Append(frameID domain.FrameID, e domain.MatchEvent) (domain.MatchEvent, error)
	Detach(frameID domain.FrameID, eventID domain.EventID) error
	DeleteEvent(eventID domain.EventID) error
	Remove(frameID domain.FrameID, eventID domain.EventID) error
	RemoveMany(frameID domain.FrameID, eventIDs []domain.EventID) ([]domain.EventID, error)
	RemoveLast(frameID domain.FrameID) (domain.MatchEvent, error)
	Clear(frameID domain.FrameID) ([]domain.EventID, error)
	List(frameID domain.FrameID) ([]domain.MatchEvent, error)
	FramesOf(eventID domain.EventID) ([]domain.FrameID, error)
}

type EventRepository struct {
	db  *badger.DB
	ids *IDGenerator
	log *slog.Logger
	now func() time.Time
}

func NewEventRepository(db *badger.DB, ids *IDGenerator, log *slog.Logger) *EventRepository {
	return &EventRepository{db: db, ids: ids, log: log, now: time.Now}
}

// WithClock replaces the time source used to stamp appended events.
func (r *EventRepository) WithClock(now func() time.Time) *EventRepository {
	r.now = now
	return r
}

type DiskEvent struct {
	ID         int64    `msgpack:"id"`
	Type       string   `msgpack:"type"`
	At         int64    `msgpack:"at"`
	Player     *int64   `msgpack:"player,omitempty"`
	BallIDs    []string `msgpack:"ball_ids,omitempty"`
	Details    string   `msgpack:"details,omitempty"`
	TurnNumber *int     `msgpack:"turn_number,omitempty"`
}

// Append stores the event and attaches it at the end of the frame's log.
// The timestamp is assigned here and never goes backwards within a frame,
// equal timestamps are ordered by id, i.e. by insertion.
func (r *EventRepository) Append(frameID domain.FrameID, e domain.MatchEvent) (domain.MatchEvent, error) {
	id, err := r.ids.Next()
	if err != nil {
		return domain.MatchEvent{}, err
	}
	e.ID = domain.EventID(id)

	err = r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(frameKey(int64(frameID))); err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("%w: %d", errors.ErrFrameNotFound, frameID)
			}
			return err
		}

		at := r.now().UTC()
		if last := keysWithPrefix(txn, memberPrefix(int64(frameID)), true); len(last) > 0 {
			lastAt, _, err := parseMemberKey(last[0])
			if err != nil {
				return err
			}
			if at.UnixNano() < lastAt {
				at = time.Unix(0, lastAt).UTC()
			}
		}
		e.Timestamp = at

		if err := setRecord(txn, eventKey(id), fromEvent(e)); err != nil {
			return err
		}
		mk := memberKey(int64(frameID), at.UnixNano(), id)
		if err := txn.Set(mk, nil); err != nil {
			return err
		}
		return txn.Set(eventFrameKey(id, int64(frameID)), mk)
	})
	if err != nil {
		return domain.MatchEvent{}, err
	}
	return e, nil
}

// Detach only breaks the frame membership, the event record stays.
func (r *EventRepository) Detach(frameID domain.FrameID, eventID domain.EventID) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return detach(txn, int64(frameID), int64(eventID))
	})
}

// DeleteEvent drops the record and whatever memberships it still has.
func (r *EventRepository) DeleteEvent(eventID domain.EventID) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return deleteEvent(txn, int64(eventID))
	})
}

// Remove detaches and deletes atomically.
func (r *EventRepository) Remove(frameID domain.FrameID, eventID domain.EventID) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if err := detach(txn, int64(frameID), int64(eventID)); err != nil {
			return err
		}
		return deleteEvent(txn, int64(eventID))
	})
}

// RemoveMany removes the listed events that belong to the frame and silently skips the others.
func (r *EventRepository) RemoveMany(frameID domain.FrameID, eventIDs []domain.EventID) ([]domain.EventID, error) {
	removed := make([]domain.EventID, 0, len(eventIDs))
	err := r.db.Update(func(txn *badger.Txn) error {
		for _, eventID := range lo.Uniq(eventIDs) {
			err := detach(txn, int64(frameID), int64(eventID))
			if errors.Is(err, errors.ErrEventNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if err := deleteEvent(txn, int64(eventID)); err != nil {
				return err
			}
			removed = append(removed, eventID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// RemoveLast removes the newest event of the frame.
func (r *EventRepository) RemoveLast(frameID domain.FrameID) (domain.MatchEvent, error) {
	var last domain.MatchEvent
	err := r.db.Update(func(txn *badger.Txn) error {
		keys := keysWithPrefix(txn, memberPrefix(int64(frameID)), true)
		if len(keys) == 0 {
			return errors.ErrNoEventsToUndo
		}
		_, eventID, err := parseMemberKey(keys[0])
		if err != nil {
			return err
		}
		disk, err := getRecord[DiskEvent](txn, eventKey(eventID), errors.ErrEventNotFound)
		if err != nil {
			return err
		}
		last = toEvent(disk)
		if err := detach(txn, int64(frameID), eventID); err != nil {
			return err
		}
		return deleteEvent(txn, eventID)
	})
	return last, err
}

// Clear removes and deletes every event attached to the frame, oldest first.
func (r *EventRepository) Clear(frameID domain.FrameID) ([]domain.EventID, error) {
	cleared := []domain.EventID{}
	err := r.db.Update(func(txn *badger.Txn) error {
		for _, key := range keysWithPrefix(txn, memberPrefix(int64(frameID)), false) {
			_, eventID, err := parseMemberKey(key)
			if err != nil {
				return err
			}
			if err := detach(txn, int64(frameID), eventID); err != nil {
				return err
			}
			if err := deleteEvent(txn, eventID); err != nil {
				return err
			}
			cleared = append(cleared, domain.EventID(eventID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cleared, nil
}

// List returns the frame's events ordered by timestamp.
func (r *EventRepository) List(frameID domain.FrameID) ([]domain.MatchEvent, error) {
	var events []domain.MatchEvent
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		events, err = listEvents(txn, int64(frameID))
		return err
	})
	return events, err
}

// FramesOf lists every frame the event is attached to.
func (r *EventRepository) FramesOf(eventID domain.EventID) ([]domain.FrameID, error) {
	var frames []domain.FrameID
	err := r.db.View(func(txn *badger.Txn) error {
		if _, err := txn.Get(eventKey(int64(eventID))); err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("%w: %d", errors.ErrEventNotFound, eventID)
			}
			return err
		}
		for _, key := range keysWithPrefix(txn, eventFramePrefix(int64(eventID)), false) {
			frameID, err := lastSegment(key)
			if err != nil {
				return err
			}
			frames = append(frames, domain.FrameID(frameID))
		}
		return nil
	})
	return frames, err
}

func listEvents(txn *badger.Txn, frameID int64) ([]domain.MatchEvent, error) {
	events := []domain.MatchEvent{}
	for _, key := range keysWithPrefix(txn, memberPrefix(frameID), false) {
		_, eventID, err := parseMemberKey(key)
		if err != nil {
			return nil, err
		}
		disk, err := getRecord[DiskEvent](txn, eventKey(eventID), errors.ErrEventNotFound)
		if err != nil {
			return nil, fmt.Errorf("frame %d membership %d: %w", frameID, eventID, err)
		}
		events = append(events, toEvent(disk))
	}
	return events, nil
}

func detach(txn *badger.Txn, frameID, eventID int64) error {
	efk := eventFrameKey(eventID, frameID)
	item, err := txn.Get(efk)
	if err == badger.ErrKeyNotFound {
		return fmt.Errorf("%w: %d in frame %d", errors.ErrEventNotFound, eventID, frameID)
	}
	if err != nil {
		return err
	}
	mk, err := item.ValueCopy(nil)
	if err != nil {
		return err
	}
	if err := txn.Delete(mk); err != nil {
		return err
	}
	return txn.Delete(efk)
}

func deleteEvent(txn *badger.Txn, eventID int64) error {
	if _, err := txn.Get(eventKey(eventID)); err != nil {
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %d", errors.ErrEventNotFound, eventID)
		}
		return err
	}
	for _, efk := range keysWithPrefix(txn, eventFramePrefix(eventID), false) {
		frameID, err := lastSegment(efk)
		if err != nil {
			return err
		}
		if err := detach(txn, frameID, eventID); err != nil {
			return err
		}
	}
	return txn.Delete(eventKey(eventID))
}

func fromEvent(e domain.MatchEvent) DiskEvent {
	var player *int64
	if e.Player != nil {
		player = lo.ToPtr(int64(*e.Player))
	}
	return DiskEvent{
		ID:         int64(e.ID),
		Type:       string(e.Type),
		At:         e.Timestamp.UnixNano(),
		Player:     player,
		BallIDs:    e.BallIDs,
		Details:    e.Details,
		TurnNumber: e.TurnNumber,
	}
}

func toEvent(d DiskEvent) domain.MatchEvent {
	var player *domain.ProfileID
	if d.Player != nil {
		player = lo.ToPtr(domain.ProfileID(*d.Player))
	}
	return domain.MatchEvent{
		ID:         domain.EventID(d.ID),
		Type:       domain.EventType(d.Type),
		Timestamp:  time.Unix(0, d.At).UTC(),
		Player:     player,
		BallIDs:    d.BallIDs,
		Details:    d.Details,
		TurnNumber: d.TurnNumber,
	}
}
