package repositories

import (
	"billiard-live/domain"
	"billiard-live/errors"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db      *badger.DB
	ids     *IDGenerator
	events  *EventRepository
	matches *MatchRepository
	match   domain.Match
	frame   domain.Frame
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	ids, err := NewIDGenerator(db, 100)
	req.NoError(err)
	t.Cleanup(func() {
		_ = ids.Release()
		_ = db.Close()
	})

	matches := NewMatchRepository(db, ids, slog.Default())
	match, err := matches.CreateMatch(domain.Match{Player1: 1, Player2: 2})
	req.NoError(err)
	frame, err := matches.CreateFrame(domain.Frame{MatchID: match.ID, Number: 1})
	req.NoError(err)

	return fixture{
		db:      db,
		ids:     ids,
		events:  NewEventRepository(db, ids, slog.Default()),
		matches: matches,
		match:   match,
		frame:   frame,
	}
}

func eventIDs(events []domain.MatchEvent) []domain.EventID {
	return lo.Map(events, func(e domain.MatchEvent, _ int) domain.EventID { return e.ID })
}

func Test_Append_Then_List_In_Order(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	first, err := f.events.Append(f.frame.ID, domain.MatchEvent{Type: domain.FrameStart})
	req.NoError(err)
	second, err := f.events.Append(f.frame.ID, domain.MatchEvent{
		Type:    domain.BallsPotted,
		Player:  lo.ToPtr(domain.ProfileID(1)),
		BallIDs: []string{"1", "9"},
	})
	req.NoError(err)

	events, err := f.events.List(f.frame.ID)
	req.NoError(err)
	req.Equal([]domain.EventID{first.ID, second.ID}, eventIDs(events))
	req.Equal([]string{"1", "9"}, events[1].BallIDs)
	req.Equal(domain.ProfileID(1), *events[1].Player)
	req.False(events[1].Timestamp.Before(events[0].Timestamp))
}

func Test_Append_Timestamps_Never_Go_Backwards(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	at := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	clock := []time.Time{at, at.Add(-time.Minute), at.Add(-time.Hour)}
	f.events.WithClock(func() time.Time {
		now := clock[0]
		clock = clock[1:]
		return now
	})

	// Given a clock that jumps backwards
	var appended []domain.MatchEvent
	for i := 0; i < 3; i++ {
		e, err := f.events.Append(f.frame.ID, domain.MatchEvent{Type: domain.Faul})
		req.NoError(err)
		appended = append(appended, e)
	}

	// Then every event is stamped with the latest time and insertion order is kept
	events, err := f.events.List(f.frame.ID)
	req.NoError(err)
	req.Equal(eventIDs(appended), eventIDs(events))
	for _, e := range events {
		req.Equal(at, e.Timestamp)
	}
}

func Test_Append_To_Unknown_Frame(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	_, err := f.events.Append(9999, domain.MatchEvent{Type: domain.Faul})

	req.ErrorIs(err, errors.ErrFrameNotFound)
	req.ErrorIs(err, errors.ErrNotFound)
}

func Test_Remove_Deletes_Record_And_Membership(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	e, err := f.events.Append(f.frame.ID, domain.MatchEvent{Type: domain.Faul})
	req.NoError(err)

	req.NoError(f.events.Remove(f.frame.ID, e.ID))

	events, err := f.events.List(f.frame.ID)
	req.NoError(err)
	req.Empty(events)
	_, err = f.events.FramesOf(e.ID)
	req.ErrorIs(err, errors.ErrEventNotFound)
	req.ErrorIs(f.events.Remove(f.frame.ID, e.ID), errors.ErrEventNotFound)
}

func Test_Detach_Keeps_The_Record(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	e, err := f.events.Append(f.frame.ID, domain.MatchEvent{Type: domain.Faul})
	req.NoError(err)

	req.NoError(f.events.Detach(f.frame.ID, e.ID))

	frames, err := f.events.FramesOf(e.ID)
	req.NoError(err)
	req.Empty(frames)
	req.NoError(f.events.DeleteEvent(e.ID))
}

func Test_RemoveMany_Skips_Foreign_Ids(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	other, err := f.matches.CreateFrame(domain.Frame{MatchID: f.match.ID, Number: 2})
	req.NoError(err)

	a, _ := f.events.Append(f.frame.ID, domain.MatchEvent{Type: domain.FrameStart})
	b, _ := f.events.Append(f.frame.ID, domain.MatchEvent{Type: domain.Faul})
	foreign, _ := f.events.Append(other.ID, domain.MatchEvent{Type: domain.Faul})

	removed, err := f.events.RemoveMany(f.frame.ID, []domain.EventID{b.ID, foreign.ID, 424242, b.ID})

	req.NoError(err)
	req.Equal([]domain.EventID{b.ID}, removed)
	remaining, _ := f.events.List(f.frame.ID)
	req.Equal([]domain.EventID{a.ID}, eventIDs(remaining))
	foreignFrame, _ := f.events.List(other.ID)
	req.Equal([]domain.EventID{foreign.ID}, eventIDs(foreignFrame))
}

func Test_RemoveLast_Twice(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	a, _ := f.events.Append(f.frame.ID, domain.MatchEvent{Type: domain.FrameStart})
	b, _ := f.events.Append(f.frame.ID, domain.MatchEvent{Type: domain.NextPlayer})

	last, err := f.events.RemoveLast(f.frame.ID)
	req.NoError(err)
	req.Equal(b.ID, last.ID)
	req.Equal(domain.NextPlayer, last.Type)

	last, err = f.events.RemoveLast(f.frame.ID)
	req.NoError(err)
	req.Equal(a.ID, last.ID)

	_, err = f.events.RemoveLast(f.frame.ID)
	req.ErrorIs(err, errors.ErrNoEventsToUndo)
}

func Test_Clear_Returns_Cleared_Ids(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	a, _ := f.events.Append(f.frame.ID, domain.MatchEvent{Type: domain.FrameStart})
	b, _ := f.events.Append(f.frame.ID, domain.MatchEvent{Type: domain.Faul})

	cleared, err := f.events.Clear(f.frame.ID)
	req.NoError(err)
	req.Equal([]domain.EventID{a.ID, b.ID}, cleared)

	cleared, err = f.events.Clear(f.frame.ID)
	req.NoError(err)
	req.Empty(cleared)
}

func Test_DeleteFrame_Detaches_Or_Deletes_Events(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	kept, _ := f.events.Append(f.frame.ID, domain.MatchEvent{Type: domain.Faul})

	req.NoError(f.matches.DeleteFrame(f.frame.ID, false))

	frames, err := f.events.FramesOf(kept.ID)
	req.NoError(err)
	req.Empty(frames)
	_, err = f.matches.GetFrame(f.frame.ID)
	req.ErrorIs(err, errors.ErrFrameNotFound)

	second, _ := f.matches.CreateFrame(domain.Frame{MatchID: f.match.ID, Number: 2})
	gone, _ := f.events.Append(second.ID, domain.MatchEvent{Type: domain.Faul})
	req.NoError(f.matches.DeleteFrame(second.ID, true))
	_, err = f.events.FramesOf(gone.ID)
	req.ErrorIs(err, errors.ErrEventNotFound)
}
