//go:generate go run go.uber.org/mock/mockgen -source=match.go -destination=../mocks/mock_match_repository.go -package=mocks
package repositories

import (
	"billiard-live/domain"
	"billiard-live/errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

type IMatchRepository interface {
	CreateMatch(match domain.Match) (domain.Match, error)
	GetMatch(id domain.MatchID) (domain.Match, error)
	UpdateMatch(match domain.Match) error
	CreateFrame(f domain.Frame) (domain.Frame, error)
	GetFrame(id domain.FrameID) (domain.Frame, error)
	UpdateFrame(f domain.Frame) error
	ListFrames(matchID domain.MatchID) ([]domain.Frame, error)
	DeleteFrame(id domain.FrameID, deleteEvents bool) error
}

type MatchRepository struct {
	db  *badger.DB
	ids *IDGenerator
	log *slog.Logger
}

func NewMatchRepository(db *badger.DB, ids *IDGenerator, log *slog.Logger) *MatchRepository {
	return &MatchRepository{db: db, ids: ids, log: log}
}

type DiskMatch struct {
	ID          int64  `msgpack:"id"`
	Player1     int64  `msgpack:"player1"`
	Player2     int64  `msgpack:"player2"`
	MatchDate   *int64 `msgpack:"match_date,omitempty"`
	FramesToWin int    `msgpack:"frames_to_win"`
	GameMode    string `msgpack:"game_mode,omitempty"`
}

type DiskFrame struct {
	ID      int64  `msgpack:"id"`
	MatchID int64  `msgpack:"match_id"`
	Number  int    `msgpack:"number"`
	Winner  *int64 `msgpack:"winner,omitempty"`
	Group1  string `msgpack:"group1,omitempty"`
	Group2  string `msgpack:"group2,omitempty"`
}

// CreateMatch assigns an id and defaults FramesToWin when unset.
func (r *MatchRepository) CreateMatch(m domain.Match) (domain.Match, error) {
	id, err := r.ids.Next()
	if err != nil {
		return domain.Match{}, err
	}
	m.ID = domain.MatchID(id)
	if m.FramesToWin <= 0 {
		m.FramesToWin = domain.DefaultFramesToWin
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return setRecord(txn, matchKey(id), fromMatch(m))
	})
	if err != nil {
		return domain.Match{}, err
	}
	return m, nil
}

func (r *MatchRepository) GetMatch(id domain.MatchID) (domain.Match, error) {
	var m domain.Match
	err := r.db.View(func(txn *badger.Txn) error {
		disk, err := getRecord[DiskMatch](txn, matchKey(int64(id)), fmt.Errorf("%w: %d", errors.ErrMatchNotFound, id))
		if err != nil {
			return err
		}
		m = toMatch(disk)
		return nil
	})
	return m, err
}

func (r *MatchRepository) UpdateMatch(m domain.Match) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := getRecord[DiskMatch](txn, matchKey(int64(m.ID)), errors.ErrMatchNotFound); err != nil {
			return err
		}
		return setRecord(txn, matchKey(int64(m.ID)), fromMatch(m))
	})
}

// CreateFrame stores the frame and indexes it under its match.
func (r *MatchRepository) CreateFrame(f domain.Frame) (domain.Frame, error) {
	id, err := r.ids.Next()
	if err != nil {
		return domain.Frame{}, err
	}
	f.ID = domain.FrameID(id)
	err = r.db.Update(func(txn *badger.Txn) error {
		if _, err := getRecord[DiskMatch](txn, matchKey(int64(f.MatchID)), errors.ErrMatchNotFound); err != nil {
			return err
		}
		if err := setRecord(txn, frameKey(id), fromFrame(f)); err != nil {
			return err
		}
		return txn.Set(matchFrameKey(int64(f.MatchID), id), nil)
	})
	if err != nil {
		return domain.Frame{}, err
	}
	return f, nil
}

func (r *MatchRepository) GetFrame(id domain.FrameID) (domain.Frame, error) {
	var f domain.Frame
	err := r.db.View(func(txn *badger.Txn) error {
		disk, err := getRecord[DiskFrame](txn, frameKey(int64(id)), fmt.Errorf("%w: %d", errors.ErrFrameNotFound, id))
		if err != nil {
			return err
		}
		f = toFrame(disk)
		return nil
	})
	return f, err
}

// UpdateFrame rewrites winner and ball groups. The owning match never changes.
func (r *MatchRepository) UpdateFrame(f domain.Frame) error {
	return r.db.Update(func(txn *badger.Txn) error {
		current, err := getRecord[DiskFrame](txn, frameKey(int64(f.ID)), errors.ErrFrameNotFound)
		if err != nil {
			return err
		}
		f.MatchID = domain.MatchID(current.MatchID)
		return setRecord(txn, frameKey(int64(f.ID)), fromFrame(f))
	})
}

// ListFrames returns the match's frames ordered by frame number.
func (r *MatchRepository) ListFrames(matchID domain.MatchID) ([]domain.Frame, error) {
	frames := []domain.Frame{}
	err := r.db.View(func(txn *badger.Txn) error {
		for _, key := range keysWithPrefix(txn, matchFramePrefix(int64(matchID)), false) {
			frameID, err := lastSegment(key)
			if err != nil {
				return err
			}
			disk, err := getRecord[DiskFrame](txn, frameKey(frameID), errors.ErrFrameNotFound)
			if err != nil {
				return err
			}
			frames = append(frames, toFrame(disk))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(frames, func(i, j int) bool { return frames[i].Number < frames[j].Number })
	return frames, nil
}

// DeleteFrame drops the frame and its memberships.
// With deleteEvents the attached event records are deleted as well, otherwise they are only detached.
func (r *MatchRepository) DeleteFrame(id domain.FrameID, deleteEvents bool) error {
	return r.db.Update(func(txn *badger.Txn) error {
		disk, err := getRecord[DiskFrame](txn, frameKey(int64(id)), errors.ErrFrameNotFound)
		if err != nil {
			return err
		}
		for _, key := range keysWithPrefix(txn, memberPrefix(int64(id)), false) {
			_, eventID, err := parseMemberKey(key)
			if err != nil {
				return err
			}
			if deleteEvents {
				err = deleteEvent(txn, eventID)
			} else {
				err = detach(txn, int64(id), eventID)
			}
			if err != nil {
				return err
			}
		}
		if err := txn.Delete(matchFrameKey(disk.MatchID, int64(id))); err != nil {
			return err
		}
		return txn.Delete(frameKey(int64(id)))
	})
}

func fromMatch(m domain.Match) DiskMatch {
	var date *int64
	if m.MatchDate != nil {
		date = lo.ToPtr(m.MatchDate.UnixNano())
	}
	return DiskMatch{
		ID:          int64(m.ID),
		Player1:     int64(m.Player1),
		Player2:     int64(m.Player2),
		MatchDate:   date,
		FramesToWin: m.FramesToWin,
		GameMode:    string(m.GameMode),
	}
}

func toMatch(d DiskMatch) domain.Match {
	var date *time.Time
	if d.MatchDate != nil {
		date = lo.ToPtr(time.Unix(0, *d.MatchDate).UTC())
	}
	return domain.Match{
		ID:          domain.MatchID(d.ID),
		Player1:     domain.ProfileID(d.Player1),
		Player2:     domain.ProfileID(d.Player2),
		MatchDate:   date,
		FramesToWin: d.FramesToWin,
		GameMode:    domain.GameMode(d.GameMode),
	}
}

func fromFrame(f domain.Frame) DiskFrame {
	var winner *int64
	if f.Winner != nil {
		winner = lo.ToPtr(int64(*f.Winner))
	}
	return DiskFrame{
		ID:      int64(f.ID),
		MatchID: int64(f.MatchID),
		Number:  f.Number,
		Winner:  winner,
		Group1:  string(f.Player1BallGroup),
		Group2:  string(f.Player2BallGroup),
	}
}

func toFrame(d DiskFrame) domain.Frame {
	var winner *domain.ProfileID
	if d.Winner != nil {
		winner = lo.ToPtr(domain.ProfileID(*d.Winner))
	}
	return domain.Frame{
		ID:               domain.FrameID(d.ID),
		MatchID:          domain.MatchID(d.MatchID),
		Number:           d.Number,
		Winner:           winner,
		Player1BallGroup: domain.BallGroup(d.Group1),
		Player2BallGroup: domain.BallGroup(d.Group2),
	}
}
