package repositories

import (
	"billiard-live/domain"
	"billiard-live/errors"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func Test_CreateMatch_Defaults_Frames_To_Win(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	req.Equal(domain.DefaultFramesToWin, f.match.FramesToWin)
	fetched, err := f.matches.GetMatch(f.match.ID)
	req.NoError(err)
	req.Equal(f.match, fetched)
}

func Test_UpdateMatch_Round_Trip(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	date := time.Date(2026, 5, 1, 20, 30, 0, 0, time.UTC)

	m := f.match
	m.MatchDate = &date
	m.FramesToWin = 7
	req.NoError(f.matches.UpdateMatch(m))

	fetched, err := f.matches.GetMatch(m.ID)
	req.NoError(err)
	req.Equal(7, fetched.FramesToWin)
	req.True(date.Equal(*fetched.MatchDate))

	req.ErrorIs(f.matches.UpdateMatch(domain.Match{ID: 777}), errors.ErrMatchNotFound)
}

func Test_GetMatch_Unknown(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	_, err := f.matches.GetMatch(31337)

	req.ErrorIs(err, errors.ErrMatchNotFound)
	req.True(errors.IsClientError(err))
}

func Test_ListFrames_Sorted_By_Number(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	_, err := f.matches.CreateFrame(domain.Frame{MatchID: f.match.ID, Number: 3})
	req.NoError(err)
	_, err = f.matches.CreateFrame(domain.Frame{MatchID: f.match.ID, Number: 2})
	req.NoError(err)

	frames, err := f.matches.ListFrames(f.match.ID)
	req.NoError(err)

	req.Equal([]int{1, 2, 3}, lo.Map(frames, func(fr domain.Frame, _ int) int { return fr.Number }))
	empty, err := f.matches.ListFrames(4242)
	req.NoError(err)
	req.Empty(empty)
}

func Test_CreateFrame_For_Unknown_Match(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	_, err := f.matches.CreateFrame(domain.Frame{MatchID: 999, Number: 1})

	req.ErrorIs(err, errors.ErrMatchNotFound)
}

func Test_UpdateFrame_Keeps_Owner(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	frame := f.frame
	frame.Winner = lo.ToPtr(f.match.Player2)
	frame.Player1BallGroup = domain.BallGroupStriped
	frame.MatchID = 999
	req.NoError(f.matches.UpdateFrame(frame))

	fetched, err := f.matches.GetFrame(frame.ID)
	req.NoError(err)
	req.Equal(f.match.ID, fetched.MatchID)
	req.Equal(f.match.Player2, *fetched.Winner)
	req.Equal(domain.BallGroupStriped, fetched.Player1BallGroup)
	req.Equal(domain.BallGroupUnset, fetched.Player2BallGroup)
}

func Test_Profiles(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	profiles := NewProfileRepository(f.db, f.ids)

	biro, err := profiles.CreateProfile(domain.Profile{Username: "ref", IsBiro: true})
	req.NoError(err)

	fetched, err := profiles.GetProfile(biro.ID)
	req.NoError(err)
	req.True(fetched.IsBiro)

	many, err := profiles.GetProfiles(biro.ID, 5555)
	req.NoError(err)
	req.Len(many, 1)

	_, err = profiles.GetProfile(5555)
	req.ErrorIs(err, errors.ErrProfileNotFound)
}
