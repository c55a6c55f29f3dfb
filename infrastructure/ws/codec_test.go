package ws

import (
	"billiard-live/domain"
	"billiard-live/errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDecodeCommand_Actions(t *testing.T) {
	req := require.New(t)

	_, cmd, err := DecodeCommand(3, []byte(`{"action":"create_event","event_data":{"frame_id":9,"eventType":"balls_potted","player_id":4,"ball_ids":["1","9"],"turn_number":2}}`))
	req.NoError(err)
	create := cmd.(domain.CreateEventCommand)
	req.Equal(domain.MatchID(3), create.MatchID())
	req.Equal(domain.FrameID(9), create.FrameID)
	req.Equal(domain.BallsPotted, create.Type)
	req.Equal(domain.ProfileID(4), *create.Player)
	req.Equal([]string{"1", "9"}, create.BallIDs)
	req.Equal(2, *create.TurnNumber)

	_, cmd, err = DecodeCommand(3, []byte(`{"action":"start_frame"}`))
	req.NoError(err)
	req.Nil(cmd.(domain.StartFrameCommand).FrameNumber)

	_, cmd, err = DecodeCommand(3, []byte(`{"action":"start_frame","frame_data":{"frame_number":4}}`))
	req.NoError(err)
	req.Equal(4, *cmd.(domain.StartFrameCommand).FrameNumber)

	_, cmd, err = DecodeCommand(3, []byte(`{"action":"remove_events_from_frame","frame_id":2,"event_ids":[5,6]}`))
	req.NoError(err)
	req.Equal([]domain.EventID{5, 6}, cmd.(domain.RemoveEventsFromFrameCommand).EventIDs)

	_, cmd, err = DecodeCommand(3, []byte(`{"action":"set_ball_groups","frame_id":2,"player1_ball_group":"full"}`))
	req.NoError(err)
	groups := cmd.(domain.SetBallGroupsCommand)
	req.Equal("full", *groups.Player1Group)
	req.Nil(groups.Player2Group)

	for raw, want := range map[string]domain.Command{
		`{"action":"remove_event","event_id":12}`:      domain.RemoveEventCommand{Match: 3, EventID: 12},
		`{"action":"undo_last_event","frame_id":2}`:    domain.UndoLastEventCommand{Match: 3, FrameID: 2},
		`{"action":"clear_frame_events","frame_id":2}`: domain.ClearFrameEventsCommand{Match: 3, FrameID: 2},
	} {
		_, cmd, err := DecodeCommand(3, []byte(raw))
		req.NoError(err, raw)
		req.Equal(want, cmd, raw)
	}
}

func TestDecodeCommand_Ball_Ids_As_Numbers(t *testing.T) {
	req := require.New(t)

	_, cmd, err := DecodeCommand(3, []byte(`{"action":"create_event","event_data":{"frame_id":9,"eventType":"balls_potted","ball_ids":[1,"cue",15]}}`))

	req.NoError(err)
	req.Equal([]string{"1", "cue", "15"}, cmd.(domain.CreateEventCommand).BallIDs)
}

func TestDecodeCommand_Ball_Groups_Of_Wrong_Type_Are_Dropped(t *testing.T) {
	req := require.New(t)

	_, cmd, err := DecodeCommand(3, []byte(`{"action":"set_ball_groups","frame_id":2,"player1_ball_group":7,"player2_ball_group":null}`))

	req.NoError(err)
	groups := cmd.(domain.SetBallGroupsCommand)
	req.Nil(groups.Player1Group)
	req.Nil(groups.Player2Group)
}

func TestDecodeCommand_Winner_Absent_Null_Or_Set(t *testing.T) {
	req := require.New(t)

	_, cmd, err := DecodeCommand(1, []byte(`{"action":"end_frame","frame_id":2}`))
	req.NoError(err)
	req.False(cmd.(domain.EndFrameCommand).Winner.Set)

	_, cmd, err = DecodeCommand(1, []byte(`{"action":"end_frame","frame_id":2,"winner_id":null}`))
	req.NoError(err)
	winner := cmd.(domain.EndFrameCommand).Winner
	req.True(winner.Set)
	req.Nil(winner.Value)

	_, cmd, err = DecodeCommand(1, []byte(`{"action":"end_frame","frame_id":2,"winner_id":7}`))
	req.NoError(err)
	winner = cmd.(domain.EndFrameCommand).Winner
	req.True(winner.Set)
	req.Equal(domain.ProfileID(7), *winner.Value)
}

func TestDecodeCommand_Update_Match(t *testing.T) {
	req := require.New(t)

	_, cmd, err := DecodeCommand(1, []byte(`{"action":"update_match","updates":{"match_date":"2026-05-01T20:30:00Z"}}`))
	req.NoError(err)
	update := cmd.(domain.UpdateMatchCommand)
	req.True(update.MatchDate.Set)
	req.True(time.Date(2026, 5, 1, 20, 30, 0, 0, time.UTC).Equal(*update.MatchDate.Value))
	req.False(update.FramesToWin.Set)

	_, cmd, err = DecodeCommand(1, []byte(`{"action":"update_match","updates":{"match_date":null,"frames_to_win":7}}`))
	req.NoError(err)
	update = cmd.(domain.UpdateMatchCommand)
	req.True(update.MatchDate.Set)
	req.Nil(update.MatchDate.Value)
	req.Equal(7, *update.FramesToWin.Value)
}

func TestDecodeCommand_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		action domain.Action
		target error
	}{
		{"not json", `{"action":`, "", errors.ErrInvalidJSON},
		{"missing action", `{"frame_id":1}`, "", errors.ErrUnknownAction},
		{"unknown action", `{"action":"fly"}`, "fly", errors.ErrUnknownAction},
		{"create without payload", `{"action":"create_event"}`, domain.ActionCreateEvent, errors.ErrInvalidCommand},
		{"create without frame", `{"action":"create_event","event_data":{"eventType":"faul"}}`, domain.ActionCreateEvent, errors.ErrInvalidCommand},
		{"create without type", `{"action":"create_event","event_data":{"frame_id":1}}`, domain.ActionCreateEvent, errors.ErrInvalidCommand},
		{"frame id of wrong type", `{"action":"undo_last_event","frame_id":"two"}`, domain.ActionUndoLastEvent, errors.ErrInvalidCommand},
		{"zero frame number", `{"action":"start_frame","frame_data":{"frame_number":0}}`, domain.ActionStartFrame, errors.ErrInvalidCommand},
		{"missing event id", `{"action":"remove_event"}`, domain.ActionRemoveEvent, errors.ErrInvalidCommand},
		{"negative event id", `{"action":"remove_events_from_frame","frame_id":1,"event_ids":[-1]}`, domain.ActionRemoveEventsFromFrame, errors.ErrInvalidCommand},
		{"ball id of wrong type", `{"action":"create_event","event_data":{"frame_id":1,"eventType":"faul","ball_ids":[true]}}`, domain.ActionCreateEvent, errors.ErrInvalidCommand},
		{"winner of wrong type", `{"action":"end_frame","frame_id":1,"winner_id":"me"}`, domain.ActionEndFrame, errors.ErrInvalidCommand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)

			action, cmd, err := DecodeCommand(1, []byte(tt.raw))

			req.ErrorIs(err, tt.target)
			req.True(errors.IsClientError(err))
			req.Equal(tt.action, action)
			req.Nil(cmd)
		})
	}
}

func TestIsPing(t *testing.T) {
	req := require.New(t)

	req.True(IsPing([]byte(`{"type":"ping"}`)))
	req.False(IsPing([]byte(`{"type":"ping","action":"start_frame"}`)))
	req.False(IsPing([]byte(`{"action":"start_frame"}`)))
	req.False(IsPing([]byte(`ping`)))
}
