package ws

import (
	"billiard-live/domain"
	"billiard-live/errors"
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// nullable records whether a JSON key was present, and whether it was null.
type nullable[T any] struct {
	set   bool
	value *T
}

func (n *nullable[T]) UnmarshalJSON(data []byte) error {
	n.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.value = &v
	return nil
}

func (n nullable[T]) optional() domain.Optional[T] {
	return domain.Optional[T]{Set: n.set, Value: n.value}
}

// ballIDs accepts ball ids written as strings or as numbers.
type ballIDs []string

func (b *ballIDs) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ids := make([]string, 0, len(raw))
	for _, r := range raw {
		var id string
		if err := json.Unmarshal(r, &id); err == nil {
			ids = append(ids, id)
			continue
		}
		var n json.Number
		if err := json.Unmarshal(r, &n); err != nil {
			return fmt.Errorf("ball id %s is neither a string nor a number", r)
		}
		ids = append(ids, n.String())
	}
	*b = ids
	return nil
}

// looseString keeps string values and drops anything else.
type looseString struct {
	value *string
}

func (l *looseString) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err == nil && !bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		l.value = &v
	}
	return nil
}

type envelope struct {
	Type   string `json:"type"`
	Action string `json:"action"`
}

type eventData struct {
	FrameID    int64   `json:"frame_id" validate:"gt=0"`
	EventType  string  `json:"eventType" validate:"required"`
	Details    string  `json:"details"`
	TurnNumber *int    `json:"turn_number" validate:"omitempty,gte=0"`
	PlayerID   *int64  `json:"player_id" validate:"omitempty,gt=0"`
	BallIDs    ballIDs `json:"ball_ids" validate:"dive,required"`
}

type createEventPayload struct {
	EventData *eventData `json:"event_data"`
}

type startFramePayload struct {
	FrameData struct {
		FrameNumber *int `json:"frame_number" validate:"omitempty,gt=0"`
	} `json:"frame_data"`
}

type endFramePayload struct {
	FrameID  int64           `json:"frame_id" validate:"gt=0"`
	WinnerID nullable[int64] `json:"winner_id"`
}

type updateMatchPayload struct {
	Updates struct {
		MatchDate   nullable[time.Time] `json:"match_date"`
		FramesToWin nullable[int]       `json:"frames_to_win"`
	} `json:"updates"`
}

type removeEventPayload struct {
	EventID int64 `json:"event_id" validate:"gt=0"`
}

type framePayload struct {
	FrameID int64 `json:"frame_id" validate:"gt=0"`
}

type removeEventsPayload struct {
	FrameID  int64   `json:"frame_id" validate:"gt=0"`
	EventIDs []int64 `json:"event_ids" validate:"dive,gt=0"`
}

type ballGroupsPayload struct {
	FrameID          int64       `json:"frame_id" validate:"gt=0"`
	Player1BallGroup looseString `json:"player1_ball_group"`
	Player2BallGroup looseString `json:"player2_ball_group"`
}

// IsPing reports whether the frame is a liveness {"type":"ping"}.
func IsPing(raw []byte) bool {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return false
	}
	return env.Type == "ping" && env.Action == ""
}

// DecodeCommand parses one inbound scorekeeper frame into a command for the given match.
// The returned action is set whenever the envelope could be read, so failures can be acked
// against it.
func DecodeCommand(matchID domain.MatchID, raw []byte) (domain.Action, domain.Command, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", nil, fmt.Errorf("%w: %v", errors.ErrInvalidJSON, err)
	}
	action := domain.Action(env.Action)

	switch action {
	case domain.ActionCreateEvent:
		var p createEventPayload
		if err := decode(raw, &p); err != nil {
			return action, nil, err
		}
		d := p.EventData
		if d == nil {
			return action, nil, fmt.Errorf("%w: missing event_data", errors.ErrInvalidCommand)
		}
		cmd := domain.CreateEventCommand{
			Match:      matchID,
			FrameID:    domain.FrameID(d.FrameID),
			Type:       domain.EventType(d.EventType),
			BallIDs:    []string(d.BallIDs),
			Details:    d.Details,
			TurnNumber: d.TurnNumber,
		}
		if d.PlayerID != nil {
			player := domain.ProfileID(*d.PlayerID)
			cmd.Player = &player
		}
		return action, cmd, nil

	case domain.ActionStartFrame:
		var p startFramePayload
		if err := decode(raw, &p); err != nil {
			return action, nil, err
		}
		return action, domain.StartFrameCommand{Match: matchID, FrameNumber: p.FrameData.FrameNumber}, nil

	case domain.ActionEndFrame:
		var p endFramePayload
		if err := decode(raw, &p); err != nil {
			return action, nil, err
		}
		winner := domain.Optional[domain.ProfileID]{Set: p.WinnerID.set}
		if p.WinnerID.value != nil {
			id := domain.ProfileID(*p.WinnerID.value)
			winner.Value = &id
		}
		return action, domain.EndFrameCommand{Match: matchID, FrameID: domain.FrameID(p.FrameID), Winner: winner}, nil

	case domain.ActionUpdateMatch:
		var p updateMatchPayload
		if err := decode(raw, &p); err != nil {
			return action, nil, err
		}
		return action, domain.UpdateMatchCommand{
			Match:       matchID,
			MatchDate:   p.Updates.MatchDate.optional(),
			FramesToWin: p.Updates.FramesToWin.optional(),
		}, nil

	case domain.ActionRemoveEvent:
		var p removeEventPayload
		if err := decode(raw, &p); err != nil {
			return action, nil, err
		}
		return action, domain.RemoveEventCommand{Match: matchID, EventID: domain.EventID(p.EventID)}, nil

	case domain.ActionUndoLastEvent:
		var p framePayload
		if err := decode(raw, &p); err != nil {
			return action, nil, err
		}
		return action, domain.UndoLastEventCommand{Match: matchID, FrameID: domain.FrameID(p.FrameID)}, nil

	case domain.ActionRemoveEventsFromFrame:
		var p removeEventsPayload
		if err := decode(raw, &p); err != nil {
			return action, nil, err
		}
		ids := make([]domain.EventID, len(p.EventIDs))
		for i, id := range p.EventIDs {
			ids[i] = domain.EventID(id)
		}
		return action, domain.RemoveEventsFromFrameCommand{Match: matchID, FrameID: domain.FrameID(p.FrameID), EventIDs: ids}, nil

	case domain.ActionClearFrameEvents:
		var p framePayload
		if err := decode(raw, &p); err != nil {
			return action, nil, err
		}
		return action, domain.ClearFrameEventsCommand{Match: matchID, FrameID: domain.FrameID(p.FrameID)}, nil

	case domain.ActionSetBallGroups:
		var p ballGroupsPayload
		if err := decode(raw, &p); err != nil {
			return action, nil, err
		}
		return action, domain.SetBallGroupsCommand{
			Match:        matchID,
			FrameID:      domain.FrameID(p.FrameID),
			Player1Group: p.Player1BallGroup.value,
			Player2Group: p.Player2BallGroup.value,
		}, nil
	}

	if env.Action == "" {
		return action, nil, fmt.Errorf("%w: missing action", errors.ErrUnknownAction)
	}
	return action, nil, fmt.Errorf("%w: %s", errors.ErrUnknownAction, env.Action)
}

func decode(raw []byte, payload any) error {
	if err := json.Unmarshal(raw, payload); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidCommand, err)
	}
	if err := validate.Struct(payload); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidCommand, err)
	}
	return nil
}
