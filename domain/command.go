package domain

import (
	"time"
)

type Action string

const (
	ActionCreateEvent           Action = "create_event"
	ActionStartFrame            Action = "start_frame"
	ActionEndFrame              Action = "end_frame"
	ActionUpdateMatch           Action = "update_match"
	ActionRemoveEvent           Action = "remove_event"
	ActionUndoLastEvent         Action = "undo_last_event"
	ActionRemoveEventsFromFrame Action = "remove_events_from_frame"
	ActionClearFrameEvents      Action = "clear_frame_events"
	ActionSetBallGroups         Action = "set_ball_groups"
)

// Command is a scorekeeper mutation addressed to one match.
type Command interface {
	MatchID() MatchID
	Action() Action
}

// Optional is a partially updated field.
// Set false means the field was omitted, Set true with a nil Value means an explicit null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

type CreateEventCommand struct {
	Match      MatchID
	FrameID    FrameID
	Type       EventType
	Player     *ProfileID
	BallIDs    []string
	Details    string
	TurnNumber *int
}

func (c CreateEventCommand) MatchID() MatchID { return c.Match }
func (c CreateEventCommand) Action() Action   { return ActionCreateEvent }

// StartFrameCommand opens a frame. A nil FrameNumber means "next one".
type StartFrameCommand struct {
	Match       MatchID
	FrameNumber *int
}

func (c StartFrameCommand) MatchID() MatchID { return c.Match }
func (c StartFrameCommand) Action() Action   { return ActionStartFrame }

type EndFrameCommand struct {
	Match   MatchID
	FrameID FrameID
	Winner  Optional[ProfileID]
}

func (c EndFrameCommand) MatchID() MatchID { return c.Match }
func (c EndFrameCommand) Action() Action   { return ActionEndFrame }

type UpdateMatchCommand struct {
	Match       MatchID
	MatchDate   Optional[time.Time]
	FramesToWin Optional[int]
}

func (c UpdateMatchCommand) MatchID() MatchID { return c.Match }
func (c UpdateMatchCommand) Action() Action   { return ActionUpdateMatch }

type RemoveEventCommand struct {
	Match   MatchID
	EventID EventID
}

func (c RemoveEventCommand) MatchID() MatchID { return c.Match }
func (c RemoveEventCommand) Action() Action   { return ActionRemoveEvent }

type UndoLastEventCommand struct {
	Match   MatchID
	FrameID FrameID
}

func (c UndoLastEventCommand) MatchID() MatchID { return c.Match }
func (c UndoLastEventCommand) Action() Action   { return ActionUndoLastEvent }

type RemoveEventsFromFrameCommand struct {
	Match    MatchID
	FrameID  FrameID
	EventIDs []EventID
}

func (c RemoveEventsFromFrameCommand) MatchID() MatchID { return c.Match }
func (c RemoveEventsFromFrameCommand) Action() Action   { return ActionRemoveEventsFromFrame }

type ClearFrameEventsCommand struct {
	Match   MatchID
	FrameID FrameID
}

func (c ClearFrameEventsCommand) MatchID() MatchID { return c.Match }
func (c ClearFrameEventsCommand) Action() Action   { return ActionClearFrameEvents }

// SetBallGroupsCommand carries the raw requested groups.
// Values other than full or striped are ignored when applied.
type SetBallGroupsCommand struct {
	Match        MatchID
	FrameID      FrameID
	Player1Group *string
	Player2Group *string
}

func (c SetBallGroupsCommand) MatchID() MatchID { return c.Match }
func (c SetBallGroupsCommand) Action() Action   { return ActionSetBallGroups }
