// Package event defines the messages pushed to connected sessions.
// Payloads are opaque here: the hub never interprets them.
package event

import (
	"billiard-live/domain"
)

type MessageType string

// Broadcast types, fanned out to every session of a match.
const (
	MatchState         MessageType = "match_state"
	MatchUpdate        MessageType = "match_update"
	FrameUpdate        MessageType = "frame_update"
	EventCreated       MessageType = "event_created"
	EventRemoved       MessageType = "event_removed"
	EventsRemoved      MessageType = "events_removed"
	FrameEventsCleared MessageType = "frame_events_cleared"
)

// Direct replies, sent to a single session.
const (
	Pong          MessageType = "pong"
	Error         MessageType = "error"
	FrameStarted  MessageType = "frame_started"
	FrameEnded    MessageType = "frame_ended"
	MatchUpdated  MessageType = "match_updated"
	BallGroupsSet MessageType = "ball_groups_set"
)

// Outbound is anything a session can serialize to its transport.
type Outbound interface {
	MessageType() MessageType
}

// Broadcast is a typed multicast message for one match.
type Broadcast struct {
	Match domain.MatchID `json:"-"`
	Type  MessageType    `json:"type"`
	Data  any            `json:"data"`
}

func (b Broadcast) MessageType() MessageType { return b.Type }
func (b Broadcast) MatchID() domain.MatchID  { return b.Match }

// Ack answers exactly one scorekeeper command, success or failure.
type Ack struct {
	Type    MessageType   `json:"type"`
	Success bool          `json:"success"`
	Action  domain.Action `json:"action,omitempty"`
	Data    any           `json:"data,omitempty"`
	Message string        `json:"message,omitempty"`
}

func (a Ack) MessageType() MessageType { return a.Type }

// Notice is a direct, non-command message such as pong or a protocol error.
type Notice struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message,omitempty"`
}

func (n Notice) MessageType() MessageType { return n.Type }

func Failure(action domain.Action, message string) Ack {
	return Ack{Type: Error, Success: false, Action: action, Message: message}
}

// Outcome is the result of executing one command.
// Ack always goes back to the sender, Broadcast (when set) is fanned out after it.
type Outcome struct {
	Ack       Ack
	Broadcast *Broadcast
}
