// Package domain contains core concepts of the live billiards system.
// Matches, frames and the immutable events logged during play live here.
// No runtime, network, or storage logic should be added here.
package domain

import (
	"time"
)

type MatchID int64
type FrameID int64
type EventID int64
type ProfileID int64

type EventType string

const (
	FrameStart            EventType = "frame_start"
	FrameEnd              EventType = "frame_end"
	NextPlayer            EventType = "next_player"
	ScoreUpdate           EventType = "score_update"
	BallsPotted           EventType = "balls_potted"
	Faul                  EventType = "faul"
	FaulAndNextPlayer     EventType = "faul_and_next_player"
	CueBallLeftTable      EventType = "cue_ball_left_table"
	CueBallGetsPositioned EventType = "cue_ball_gets_positioned"
)

var EventTypes = []EventType{
	FrameStart, FrameEnd, NextPlayer, ScoreUpdate, BallsPotted,
	Faul, FaulAndNextPlayer, CueBallLeftTable, CueBallGetsPositioned,
}

func (t EventType) Valid() bool {
	for _, et := range EventTypes {
		if et == t {
			return true
		}
	}
	return false
}

type BallGroup string

const (
	BallGroupUnset   BallGroup = ""
	BallGroupFull    BallGroup = "full"
	BallGroupStriped BallGroup = "striped"
)

// ParseBallGroup returns false for anything other than full or striped.
func ParseBallGroup(s string) (BallGroup, bool) {
	switch BallGroup(s) {
	case BallGroupFull, BallGroupStriped:
		return BallGroup(s), true
	}
	return BallGroupUnset, false
}

type GameMode string

const (
	EightBall GameMode = "8ball"
	Snooker   GameMode = "snooker"
)

// Profile is a player or an official. Only profiles flagged IsBiro may keep score.
type Profile struct {
	ID        ProfileID
	FirstName string
	LastName  string
	Username  string
	IsBiro    bool
}

func (p Profile) FullName() string {
	name := p.LastName
	if p.FirstName != "" {
		if name != "" {
			name += " "
		}
		name += p.FirstName
	}
	if name == "" {
		return p.Username
	}
	return name
}

func (p Profile) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	return p.FullName()
}

// MatchEvent is an immutable fact about in-frame play.
// BallIDs is only meaningful for BallsPotted.
type MatchEvent struct {
	ID         EventID
	Type       EventType
	Timestamp  time.Time
	Player     *ProfileID
	BallIDs    []string
	Details    string
	TurnNumber *int
}

// Frame is one game of a match. Its in-play state is entirely derived from
// its event log; Winner is an explicit decision.
type Frame struct {
	ID               FrameID
	MatchID          MatchID
	Number           int
	Winner           *ProfileID
	Player1BallGroup BallGroup
	Player2BallGroup BallGroup
}

// Match is a best-of-N contest between two players.
type Match struct {
	ID          MatchID
	Player1     ProfileID
	Player2     ProfileID
	MatchDate   *time.Time
	FramesToWin int
	GameMode    GameMode
}

const DefaultFramesToWin = 5

// HasPlayer reports whether the profile plays in this match.
func (m Match) HasPlayer(id ProfileID) bool {
	return m.Player1 == id || m.Player2 == id
}
