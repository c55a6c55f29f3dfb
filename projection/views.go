package projection

import (
	"billiard-live/domain"
	"sort"
	"time"

	"github.com/samber/lo"
)

// Profiles resolves player references while building views.
type Profiles map[domain.ProfileID]domain.Profile

// FrameLog is a frame together with its attached events.
type FrameLog struct {
	Frame  domain.Frame
	Events []domain.MatchEvent
}

type ProfileView struct {
	ID          domain.ProfileID `json:"id"`
	FirstName   string           `json:"first_name,omitempty"`
	LastName    string           `json:"last_name,omitempty"`
	Username    string           `json:"username,omitempty"`
	IsBiro      bool             `json:"is_biro"`
	FullName    string           `json:"full_name,omitempty"`
	DisplayName string           `json:"display_name,omitempty"`
}

type EventView struct {
	ID         domain.EventID   `json:"id"`
	Type       domain.EventType `json:"eventType"`
	Timestamp  time.Time        `json:"timestamp"`
	Details    string           `json:"details"`
	TurnNumber *int             `json:"turn_number"`
	Player     *ProfileView     `json:"player"`
	BallIDs    []string         `json:"ball_ids"`
}

type FrameView struct {
	ID               domain.FrameID     `json:"id"`
	MatchID          domain.MatchID     `json:"match_id"`
	Number           int                `json:"frame_number"`
	Events           []EventView        `json:"events"`
	Winner           *ProfileView       `json:"winner"`
	Player1BallGroup *string            `json:"player1_ball_group"`
	Player2BallGroup *string            `json:"player2_ball_group"`
	BallsOnTable     []string           `json:"balls_on_table"`
	Turns            [][]domain.EventID `json:"turns"`
}

type MatchView struct {
	ID                domain.MatchID  `json:"id"`
	Player1           ProfileView     `json:"player1"`
	Player2           ProfileView     `json:"player2"`
	MatchDate         *time.Time      `json:"match_date"`
	FramesToWin       int             `json:"frames_to_win"`
	FramesNeededToWin int             `json:"frames_needed_to_win"`
	Player1Wins       int             `json:"player1_wins"`
	Player2Wins       int             `json:"player2_wins"`
	GameMode          domain.GameMode `json:"game_mode,omitempty"`
	Frames            []FrameView     `json:"match_frames"`
}

func NewProfileView(p domain.Profile) ProfileView {
	return ProfileView{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Username:    p.Username,
		IsBiro:      p.IsBiro,
		FullName:    p.FullName(),
		DisplayName: p.DisplayName(),
	}
}

func (p Profiles) view(id *domain.ProfileID) *ProfileView {
	if id == nil {
		return nil
	}
	if profile, ok := p[*id]; ok {
		return lo.ToPtr(NewProfileView(profile))
	}
	// Unknown profiles are still referenced by id
	return &ProfileView{ID: *id}
}

func NewEventView(e domain.MatchEvent, profiles Profiles) EventView {
	ballIDs := e.BallIDs
	if ballIDs == nil {
		ballIDs = []string{}
	}
	return EventView{
		ID:         e.ID,
		Type:       e.Type,
		Timestamp:  e.Timestamp,
		Details:    e.Details,
		TurnNumber: e.TurnNumber,
		Player:     profiles.view(e.Player),
		BallIDs:    ballIDs,
	}
}

func NewFrameView(log FrameLog, profiles Profiles) FrameView {
	events := Ordered(log.Events)
	return FrameView{
		ID:               log.Frame.ID,
		MatchID:          log.Frame.MatchID,
		Number:           log.Frame.Number,
		Events:           lo.Map(events, func(e domain.MatchEvent, _ int) EventView { return NewEventView(e, profiles) }),
		Winner:           profiles.view(log.Frame.Winner),
		Player1BallGroup: groupPtr(log.Frame.Player1BallGroup),
		Player2BallGroup: groupPtr(log.Frame.Player2BallGroup),
		BallsOnTable:     BallsOnTable(events),
		Turns: lo.Map(Turns(events), func(turn []domain.MatchEvent, _ int) []domain.EventID {
			return lo.Map(turn, func(e domain.MatchEvent, _ int) domain.EventID { return e.ID })
		}),
	}
}

// NewMatchView builds the full snapshot sent as match_state.
func NewMatchView(m domain.Match, logs []FrameLog, profiles Profiles) MatchView {
	sorted := make([]FrameLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Frame.Number < sorted[j].Frame.Number
	})

	frames := lo.Map(sorted, func(l FrameLog, _ int) domain.Frame { return l.Frame })
	p1Wins, p2Wins := domain.Score(m, frames)

	return MatchView{
		ID:                m.ID,
		Player1:           *profiles.view(&m.Player1),
		Player2:           *profiles.view(&m.Player2),
		MatchDate:         m.MatchDate,
		FramesToWin:       m.FramesToWin,
		FramesNeededToWin: domain.FramesNeededToWin(m.FramesToWin),
		Player1Wins:       p1Wins,
		Player2Wins:       p2Wins,
		GameMode:          m.GameMode,
		Frames:            lo.Map(sorted, func(l FrameLog, _ int) FrameView { return NewFrameView(l, profiles) }),
	}
}

func groupPtr(g domain.BallGroup) *string {
	if g == domain.BallGroupUnset {
		return nil
	}
	return lo.ToPtr(string(g))
}
