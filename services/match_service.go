package services

import (
	"billiard-live/domain"
	"billiard-live/domain/event"
	"billiard-live/errors"
	"billiard-live/projection"
	"billiard-live/repositories"
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
)

// MatchService applies scorekeeper commands against the stores and turns
// every outcome into an ack plus, on success, a broadcast.
// It is not safe to call concurrently for the same match: the room serializes.
type MatchService struct {
	matches  repositories.IMatchRepository
	events   repositories.IEventRepository
	profiles repositories.IProfileRepository
	log      *slog.Logger
}

func NewMatchService(
	matches repositories.IMatchRepository,
	events repositories.IEventRepository,
	profiles repositories.IProfileRepository,
	log *slog.Logger,
) *MatchService {
	return &MatchService{matches: matches, events: events, profiles: profiles, log: log}
}

type EventCreated struct {
	projection.EventView
	FrameID domain.FrameID `json:"frame_id"`
}

type EventRemoved struct {
	EventID  domain.EventID   `json:"event_id"`
	FrameIDs []domain.FrameID `json:"frame_ids"`
}

type EventUndone struct {
	EventID   domain.EventID   `json:"event_id"`
	FrameID   domain.FrameID   `json:"frame_id"`
	EventType domain.EventType `json:"event_type"`
}

type EventsRemoved struct {
	FrameID         domain.FrameID   `json:"frame_id"`
	RemovedEventIDs []domain.EventID `json:"removed_event_ids"`
	Count           int              `json:"count"`
}

type FrameCleared struct {
	FrameID         domain.FrameID   `json:"frame_id"`
	ClearedEventIDs []domain.EventID `json:"cleared_event_ids"`
	Count           int              `json:"count"`
}

type FrameDenied struct {
	Reason      domain.DenyReason `json:"reason"`
	Player1Wins int               `json:"player1_wins"`
	Player2Wins int               `json:"player2_wins"`
}

// Execute runs one command to completion.
func (s *MatchService) Execute(ctx context.Context, cmd domain.Command) event.Outcome {
	if err := ctx.Err(); err != nil {
		return s.failure(cmd, err)
	}

	var (
		ackType   event.MessageType
		castType  event.MessageType
		data      any
		message   string
		err       error
		broadcast = true
	)

	switch c := cmd.(type) {
	case domain.CreateEventCommand:
		ackType, castType = event.EventCreated, event.EventCreated
		data, err = s.CreateEvent(c)
	case domain.StartFrameCommand:
		ackType, castType = event.FrameStarted, event.FrameUpdate
		data, err = s.StartFrame(c)
	case domain.EndFrameCommand:
		ackType, castType = event.FrameEnded, event.FrameUpdate
		data, err = s.EndFrame(c)
	case domain.UpdateMatchCommand:
		ackType, castType = event.MatchUpdated, event.MatchUpdate
		data, err = s.UpdateMatch(c)
	case domain.RemoveEventCommand:
		ackType, castType = event.EventRemoved, event.EventRemoved
		data, err = s.RemoveEvent(c)
	case domain.UndoLastEventCommand:
		ackType, castType = event.EventRemoved, event.EventRemoved
		data, err = s.UndoLastEvent(c)
		message = "Last event undone"
	case domain.RemoveEventsFromFrameCommand:
		ackType, castType = event.EventsRemoved, event.EventsRemoved
		data, err = s.RemoveEventsFromFrame(c)
	case domain.ClearFrameEventsCommand:
		ackType, castType = event.FrameEventsCleared, event.FrameEventsCleared
		data, err = s.ClearFrameEvents(c)
	case domain.SetBallGroupsCommand:
		ackType, castType = event.BallGroupsSet, event.FrameUpdate
		data, err = s.SetBallGroups(c)
	default:
		err = fmt.Errorf("%w: %T", errors.ErrUnknownAction, cmd)
		broadcast = false
	}
	if err != nil {
		return s.failure(cmd, err)
	}

	outcome := event.Outcome{
		Ack: event.Ack{Type: ackType, Success: true, Action: cmd.Action(), Data: data, Message: message},
	}
	if broadcast {
		outcome.Broadcast = &event.Broadcast{Match: cmd.MatchID(), Type: castType, Data: data}
	}
	return outcome
}

func (s *MatchService) failure(cmd domain.Command, err error) event.Outcome {
	var action domain.Action
	var matchID domain.MatchID
	if cmd != nil {
		action, matchID = cmd.Action(), cmd.MatchID()
	}

	if errors.IsClientError(err) {
		s.log.Debug("Command rejected", "match_id", matchID, "action", action, "error", err)
	} else {
		s.log.Error("Command failed", "match_id", matchID, "action", action, "error", err)
	}

	ack := event.Failure(action, errors.AckMessage(err))
	var denied errors.PolicyDeniedError
	if errors.As(err, &denied) {
		ack.Data = FrameDenied{
			Reason:      denied.Gate.Reason,
			Player1Wins: denied.Gate.Player1Wins,
			Player2Wins: denied.Gate.Player2Wins,
		}
	}
	return event.Outcome{Ack: ack}
}

// CreateEvent appends the event to the frame without looking at the frame's state.
// Only balls_potted ball ids are checked against the catalogue; other types keep them as given.
func (s *MatchService) CreateEvent(c domain.CreateEventCommand) (EventCreated, error) {
	if !c.Type.Valid() {
		return EventCreated{}, fmt.Errorf("%w: unknown event type %q", errors.ErrInvalidCommand, c.Type)
	}
	unknown, ok := lo.Find(c.BallIDs, func(id string) bool { return !domain.IsBall(id) })
	if c.Type == domain.BallsPotted && ok {
		return EventCreated{}, fmt.Errorf("%w: unknown ball %q", errors.ErrInvalidCommand, unknown)
	}
	if _, err := s.frameOf(c.Match, c.FrameID); err != nil {
		return EventCreated{}, err
	}

	created, err := s.events.Append(c.FrameID, domain.MatchEvent{
		Type:       c.Type,
		Player:     c.Player,
		BallIDs:    c.BallIDs,
		Details:    c.Details,
		TurnNumber: c.TurnNumber,
	})
	if err != nil {
		return EventCreated{}, err
	}

	profiles, err := s.profilesFor(nil, []domain.MatchEvent{created})
	if err != nil {
		return EventCreated{}, err
	}
	return EventCreated{EventView: projection.NewEventView(created, profiles), FrameID: c.FrameID}, nil
}

// StartFrame evaluates the lifecycle gate against the current frames on every attempt.
func (s *MatchService) StartFrame(c domain.StartFrameCommand) (projection.FrameView, error) {
	match, err := s.matches.GetMatch(c.Match)
	if err != nil {
		return projection.FrameView{}, err
	}
	frames, err := s.matches.ListFrames(c.Match)
	if err != nil {
		return projection.FrameView{}, err
	}

	gate := domain.CanCreateFrame(match, frames)
	if !gate.Allowed {
		return projection.FrameView{}, errors.PolicyDeniedError{Gate: gate}
	}

	number := len(frames) + 1
	if c.FrameNumber != nil {
		if *c.FrameNumber <= 0 {
			return projection.FrameView{}, fmt.Errorf("%w: frame_number must be positive", errors.ErrInvalidCommand)
		}
		number = *c.FrameNumber
	}

	frame, err := s.matches.CreateFrame(domain.Frame{MatchID: c.Match, Number: number})
	if err != nil {
		return projection.FrameView{}, err
	}
	s.log.Info("Frame started", "match_id", c.Match, "frame_id", frame.ID, "frame_number", number)
	return projection.NewFrameView(projection.FrameLog{Frame: frame, Events: []domain.MatchEvent{}}, projection.Profiles{}), nil
}

// EndFrame sets the winner when given, an explicit null clears it.
func (s *MatchService) EndFrame(c domain.EndFrameCommand) (projection.FrameView, error) {
	frame, err := s.frameOf(c.Match, c.FrameID)
	if err != nil {
		return projection.FrameView{}, err
	}

	if c.Winner.Set {
		if c.Winner.Value != nil {
			match, err := s.matches.GetMatch(c.Match)
			if err != nil {
				return projection.FrameView{}, err
			}
			if !match.HasPlayer(*c.Winner.Value) {
				return projection.FrameView{}, fmt.Errorf("%w: %d", errors.ErrInvalidWinner, *c.Winner.Value)
			}
		}
		frame.Winner = c.Winner.Value
		if err := s.matches.UpdateFrame(frame); err != nil {
			return projection.FrameView{}, err
		}
	}
	return s.frameView(frame)
}

// UpdateMatch merges only the fields that were sent.
func (s *MatchService) UpdateMatch(c domain.UpdateMatchCommand) (projection.MatchView, error) {
	match, err := s.matches.GetMatch(c.Match)
	if err != nil {
		return projection.MatchView{}, err
	}

	if c.MatchDate.Set {
		match.MatchDate = c.MatchDate.Value
	}
	if c.FramesToWin.Set {
		if c.FramesToWin.Value == nil || *c.FramesToWin.Value <= 0 {
			return projection.MatchView{}, fmt.Errorf("%w: frames_to_win must be a positive integer", errors.ErrInvalidCommand)
		}
		match.FramesToWin = *c.FramesToWin.Value
	}
	if err := s.matches.UpdateMatch(match); err != nil {
		return projection.MatchView{}, err
	}

	snapshot, err := s.Snapshot(context.Background(), c.Match)
	if err != nil {
		return projection.MatchView{}, err
	}
	return snapshot.Data.(projection.MatchView), nil
}

// RemoveEvent deletes an event only if one of the match's frames holds it.
func (s *MatchService) RemoveEvent(c domain.RemoveEventCommand) (EventRemoved, error) {
	frameIDs, err := s.events.FramesOf(c.EventID)
	if err != nil {
		return EventRemoved{}, err
	}

	owned := []domain.FrameID{}
	for _, frameID := range frameIDs {
		frame, err := s.matches.GetFrame(frameID)
		if errors.Is(err, errors.ErrNotFound) {
			continue
		}
		if err != nil {
			return EventRemoved{}, err
		}
		if frame.MatchID == c.Match {
			owned = append(owned, frameID)
		}
	}
	if len(owned) == 0 {
		return EventRemoved{}, errors.ErrEventNotInMatch
	}

	if err := s.events.DeleteEvent(c.EventID); err != nil {
		return EventRemoved{}, err
	}
	return EventRemoved{EventID: c.EventID, FrameIDs: owned}, nil
}

func (s *MatchService) UndoLastEvent(c domain.UndoLastEventCommand) (EventUndone, error) {
	if _, err := s.frameOf(c.Match, c.FrameID); err != nil {
		return EventUndone{}, err
	}
	last, err := s.events.RemoveLast(c.FrameID)
	if err != nil {
		return EventUndone{}, err
	}
	return EventUndone{EventID: last.ID, FrameID: c.FrameID, EventType: last.Type}, nil
}

func (s *MatchService) RemoveEventsFromFrame(c domain.RemoveEventsFromFrameCommand) (EventsRemoved, error) {
	if _, err := s.frameOf(c.Match, c.FrameID); err != nil {
		return EventsRemoved{}, err
	}
	removed, err := s.events.RemoveMany(c.FrameID, c.EventIDs)
	if err != nil {
		return EventsRemoved{}, err
	}
	return EventsRemoved{FrameID: c.FrameID, RemovedEventIDs: removed, Count: len(removed)}, nil
}

func (s *MatchService) ClearFrameEvents(c domain.ClearFrameEventsCommand) (FrameCleared, error) {
	if _, err := s.frameOf(c.Match, c.FrameID); err != nil {
		return FrameCleared{}, err
	}
	cleared, err := s.events.Clear(c.FrameID)
	if err != nil {
		return FrameCleared{}, err
	}
	return FrameCleared{FrameID: c.FrameID, ClearedEventIDs: cleared, Count: len(cleared)}, nil
}

// SetBallGroups ignores values other than full or striped.
func (s *MatchService) SetBallGroups(c domain.SetBallGroupsCommand) (projection.FrameView, error) {
	frame, err := s.frameOf(c.Match, c.FrameID)
	if err != nil {
		return projection.FrameView{}, err
	}

	changed := false
	if c.Player1Group != nil {
		if group, ok := domain.ParseBallGroup(*c.Player1Group); ok {
			frame.Player1BallGroup, changed = group, true
		}
	}
	if c.Player2Group != nil {
		if group, ok := domain.ParseBallGroup(*c.Player2Group); ok {
			frame.Player2BallGroup, changed = group, true
		}
	}
	if changed {
		if err := s.matches.UpdateFrame(frame); err != nil {
			return projection.FrameView{}, err
		}
	}
	return s.frameView(frame)
}

// Snapshot builds the full match_state message.
func (s *MatchService) Snapshot(ctx context.Context, matchID domain.MatchID) (event.Broadcast, error) {
	if err := ctx.Err(); err != nil {
		return event.Broadcast{}, err
	}
	match, err := s.matches.GetMatch(matchID)
	if err != nil {
		return event.Broadcast{}, err
	}
	frames, err := s.matches.ListFrames(matchID)
	if err != nil {
		return event.Broadcast{}, err
	}

	logs := make([]projection.FrameLog, 0, len(frames))
	var all []domain.MatchEvent
	for _, frame := range frames {
		events, err := s.events.List(frame.ID)
		if err != nil {
			return event.Broadcast{}, err
		}
		logs = append(logs, projection.FrameLog{Frame: frame, Events: events})
		all = append(all, events...)
	}

	ids := []domain.ProfileID{match.Player1, match.Player2}
	for _, frame := range frames {
		if frame.Winner != nil {
			ids = append(ids, *frame.Winner)
		}
	}
	profiles, err := s.profilesFor(ids, all)
	if err != nil {
		return event.Broadcast{}, err
	}

	return event.Broadcast{
		Match: matchID,
		Type:  event.MatchState,
		Data:  projection.NewMatchView(match, logs, profiles),
	}, nil
}

// frameOf loads a frame and checks it belongs to the addressed match.
func (s *MatchService) frameOf(matchID domain.MatchID, frameID domain.FrameID) (domain.Frame, error) {
	frame, err := s.matches.GetFrame(frameID)
	if err != nil {
		return domain.Frame{}, err
	}
	if frame.MatchID != matchID {
		return domain.Frame{}, fmt.Errorf("%w: %d in match %d", errors.ErrFrameNotFound, frameID, matchID)
	}
	return frame, nil
}

func (s *MatchService) frameView(frame domain.Frame) (projection.FrameView, error) {
	events, err := s.events.List(frame.ID)
	if err != nil {
		return projection.FrameView{}, err
	}
	var ids []domain.ProfileID
	if frame.Winner != nil {
		ids = append(ids, *frame.Winner)
	}
	profiles, err := s.profilesFor(ids, events)
	if err != nil {
		return projection.FrameView{}, err
	}
	return projection.NewFrameView(projection.FrameLog{Frame: frame, Events: events}, profiles), nil
}

func (s *MatchService) profilesFor(ids []domain.ProfileID, events []domain.MatchEvent) (projection.Profiles, error) {
	for _, e := range events {
		if e.Player != nil {
			ids = append(ids, *e.Player)
		}
	}
	ids = lo.Uniq(ids)
	if len(ids) == 0 {
		return projection.Profiles{}, nil
	}
	profiles, err := s.profiles.GetProfiles(ids...)
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
