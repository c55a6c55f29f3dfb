package workers

import (
	"billiard-live/contract"
	"billiard-live/domain"
	"billiard-live/domain/event"
	"billiard-live/errors"
	"billiard-live/mocks"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// recordingSession buffers what it is sent, like a websocket session would.
type recordingSession struct {
	id       string
	mu       sync.Mutex
	capacity int
	messages []event.Outbound
	closed   bool
	code     int
}

func newRecordingSession(id string, capacity int) *recordingSession {
	return &recordingSession{id: id, capacity: capacity}
}

func (s *recordingSession) ID() string { return s.id }

func (s *recordingSession) Send(msg event.Outbound) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrSessionGone
	}
	if len(s.messages) >= s.capacity {
		return errors.ErrSlowConsumer
	}
	s.messages = append(s.messages, msg)
	return nil
}

func (s *recordingSession) Close(code int, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed, s.code = true, code
}

func (s *recordingSession) types() []event.MessageType {
	s.mu.Lock()
	defer s.mu.Unlock()
	var types []event.MessageType
	for _, m := range s.messages {
		types = append(types, m.MessageType())
	}
	return types
}

func (s *recordingSession) isClosed() (bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed, s.code
}

func startRoom(t *testing.T, service contract.IMatchService) (*MatchRoom, context.CancelFunc) {
	t.Helper()
	room := NewMatchRoom(1, service, 16, slog.Default(), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = room.Run(ctx) }()
	t.Cleanup(cancel)
	return room, cancel
}

func snapshotOf(matchID domain.MatchID) event.Broadcast {
	return event.Broadcast{Match: matchID, Type: event.MatchState, Data: "state"}
}

func okOutcome(cmd domain.Command) event.Outcome {
	return event.Outcome{
		Ack:       event.Ack{Type: event.FrameStarted, Success: true, Action: cmd.Action()},
		Broadcast: &event.Broadcast{Match: cmd.MatchID(), Type: event.FrameUpdate},
	}
}

func drain(t *testing.T, room *MatchRoom) {
	t.Helper()
	room.Close()
	select {
	case <-room.Done():
	case <-time.After(time.Second):
		t.Fatal("room did not drain")
	}
}

func TestMatchRoom_Join_Sends_Snapshot_First(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	service := mocks.NewMockIMatchService(ctrl)
	service.EXPECT().Snapshot(gomock.Any(), domain.MatchID(1)).Return(snapshotOf(1), nil).Times(2)
	service.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command) event.Outcome { return okOutcome(cmd) },
	).Times(1)

	room, _ := startRoom(t, service)
	spectator := newRecordingSession("spectator", 10)
	biro := newRecordingSession("biro", 10)

	// Given a spectator and a scorekeeper in the room
	req.NoError(room.Join(context.Background(), spectator))
	req.NoError(room.Join(context.Background(), biro))

	// When the scorekeeper starts a frame
	req.NoError(room.Submit(context.Background(), biro, domain.StartFrameCommand{Match: 1}))
	drain(t, room)

	// Then both got the snapshot first, the scorekeeper its ack before the broadcast
	req.Equal([]event.MessageType{event.MatchState, event.FrameUpdate}, spectator.types())
	req.Equal([]event.MessageType{event.MatchState, event.FrameStarted, event.FrameUpdate}, biro.types())
}

func TestMatchRoom_Unknown_Match_Sends_Error_Notice(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	service := mocks.NewMockIMatchService(ctrl)
	service.EXPECT().Snapshot(gomock.Any(), gomock.Any()).
		Return(event.Broadcast{}, fmt.Errorf("%w: 1", errors.ErrMatchNotFound)).Times(1)

	room, _ := startRoom(t, service)
	spectator := newRecordingSession("spectator", 10)
	req.NoError(room.Join(context.Background(), spectator))
	drain(t, room)

	req.Equal([]event.MessageType{event.Error}, spectator.types())
	req.Equal(1, room.Subscribers())
}

func TestMatchRoom_Failed_Command_Is_Not_Broadcast(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	service := mocks.NewMockIMatchService(ctrl)
	service.EXPECT().Snapshot(gomock.Any(), gomock.Any()).Return(snapshotOf(1), nil).AnyTimes()
	service.EXPECT().Execute(gomock.Any(), gomock.Any()).
		Return(event.Outcome{Ack: event.Failure(domain.ActionUndoLastEvent, "no events to undo in this frame")}).
		Times(1)

	room, _ := startRoom(t, service)
	spectator := newRecordingSession("spectator", 10)
	biro := newRecordingSession("biro", 10)
	req.NoError(room.Join(context.Background(), spectator))
	req.NoError(room.Join(context.Background(), biro))

	req.NoError(room.Submit(context.Background(), biro, domain.UndoLastEventCommand{Match: 1, FrameID: 2}))
	drain(t, room)

	req.Equal([]event.MessageType{event.MatchState}, spectator.types())
	req.Equal([]event.MessageType{event.MatchState, event.Error}, biro.types())
}

func TestMatchRoom_Panic_Becomes_Failure_Ack(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	service := mocks.NewMockIMatchService(ctrl)
	service.EXPECT().Snapshot(gomock.Any(), gomock.Any()).Return(snapshotOf(1), nil).AnyTimes()
	gomock.InOrder(
		service.EXPECT().Execute(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, domain.Command) event.Outcome { panic("nil map") }),
		service.EXPECT().Execute(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cmd domain.Command) event.Outcome { return okOutcome(cmd) }),
	)

	room, _ := startRoom(t, service)
	spectator := newRecordingSession("spectator", 10)
	biro := newRecordingSession("biro", 10)
	req.NoError(room.Join(context.Background(), spectator))
	req.NoError(room.Join(context.Background(), biro))

	req.NoError(room.Submit(context.Background(), biro, domain.StartFrameCommand{Match: 1}))
	req.NoError(room.Submit(context.Background(), biro, domain.StartFrameCommand{Match: 1}))
	drain(t, room)

	// Then the room survived the panic and kept processing
	req.Equal([]event.MessageType{event.MatchState, event.Error, event.FrameStarted, event.FrameUpdate}, biro.types())
	req.Equal([]event.MessageType{event.MatchState, event.FrameUpdate}, spectator.types())
	biro.mu.Lock()
	ack := biro.messages[1].(event.Ack)
	biro.mu.Unlock()
	req.Equal("internal error", ack.Message)
	req.False(ack.Success)
}

func TestMatchRoom_Slow_Consumer_Is_Evicted(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	service := mocks.NewMockIMatchService(ctrl)
	service.EXPECT().Snapshot(gomock.Any(), gomock.Any()).Return(snapshotOf(1), nil).AnyTimes()
	service.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command) event.Outcome { return okOutcome(cmd) },
	).Times(3)

	room, _ := startRoom(t, service)
	slow := newRecordingSession("slow", 2)
	biro := newRecordingSession("biro", 100)
	req.NoError(room.Join(context.Background(), slow))
	req.NoError(room.Join(context.Background(), biro))

	for i := 0; i < 3; i++ {
		req.NoError(room.Submit(context.Background(), biro, domain.StartFrameCommand{Match: 1}))
	}
	drain(t, room)

	closed, code := slow.isClosed()
	req.True(closed)
	req.Equal(contract.CloseTryAgainLater, code)
	req.Equal(1, room.Subscribers())
	req.Len(biro.types(), 7)
}

func TestMatchRoom_Ack_To_Gone_Sender_Is_Dropped(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	service := mocks.NewMockIMatchService(ctrl)
	service.EXPECT().Snapshot(gomock.Any(), gomock.Any()).Return(snapshotOf(1), nil).AnyTimes()
	service.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command) event.Outcome { return okOutcome(cmd) },
	).Times(1)

	room, _ := startRoom(t, service)
	spectator := newRecordingSession("spectator", 10)
	biro := newRecordingSession("biro", 10)
	req.NoError(room.Join(context.Background(), spectator))
	req.NoError(room.Join(context.Background(), biro))

	// Given the scorekeeper disconnects right after sending a command
	req.NoError(room.Submit(context.Background(), biro, domain.StartFrameCommand{Match: 1}))
	biro.Close(contract.CloseNormal, "")
	room.Leave(biro)
	drain(t, room)

	// Then the command still completed for the spectators
	req.Equal([]event.MessageType{event.MatchState, event.FrameUpdate}, spectator.types())
}

func TestMatchRoom_Rejects_After_Close(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	service := mocks.NewMockIMatchService(ctrl)

	room, _ := startRoom(t, service)
	drain(t, room)

	err := room.Submit(context.Background(), newRecordingSession("late", 1), domain.StartFrameCommand{Match: 1})
	req.ErrorIs(err, errors.ErrRoomClosed)
	req.ErrorIs(room.Join(context.Background(), newRecordingSession("late", 1)), errors.ErrRoomClosed)

	err = room.Submit(context.Background(), newRecordingSession("x", 1), domain.StartFrameCommand{Match: 2})
	req.ErrorIs(err, errors.ErrInvalidCommand)
}

func TestMatchRoom_Commands_Are_Serialized(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	service := mocks.NewMockIMatchService(ctrl)

	var mu sync.Mutex
	inFlight, maxInFlight := 0, 0
	service.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command) event.Outcome {
			mu.Lock()
			inFlight++
			maxInFlight = max(maxInFlight, inFlight)
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inFlight--
			mu.Unlock()
			return event.Outcome{Ack: event.Ack{Type: event.FrameStarted, Success: true}}
		},
	).Times(20)

	room, _ := startRoom(t, service)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sender := newRecordingSession(fmt.Sprintf("biro-%d", i), 1)
			_ = room.Submit(context.Background(), sender, domain.StartFrameCommand{Match: 1})
		}(i)
	}
	wg.Wait()
	drain(t, room)

	req.Equal(1, maxInFlight)
}
