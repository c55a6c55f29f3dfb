package errors

import (
	"billiard-live/domain"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAckMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"not found", ErrFrameNotFound, "frame not found"},
		{"wrapped not found", fmt.Errorf("%w: 42", ErrEventNotFound), "event not found: 42"},
		{"not in match", ErrEventNotInMatch, "event not found in this match"},
		{"validation", fmt.Errorf("%w: frame_id is required", ErrInvalidCommand), "invalid command: frame_id is required"},
		{"policy denied", PolicyDeniedError{Gate: domain.FrameGate{Reason: domain.DenyDraw}}, "draw"},
		{"store fault", fmt.Errorf("badger: value log truncated"), "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, AckMessage(tt.err))
		})
	}
}

func TestNotFoundFamily(t *testing.T) {
	req := require.New(t)
	req.True(Is(ErrMatchNotFound, ErrNotFound))
	req.True(Is(ErrFrameNotFound, ErrNotFound))
	req.False(Is(ErrEventNotInMatch, ErrNotFound))
	req.True(IsClientError(ErrEventNotInMatch))
	req.False(IsClientError(ErrRoomClosed))
}
