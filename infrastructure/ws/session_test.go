package ws

import (
	"billiard-live/contract"
	"billiard-live/domain/event"
	"billiard-live/errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSession_Send_Never_Blocks(t *testing.T) {
	req := require.New(t)

	// Given a session whose writer is not draining
	session := NewSession(nil, RoleSpectator, 2, time.Second, 0, slog.Default())

	// When more messages are sent than the buffer holds
	req.NoError(session.Send(event.Notice{Type: event.Pong}))
	req.NoError(session.Send(event.Notice{Type: event.Pong}))
	err := session.Send(event.Notice{Type: event.Pong})

	// Then the overflow is reported instead of blocking
	req.ErrorIs(err, errors.ErrSlowConsumer)

	// And once closed every send reports a gone session
	session.Close(contract.CloseTryAgainLater, "slow consumer")
	session.Close(contract.CloseNormal, "")
	req.ErrorIs(session.Send(event.Notice{Type: event.Pong}), errors.ErrSessionGone)
	req.NotEmpty(session.ID())
	req.Equal(RoleSpectator, session.Role())
}
