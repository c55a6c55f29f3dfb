package errors

import (
	"billiard-live/domain"
	stderrors "errors"
	"fmt"
)

// Auth errors terminate a scorekeeper session.
var (
	ErrNoCredential      = fmt.Errorf("no credential")
	ErrInvalidCredential = fmt.Errorf("invalid credential")
	ErrForbidden         = fmt.Errorf("forbidden")
)

// Validation errors are answered with a failure ack, the session stays open.
var (
	ErrInvalidJSON    = fmt.Errorf("invalid JSON")
	ErrUnknownAction  = fmt.Errorf("unknown action")
	ErrInvalidCommand = fmt.Errorf("invalid command")
	ErrInvalidWinner  = fmt.Errorf("winner is not a player of this match")
)

// Not found errors.
var (
	ErrNotFound        = fmt.Errorf("not found")
	ErrMatchNotFound   = fmt.Errorf("match %w", ErrNotFound)
	ErrFrameNotFound   = fmt.Errorf("frame %w", ErrNotFound)
	ErrEventNotFound   = fmt.Errorf("event %w", ErrNotFound)
	ErrProfileNotFound = fmt.Errorf("profile %w", ErrNotFound)
	ErrEventNotInMatch = fmt.Errorf("event not found in this match")
	ErrNoEventsToUndo  = fmt.Errorf("no events to undo in this frame")
)

// Runtime errors.
var (
	ErrInternal     = fmt.Errorf("internal error")
	ErrRoomClosed   = fmt.Errorf("room closed")
	ErrSessionGone  = fmt.Errorf("session closed")
	ErrSlowConsumer = fmt.Errorf("session outbound buffer full")
	ErrWorkerPanic  = fmt.Errorf("worker panic")
)

// PolicyDeniedError is returned when the frame lifecycle gate refuses a new frame.
type PolicyDeniedError struct {
	Gate domain.FrameGate
}

func (e PolicyDeniedError) Error() string {
	return string(e.Gate.Reason)
}

func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }

// IsClientError tells apart faults caused by the request from store or runtime faults.
func IsClientError(err error) bool {
	var denied PolicyDeniedError
	switch {
	case As(err, &denied):
		return true
	case Is(err, ErrInvalidJSON), Is(err, ErrUnknownAction), Is(err, ErrInvalidCommand), Is(err, ErrInvalidWinner):
		return true
	case Is(err, ErrNotFound), Is(err, ErrEventNotInMatch), Is(err, ErrNoEventsToUndo):
		return true
	}
	return false
}

// AckMessage is the human-readable reason sent back in a failure ack.
// Store and runtime faults never leak their details.
func AckMessage(err error) string {
	if err == nil {
		return ""
	}
	if IsClientError(err) {
		return err.Error()
	}
	return ErrInternal.Error()
}
