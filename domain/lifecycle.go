package domain

type DenyReason string

const (
	DenyDecided DenyReason = "decided"
	DenyDraw    DenyReason = "draw"
)

// FrameGate is the outcome of a frame creation check.
type FrameGate struct {
	Allowed     bool
	Reason      DenyReason
	Player1Wins int
	Player2Wins int
}

// FramesNeededToWin returns the number of frames a player must win in a best of n match:
// a strict majority, so an even n needs n/2+1 and can end level.
func FramesNeededToWin(n int) int {
	return n/2 + 1
}

// Score counts the frames won by each player of the match.
// Frames won by anybody else are ignored.
func Score(m Match, frames []Frame) (player1Wins, player2Wins int) {
	for _, f := range frames {
		if f.Winner == nil {
			continue
		}
		switch *f.Winner {
		case m.Player1:
			player1Wins++
		case m.Player2:
			player2Wins++
		}
	}
	return player1Wins, player2Wins
}

// CanCreateFrame decides whether a new frame may be opened.
// It must be evaluated right before every creation attempt since winners can be reassigned.
// A decided match takes precedence over a draw.
func CanCreateFrame(m Match, frames []Frame) FrameGate {
	p1, p2 := Score(m, frames)
	gate := FrameGate{Allowed: true, Player1Wins: p1, Player2Wins: p2}
	needed := FramesNeededToWin(m.FramesToWin)

	switch {
	case p1 >= needed || p2 >= needed:
		gate.Allowed = false
		gate.Reason = DenyDecided
	case m.FramesToWin%2 == 0 && p1+p2 >= m.FramesToWin:
		gate.Allowed = false
		gate.Reason = DenyDraw
	}
	return gate
}
