package domain

const CueBallID = "cue"

type Ball struct {
	ID    string
	Name  string
	Color string
	Group BallGroup
}

// Balls is the standard sixteen ball pool set. Order matters: projections
// report balls on the table in this order.
var Balls = []Ball{
	{ID: CueBallID, Name: "Cue ball", Color: "white"},
	{ID: "1", Name: "Ball 1", Color: "yellow", Group: BallGroupFull},
	{ID: "2", Name: "Ball 2", Color: "blue", Group: BallGroupFull},
	{ID: "3", Name: "Ball 3", Color: "red", Group: BallGroupFull},
	{ID: "4", Name: "Ball 4", Color: "purple", Group: BallGroupFull},
	{ID: "5", Name: "Ball 5", Color: "orange", Group: BallGroupFull},
	{ID: "6", Name: "Ball 6", Color: "green", Group: BallGroupFull},
	{ID: "7", Name: "Ball 7", Color: "maroon", Group: BallGroupFull},
	{ID: "8", Name: "Ball 8", Color: "black", Group: BallGroupFull},
	{ID: "9", Name: "Ball 9", Color: "yellow", Group: BallGroupStriped},
	{ID: "10", Name: "Ball 10", Color: "blue", Group: BallGroupStriped},
	{ID: "11", Name: "Ball 11", Color: "red", Group: BallGroupStriped},
	{ID: "12", Name: "Ball 12", Color: "purple", Group: BallGroupStriped},
	{ID: "13", Name: "Ball 13", Color: "orange", Group: BallGroupStriped},
	{ID: "14", Name: "Ball 14", Color: "green", Group: BallGroupStriped},
	{ID: "15", Name: "Ball 15", Color: "maroon", Group: BallGroupStriped},
}

// ObjectBallIDs lists every ball except the cue ball, in catalogue order.
func ObjectBallIDs() []string {
	ids := make([]string, 0, len(Balls)-1)
	for _, b := range Balls {
		if b.ID != CueBallID {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// IsBall reports whether id names a ball of the catalogue, cue ball included.
func IsBall(id string) bool {
	for _, b := range Balls {
		if b.ID == id {
			return true
		}
	}
	return false
}
