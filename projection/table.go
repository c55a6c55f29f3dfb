// Package projection derives read models from a frame's event log.
// Everything here is recomputed from the events alone; nothing is cached.
// Does not store, emit, or interact with transports.
package projection

import (
	"billiard-live/domain"
	"sort"
)

// Ordered returns the events sorted by timestamp. Ties keep insertion order.
func Ordered(events []domain.MatchEvent) []domain.MatchEvent {
	ordered := make([]domain.MatchEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})
	return ordered
}

// BallsOnTable starts from every object ball and removes the ones potted, in timestamp order.
// A ball never comes back: only removing the potting event restores it.
func BallsOnTable(events []domain.MatchEvent) []string {
	potted := make(map[string]struct{})
	for _, e := range Ordered(events) {
		if e.Type != domain.BallsPotted {
			continue
		}
		for _, id := range e.BallIDs {
			potted[id] = struct{}{}
		}
	}

	onTable := make([]string, 0, len(domain.Balls)-1)
	for _, id := range domain.ObjectBallIDs() {
		if _, ok := potted[id]; !ok {
			onTable = append(onTable, id)
		}
	}
	return onTable
}

// Turns splits the log at each next_player event. The next_player event opens
// the new turn. A trailing partial turn is kept.
func Turns(events []domain.MatchEvent) [][]domain.MatchEvent {
	var turns [][]domain.MatchEvent
	var current []domain.MatchEvent
	for _, e := range Ordered(events) {
		if e.Type == domain.NextPlayer && len(current) > 0 {
			turns = append(turns, current)
			current = nil
		}
		current = append(current, e)
	}
	if len(current) > 0 {
		turns = append(turns, current)
	}
	return turns
}
