package repositories

import (
	"fmt"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Record is a human-readable view of one stored key, used by the inspection tools.
type Record struct {
	Key    string
	Kind   string
	ID     string
	Detail string
}

// Describe decodes a raw key/value pair of the store.
func Describe(key string, val []byte) Record {
	kind, rest, _ := strings.Cut(key, ":")
	rec := Record{Key: key, Kind: strings.ToUpper(kind), ID: trimID(rest)}

	var err error
	switch kind {
	case "profile":
		var p DiskProfile
		if err = msgpack.Unmarshal(val, &p); err == nil {
			rec.Detail = fmt.Sprintf("%s %s (%s) biro=%t", p.FirstName, p.LastName, p.Username, p.IsBiro)
		}
	case "match":
		var m DiskMatch
		if err = msgpack.Unmarshal(val, &m); err == nil {
			rec.Detail = fmt.Sprintf("%d vs %d, frames_to_win=%d", m.Player1, m.Player2, m.FramesToWin)
		}
	case "frame":
		var f DiskFrame
		if err = msgpack.Unmarshal(val, &f); err == nil {
			winner := "-"
			if f.Winner != nil {
				winner = fmt.Sprint(*f.Winner)
			}
			rec.Detail = fmt.Sprintf("match=%d #%d winner=%s", f.MatchID, f.Number, winner)
		}
	case "event":
		var e DiskEvent
		if err = msgpack.Unmarshal(val, &e); err == nil {
			rec.Detail = fmt.Sprintf("%s at %s balls=%v", e.Type, time.Unix(0, e.At).UTC().Format("15:04:05.000"), e.BallIDs)
		}
	case "frame_event", "match_frame", "event_frame":
		rec.Kind = "INDEX"
		rec.Detail = strings.ReplaceAll(trimID(rest), ":", " -> ")
	default:
		rec.Kind = "RAW"
		rec.Detail = fmt.Sprintf("Size: %d bytes", len(val))
	}
	if err != nil {
		rec.Detail = "Error: unmarshal failed"
	}
	return rec
}

// trimID strips the zero padding of every numeric segment.
func trimID(padded string) string {
	parts := strings.Split(padded, ":")
	for i, p := range parts {
		if trimmed := strings.TrimLeft(p, "0"); trimmed != "" {
			parts[i] = trimmed
		} else if p != "" {
			parts[i] = "0"
		}
	}
	return strings.Join(parts, ":")
}
