package repositories

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/vmihailenco/msgpack/v5"
)

const idSequenceKey = "seq:ids"

// IDGenerator hands out monotonically increasing ids shared by every entity.
type IDGenerator struct {
	seq *badger.Sequence
}

func NewIDGenerator(db *badger.DB, bandwidth uint64) (*IDGenerator, error) {
	seq, err := db.GetSequence([]byte(idSequenceKey), bandwidth)
	if err != nil {
		return nil, fmt.Errorf("id sequence: %w", err)
	}
	return &IDGenerator{seq: seq}, nil
}

// Next never returns 0, which is reserved for "unset" on the wire.
func (g *IDGenerator) Next() (int64, error) {
	v, err := g.seq.Next()
	if err != nil {
		return 0, err
	}
	return int64(v) + 1, nil
}

// Release hands back the leased range. Must be called before closing the DB.
func (g *IDGenerator) Release() error {
	return g.seq.Release()
}

// Keys use 19 digit zero padding so lexicographical order is numerical order.
//
//	profile:{id}
//	match:{id}
//	frame:{id}
//	match_frame:{match}:{frame}
//	event:{id}
//	frame_event:{frame}:{timestamp}:{event}   chronological membership
//	event_frame:{event}:{frame}               reverse index, value is the membership key
func profileKey(id int64) []byte { return []byte(fmt.Sprintf("profile:%019d", id)) }
func matchKey(id int64) []byte   { return []byte(fmt.Sprintf("match:%019d", id)) }
func frameKey(id int64) []byte   { return []byte(fmt.Sprintf("frame:%019d", id)) }
func eventKey(id int64) []byte   { return []byte(fmt.Sprintf("event:%019d", id)) }

func matchFramePrefix(matchID int64) []byte {
	return []byte(fmt.Sprintf("match_frame:%019d:", matchID))
}

func matchFrameKey(matchID, frameID int64) []byte {
	return append(matchFramePrefix(matchID), []byte(fmt.Sprintf("%019d", frameID))...)
}

func memberPrefix(frameID int64) []byte {
	return []byte(fmt.Sprintf("frame_event:%019d:", frameID))
}

func memberKey(frameID, at, eventID int64) []byte {
	return append(memberPrefix(frameID), []byte(fmt.Sprintf("%019d:%019d", at, eventID))...)
}

func eventFramePrefix(eventID int64) []byte {
	return []byte(fmt.Sprintf("event_frame:%019d:", eventID))
}

func eventFrameKey(eventID, frameID int64) []byte {
	return append(eventFramePrefix(eventID), []byte(fmt.Sprintf("%019d", frameID))...)
}

// lastSegment parses the trailing numeric part of a key.
func lastSegment(key []byte) (int64, error) {
	s := string(key)
	return strconv.ParseInt(s[strings.LastIndexByte(s, ':')+1:], 10, 64)
}

// parseMemberKey extracts the timestamp and event id of a membership key.
func parseMemberKey(key []byte) (at int64, eventID int64, err error) {
	parts := strings.Split(string(key), ":")
	if len(parts) != 4 {
		return 0, 0, fmt.Errorf("malformed membership key %q", key)
	}
	if at, err = strconv.ParseInt(parts[2], 10, 64); err != nil {
		return 0, 0, err
	}
	eventID, err = strconv.ParseInt(parts[3], 10, 64)
	return at, eventID, err
}

func getRecord[T any](txn *badger.Txn, key []byte, notFound error) (T, error) {
	var record T
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return record, notFound
	}
	if err != nil {
		return record, err
	}
	err = item.Value(func(val []byte) error {
		return msgpack.Unmarshal(val, &record)
	})
	return record, err
}

func setRecord(txn *badger.Txn, key []byte, record any) error {
	bytes, err := msgpack.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return txn.Set(key, bytes)
}

// keysWithPrefix collects keys only, values are not fetched.
func keysWithPrefix(txn *badger.Txn, prefix []byte, reverse bool) [][]byte {
	options := badger.DefaultIteratorOptions
	options.PrefetchValues = false
	options.Reverse = reverse
	it := txn.NewIterator(options)
	defer it.Close()

	seek := prefix
	if reverse {
		// '~' sorts after every digit, so we land on the newest key of the prefix
		seek = append(append([]byte{}, prefix...), '~')
	}

	var keys [][]byte
	for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	return keys
}
