package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// RawEntry is one clock-in/clock-out pair as resolved by the server.
// From and To are seconds since the epoch.
type RawEntry struct {
	ID    int64 `json:"id"`
	From  int64 `json:"from"`
	To    int64 `json:"to"`
	Valid bool  `json:"valid"`
}

// Bucket holds the entries of one calendar day. Day is the local-midnight
// timestamp (seconds since the epoch) that starts the day.
type Bucket struct {
	Day     int64
	Entries []RawEntry
}

// Collection is the day-bucketed entry list served by GET /u/entries.
// On the wire it is a JSON object keyed by day; bucket order follows the
// order of the keys in the document.
type Collection []Bucket

// UnmarshalJSON decodes the keyed object while keeping key order.
func (c *Collection) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decoding entry collection: %w", err)
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decoding entry collection: expected object, got %v", tok)
	}

	out := Collection{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decoding entry collection: %w", err)
		}
		key, _ := tok.(string)
		day, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return fmt.Errorf("decoding entry collection: invalid day key %q", key)
		}
		var entries []RawEntry
		if err := dec.Decode(&entries); err != nil {
			return fmt.Errorf("decoding entries for day %d: %w", day, err)
		}
		out = append(out, Bucket{Day: day, Entries: entries})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decoding entry collection: %w", err)
	}
	*c = out
	return nil
}

// MarshalJSON writes the buckets back as a keyed object in slice order.
func (c Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, b := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.FormatInt(b.Day, 10)))
		buf.WriteByte(':')
		entries := b.Entries
		if entries == nil {
			entries = []RawEntry{}
		}
		data, err := json.Marshal(entries)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
