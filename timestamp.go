package spend

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampFormat is the layout of expense dates in the ledger document.
const TimestampFormat = "2006-01-02 15:04:05"

// Timestamp is a local wall clock time with second precision.
type Timestamp struct {
	t time.Time
}

// NewTimestamp returns t truncated to the second, in local time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t.In(time.Local).Truncate(time.Second)}
}

// ParseTimestamp parses a "YYYY-MM-DD HH:MM:SS" string in local time.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.ParseInLocation(TimestampFormat, s, time.Local)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return Timestamp{t: t}, nil
}

func (ts Timestamp) Time() time.Time         { return ts.t }
func (ts Timestamp) IsZero() bool            { return ts.t.IsZero() }
func (ts Timestamp) Equal(o Timestamp) bool  { return ts.t.Equal(o.t) }
func (ts Timestamp) Before(o Timestamp) bool { return ts.t.Before(o.t) }

// String formats the timestamp with TimestampFormat.
func (ts Timestamp) String() string { return ts.t.Format(TimestampFormat) }

func (ts Timestamp) MarshalJSON() ([]byte, error) { return json.Marshal(ts.String()) }

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
