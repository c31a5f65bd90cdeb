package weave

import (
	"encoding/json"
	"time"

	"github.com/iov-one/weaveswap/errors"
)

// UnixTime is a point in time with a second precision, stored as seconds
// since the epoch. Escrow expiration and block times are compared using
// this representation.
type UnixTime int64

// AsUnixTime drops the sub second part of given time.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0)
}

func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add returns the time moved by given duration, truncated to seconds.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative value")
	}
	return nil
}

func (t UnixTime) String() string {
	return t.Time().UTC().String()
}

// UnmarshalJSON accepts a number of seconds or an RFC 3339 string, which is
// easier to write by hand in a genesis file.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var unix int64
	if err := json.Unmarshal(raw, &unix); err != nil {
		var stdtime time.Time
		if err := json.Unmarshal(raw, &stdtime); err != nil {
			return errors.Wrap(errors.ErrInput, "invalid time format")
		}
		unix = stdtime.Unix()
	}
	if unix < 0 {
		return errors.Wrap(errors.ErrInput, "time before epoch")
	}
	*t = UnixTime(unix)
	return nil
}
