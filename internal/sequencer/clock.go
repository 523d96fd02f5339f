package sequencer

import "time"

// Clock supplies millisecond wall timestamps for schedule values. It is an
// interface so tests can sequence against deterministic time; the error
// return exists because a time source can be genuinely unavailable and a
// message must never be stamped with a guessed timestamp.
type Clock interface {
	NowMillis() (int64, error)
}

// SystemClock reads the operating system clock. It never fails.
type SystemClock struct{}

// NowMillis returns the current time in milliseconds since the Unix epoch.
func (SystemClock) NowMillis() (int64, error) {
	return time.Now().UnixMilli(), nil
}
