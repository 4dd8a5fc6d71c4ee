package scanner

import (
	"os"
	"time"

	"github.com/djherbis/times"
)

// TimestampProvider yields the ordering timestamp for a file. A zero
// time means the timestamp could not be read; such files order first.
type TimestampProvider interface {
	Created(path string) time.Time
}

// BirthTimeProvider orders by filesystem birth time, falling back to
// the modification time for files whose birth time is not recorded.
type BirthTimeProvider struct{}

func (BirthTimeProvider) Created(path string) time.Time {
	ts, err := times.Stat(path)
	if err != nil {
		return time.Time{}
	}
	if ts.HasBirthTime() {
		return ts.BirthTime()
	}
	return ts.ModTime()
}

// ModTimeProvider orders by modification time only, for filesystems
// that do not record birth times.
type ModTimeProvider struct{}

func (ModTimeProvider) Created(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// DetectTimestampProvider probes root once and returns the birth-time
// provider when the filesystem records birth times there.
func DetectTimestampProvider(root string) TimestampProvider {
	if ts, err := times.Stat(root); err == nil && ts.HasBirthTime() {
		return BirthTimeProvider{}
	}
	return ModTimeProvider{}
}
