package config

import (
	"time"

	"github.com/sosodev/duration"
)

// ParseDuration accepts ISO 8601 ("PT10M", "P7D") or Go ("10m") durations.
func ParseDuration(s string) (time.Duration, error) {
	isoDuration, err := duration.Parse(s)
	if err == nil {
		return isoDuration.ToTimeDuration(), nil
	}

	return time.ParseDuration(s)
}
