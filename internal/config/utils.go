package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// DurationSeconds is a duration read from YAML either as a Go duration string
// ("1500ms", "5s") or as a plain number of seconds.
type DurationSeconds struct {
	duration time.Duration
}

// NewDurationSecondsFromInt creates a DurationSeconds from an int value (seconds)
func NewDurationSecondsFromInt(seconds int) DurationSeconds {
	return DurationSeconds{duration: time.Duration(seconds) * time.Second}
}

// UnmarshalYAML implements yaml.Unmarshaler for DurationSeconds
func (d *DurationSeconds) UnmarshalYAML(value *yaml.Node) error {
	var v interface{}
	if err := value.Decode(&v); err != nil {
		return err
	}
	switch val := v.(type) {
	case int:
		d.duration = time.Duration(val) * time.Second
		return nil
	case float64:
		d.duration = time.Duration(val * float64(time.Second))
		return nil
	case string:
		duration, err := parseDuration(val)
		if err != nil {
			return err
		}
		d.duration = duration
		return nil
	default:
		return errors.Newf("invalid type for duration: %T", v)
	}
}

// Duration returns the underlying time.Duration
func (d DurationSeconds) Duration() time.Duration {
	return d.duration
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid duration format '%s'", s)
	}
	return d, nil
}
