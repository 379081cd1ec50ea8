package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDuration is wrapped by every Duration parse failure.
var ErrInvalidDuration = errors.New("invalid duration")

// Duration is a config timing value. In TOML it is written either as a Go
// duration string ("250ms", "3s") or as a plain count of milliseconds.
type Duration time.Duration

// Duration converts back to a time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration().String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := parseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q (want a Go duration or milliseconds)", ErrInvalidDuration, s)
	}
	return v, nil
}
