package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	estimatePattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*([a-z]+)`)
	estimateUnits   = map[string]time.Duration{
		"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
		"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
		"d": 24 * time.Hour, "day": 24 * time.Hour, "days": 24 * time.Hour,
	}
)

// ParseEstimate reads a task estimate such as "2h", "1h 30m", "1.5h" or
// "45 min". Estimates are free text, so callers treat an error as "not a
// duration" rather than a failure.
func ParseEstimate(input string) (time.Duration, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, fmt.Errorf("empty estimate")
	}

	total := time.Duration(0)
	for strings.TrimSpace(remaining) != "" {
		matches := estimatePattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, fmt.Errorf("invalid estimate segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseFloat(matches[1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid estimate value %q: %w", matches[1], err)
		}
		base, ok := estimateUnits[matches[2]]
		if !ok {
			return 0, fmt.Errorf("unsupported estimate unit %q", matches[2])
		}
		total += time.Duration(value * float64(base))
		remaining = remaining[len(matches[0]):]
	}

	if total <= 0 {
		return 0, fmt.Errorf("estimate must be greater than zero")
	}
	return total, nil
}

// FormatEstimate renders a total estimate in hours and minutes, e.g. "3h45m".
func FormatEstimate(d time.Duration) string {
	d = d.Round(time.Minute)
	if d <= 0 {
		return "0m"
	}
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%dm", h, m)
}
