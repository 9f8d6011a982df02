package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is the report window used when none is given.
const DefaultWindow = "7d"

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	windowUnits   = map[string]byte{
		"d": 'd', "day": 'd', "days": 'd',
		"w": 'w', "wk": 'w', "wks": 'w', "week": 'w', "weeks": 'w',
		"m": 'm', "mo": 'm', "month": 'm', "months": 'm',
	}
)

// Window is a trailing span of calendar time. Months follow time.AddDate
// normalization.
type Window struct {
	Months int
	Weeks  int
	Days   int
}

// ParseWindow reads windows like "3d", "2w", "1m" or "1m2w". An empty
// input yields DefaultWindow.
func ParseWindow(input string) (Window, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		remaining = DefaultWindow
	}

	var w Window
	for len(remaining) > 0 {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return Window{}, fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return Window{}, fmt.Errorf("invalid window value %q: %w", matches[1], err)
		}
		switch windowUnits[matches[2]] {
		case 'd':
			w.Days += value
		case 'w':
			w.Weeks += value
		case 'm':
			w.Months += value
		default:
			return Window{}, fmt.Errorf("unsupported window unit %q", matches[2])
		}
		remaining = remaining[len(matches[0]):]
	}

	if w.IsZero() {
		return Window{}, fmt.Errorf("window must be greater than zero")
	}
	return w, nil
}

// IsZero reports whether the window spans no time.
func (w Window) IsZero() bool {
	return w.Months == 0 && w.Weeks == 0 && w.Days == 0
}

// Since returns the start of the window that ends at until.
func (w Window) Since(until time.Time) time.Time {
	return until.AddDate(0, -w.Months, -(w.Weeks*7 + w.Days))
}

// String renders the window in its compact month/week/day form.
func (w Window) String() string {
	var b strings.Builder
	if w.Months > 0 {
		fmt.Fprintf(&b, "%dm", w.Months)
	}
	if w.Weeks > 0 {
		fmt.Fprintf(&b, "%dw", w.Weeks)
	}
	if w.Days > 0 {
		fmt.Fprintf(&b, "%dd", w.Days)
	}
	if b.Len() == 0 {
		return "0d"
	}
	return b.String()
}
