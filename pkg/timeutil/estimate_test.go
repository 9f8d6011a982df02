package timeutil

import (
	"testing"
	"time"
)

func TestParseEstimate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"2h", 2 * time.Hour},
		{"1h 30m", 90 * time.Minute},
		{"1.5h", 90 * time.Minute},
		{"45 min", 45 * time.Minute},
		{"2 hours", 2 * time.Hour},
		{"1d", 24 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEstimate(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseEstimateInvalid(t *testing.T) {
	for _, in := range []string{"", "soon", "3 pomodoros", "0m"} {
		if _, err := ParseEstimate(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestFormatEstimate(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0m"},
		{45 * time.Minute, "45m"},
		{3 * time.Hour, "3h"},
		{3*time.Hour + 45*time.Minute, "3h45m"},
		{26*time.Hour + 30*time.Second, "26h1m"},
	}
	for _, c := range cases {
		if got := FormatEstimate(c.in); got != c.want {
			t.Fatalf("expected %s for %v, got %s", c.want, c.in, got)
		}
	}
}
