package options

import (
	"testing"
	"time"
)

func TestGetOn(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Time
		err  bool
	}{
		{in: "", want: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)},
		{in: "2026-2-28", want: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)},
		{in: "10/19", want: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)},
		{in: "12/5", want: time.Date(2026, 12, 5, 0, 0, 0, 0, time.UTC)},
		{in: "1/3", want: time.Date(2027, 1, 3, 0, 0, 0, 0, time.UTC)},
		{in: "tomorrow", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			o := OnOptions{OnString: tt.in}
			got, err := o.GetOn(now)
			if tt.err {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
