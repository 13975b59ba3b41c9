package player

import (
	"testing"
	"time"
)

func TestFormatTime(t *testing.T) {
	tc := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "five seconds", d: 5 * time.Second, want: "0:05"},
		{name: "sixty five seconds", d: 65 * time.Second, want: "1:05"},
		{name: "ten minutes", d: 600 * time.Second, want: "10:00"},
		{name: "fraction truncated", d: 59*time.Second + 900*time.Millisecond, want: "0:59"},
		{name: "zero", d: 0, want: "0:00"},
		{name: "negative clamps", d: -3 * time.Second, want: "0:00"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTime(tt.d); got != tt.want {
				t.Errorf("FormatTime(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestIndexArithmetic(t *testing.T) {
	for n := 1; n <= 7; n++ {
		for i := 0; i < n; i++ {
			if got, want := NextIndex(i, n), (i+1)%n; got != want {
				t.Errorf("NextIndex(%d, %d) = %d, want %d", i, n, got, want)
			}
			if got, want := PrevIndex(i, n), (i-1+n)%n; got != want {
				t.Errorf("PrevIndex(%d, %d) = %d, want %d", i, n, got, want)
			}
			if got := PrevIndex(NextIndex(i, n), n); got != i {
				t.Errorf("PrevIndex(NextIndex(%d)) = %d over %d", i, got, n)
			}
		}
	}

	if PrevIndex(0, 4) != 3 {
		t.Error("expected previous of the first index to wrap to the last")
	}
	if NextIndex(3, 4) != 0 {
		t.Error("expected next of the last index to wrap to the first")
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(30*time.Second, 120*time.Second); got != 25 {
		t.Errorf("expected 25, got %v", got)
	}
	if got := Percent(30*time.Second, 0); got != 0 {
		t.Errorf("expected 0 for unknown duration, got %v", got)
	}
}
