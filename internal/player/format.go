package player

import (
	"fmt"
	"time"
)

// FormatTime renders d as minutes:seconds with zero-padded seconds, e.g. 65s -> "1:05".
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// NextIndex is the index after i in a circular sequence of length n.
func NextIndex(i, n int) int {
	return (i + 1) % n
}

// PrevIndex is the index before i in a circular sequence of length n.
func PrevIndex(i, n int) int {
	return (i - 1 + n) % n
}

// Percent maps position within duration to [0, 100]. Unknown durations yield 0.
func Percent(position, duration time.Duration) float64 {
	if duration <= 0 {
		return 0
	}
	return float64(position) / float64(duration) * 100
}
