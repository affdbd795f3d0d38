package lib

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNegative  = errors.New("elapsed time is negative")
	ErrNotFinite = errors.New("elapsed time is not a finite number")
)

// FormatElapsed formats an elapsed time in milliseconds as a clock string.
// Returns "1:01:01" for hours:minutes:seconds or "3:07" for minutes:seconds.
// Fractional seconds are truncated, never rounded.
//
// Input is not validated. Negative and non-finite values produce whatever the
// float arithmetic yields ("-1:-1" for -1000, "NaN:NaN" for NaN); use
// FormatElapsedStrict to reject them instead.
func FormatElapsed(ms float64) string {
	totalSeconds := math.Floor(ms / 1000)
	hours := math.Floor(totalSeconds / 3600)
	minutes := math.Floor(math.Mod(totalSeconds, 3600) / 60)
	secs := math.Floor(math.Mod(totalSeconds, 60))

	if hours > 0 {
		return formatField(hours) + ":" + padLeft(formatField(minutes), 2) + ":" + padLeft(formatField(secs), 2)
	}
	return padLeft(formatField(minutes), 1) + ":" + padLeft(formatField(secs), 2)
}

// FormatDuration formats d like FormatElapsed, at millisecond precision.
func FormatDuration(d time.Duration) string {
	return FormatElapsed(float64(d.Milliseconds()))
}

// FormatElapsedStrict is FormatElapsed for inputs that must be a finite,
// non-negative number of milliseconds.
func FormatElapsedStrict(ms float64) (string, error) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return "", fmt.Errorf("cannot format %v: %w", ms, ErrNotFinite)
	}
	if ms < 0 {
		return "", fmt.Errorf("cannot format %v: %w", ms, ErrNegative)
	}
	return FormatElapsed(ms), nil
}

// ParseElapsed parses a decimal millisecond value such as "3661000" or "1500.5".
func ParseElapsed(s string) (float64, error) {
	ms, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse elapsed milliseconds %q: %w", s, err)
	}
	return ms, nil
}

func formatField(v float64) string {
	// math.Mod keeps the dividend's sign, so negative whole minutes yield -0
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// padLeft zero-fills s up to width. Longer strings are returned as is.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
