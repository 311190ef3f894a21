package utils

import (
	"fmt"
	"time"
)

// YearKey returns the two-digit year component used to scope identifier
// sequences, e.g. "25" for 2025.
func YearKey(t time.Time) string {
	return t.UTC().Format("06")
}

// FormatTaskID builds a task identifier such as T250007.
func FormatTaskID(yearKey string, seq int) string {
	return fmt.Sprintf("T%s%04d", yearKey, seq)
}

// FormatUserID builds a user identifier such as U250002.
func FormatUserID(yearKey string, seq int) string {
	return fmt.Sprintf("U%s%04d", yearKey, seq)
}
