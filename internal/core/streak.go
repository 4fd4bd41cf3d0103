package core

import "time"

// DayStart truncates t to local midnight.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayWindow returns [local midnight, next midnight) around t.
func DayWindow(t time.Time) (start, end time.Time) {
	start = DayStart(t)
	return start, start.AddDate(0, 0, 1)
}

// Streak counts consecutive completed days ending at today, walking the
// completion dates most-recent-first. A gap at today yields 0 regardless of
// prior history; the walk stops at the first missing day.
//
// Multiple completions on the same day count once.
func Streak(completions []time.Time, today time.Time) int {
	expected := DayStart(today)
	streak := 0

	for _, c := range completions {
		day := DayStart(c)
		if day.Equal(expected) {
			streak++
			expected = expected.AddDate(0, 0, -1)
			continue
		}
		if day.After(expected) {
			// Duplicate completion inside an already-counted day.
			continue
		}
		break
	}

	return streak
}
