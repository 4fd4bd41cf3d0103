package core

import (
	"testing"
	"time"
)

func day(offset int) time.Time {
	return time.Date(2025, 8, 20, 14, 30, 0, 0, time.Local).AddDate(0, 0, offset)
}

func TestStreakConsecutiveDays(t *testing.T) {
	today := day(0)
	cases := []struct {
		name        string
		completions []time.Time
		want        int
	}{
		{"no completions", nil, 0},
		{"today only", []time.Time{day(0)}, 1},
		{"three consecutive", []time.Time{day(0), day(-1), day(-2)}, 3},
		{"gap after two", []time.Time{day(0), day(-1), day(-3), day(-4)}, 2},
		{"gap at today", []time.Time{day(-1), day(-2), day(-3)}, 0},
		{"only old history", []time.Time{day(-5), day(-6)}, 0},
	}
	for _, tc := range cases {
		if got := Streak(tc.completions, today); got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestStreakIgnoresDuplicateDay(t *testing.T) {
	today := day(0)
	completions := []time.Time{day(0), day(0), day(-1)}
	if got := Streak(completions, today); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}

func TestStreakUsesDayGranularity(t *testing.T) {
	// Completion late yesterday and early today still form a streak of 2.
	today := time.Date(2025, 8, 20, 0, 5, 0, 0, time.Local)
	completions := []time.Time{
		time.Date(2025, 8, 20, 0, 1, 0, 0, time.Local),
		time.Date(2025, 8, 19, 23, 59, 0, 0, time.Local),
	}
	if got := Streak(completions, today); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}

func TestDayWindow(t *testing.T) {
	now := time.Date(2025, 8, 20, 17, 45, 12, 0, time.Local)
	start, end := DayWindow(now)
	if !start.Equal(time.Date(2025, 8, 20, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("unexpected start %v", start)
	}
	if !end.Equal(time.Date(2025, 8, 21, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("unexpected end %v", end)
	}
}
