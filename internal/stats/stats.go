// Package stats derives dashboard figures from the session list. Everything
// here is a pure function of the sessions and a reference time; callers
// recompute on every render.
package stats

import (
	"math"
	"time"

	"github.com/djb242/inkwell/internal/store"
)

// Streak lookback is bounded so a pathological history cannot loop forever.
const maxStreakDays = 365

// TrendDays is the window of the dashboard trend chart.
const TrendDays = 14

// DayTotal is one bar of the trend: a short human-readable label and the
// words summed for that calendar day.
type DayTotal struct {
	Label string
	Words int
}

func dayKey(t time.Time) string {
	return t.Format(store.DayFormat)
}

// wordsByDay folds the session list into per-day word totals.
func wordsByDay(sessions []store.Session) map[string]int {
	totals := make(map[string]int, len(sessions))
	for _, s := range sessions {
		totals[s.Date] += s.Words
	}
	return totals
}

// TodayWords sums words over sessions logged on now's calendar day.
func TodayWords(sessions []store.Session, now time.Time) int {
	return wordsByDay(sessions)[dayKey(now)]
}

// Streak counts consecutive days ending today (inclusive) with words
// logged, stopping at the first empty day.
func Streak(sessions []store.Session, now time.Time) int {
	totals := wordsByDay(sessions)
	streak := 0
	for i := 0; i < maxStreakDays; i++ {
		if totals[dayKey(now.AddDate(0, 0, -i))] <= 0 {
			break
		}
		streak++
	}
	return streak
}

// Trend returns the last TrendDays calendar days, oldest to newest.
func Trend(sessions []store.Session, now time.Time) []DayTotal {
	totals := wordsByDay(sessions)
	out := make([]DayTotal, 0, TrendDays)
	for i := TrendDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		out = append(out, DayTotal{
			Label: day.Format("Jan 02"),
			Words: totals[dayKey(day)],
		})
	}
	return out
}

// TotalWords is every word ever logged.
func TotalWords(sessions []store.Session) int {
	total := 0
	for _, s := range sessions {
		total += s.Words
	}
	return total
}

// TotalMinutes is every minute ever logged.
func TotalMinutes(sessions []store.Session) int {
	total := 0
	for _, s := range sessions {
		total += s.Minutes
	}
	return total
}

// WordsPerHour derives the all-time pace. Minutes are floored at 1 to avoid
// dividing by zero; a non-finite result reports as 0.
func WordsPerHour(sessions []store.Session) int {
	minutes := TotalMinutes(sessions)
	if minutes < 1 {
		minutes = 1
	}
	wph := float64(TotalWords(sessions)) / float64(minutes) * 60
	if math.IsNaN(wph) || math.IsInf(wph, 0) {
		return 0
	}
	return int(math.Round(wph))
}
