package services

import (
	"sort"
	"strings"
	"time"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
)

// dayKey normalises a date string to a calendar day in loc. It accepts plain
// dates ("2006-01-02") and RFC 3339 timestamps; anything else is rejected.
func dayKey(s string, loc *time.Location) (string, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(models.DateLayout, s, loc); err == nil {
		return t.Format(models.DateLayout), true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc).Format(models.DateLayout), true
	}
	return "", false
}

// daysBefore returns the calendar day n days before today, in today's zone.
func daysBefore(today time.Time, n int) string {
	y, m, d := today.Date()
	// Noon keeps DST transitions from shifting the day.
	return time.Date(y, m, d-n, 12, 0, 0, 0, today.Location()).Format(models.DateLayout)
}

// Streak counts consecutive calendar days ending today that appear in dates.
// It is 0 when today is missing, even if yesterday is present.
func Streak(today time.Time, dates []string) int {
	loc := today.Location()
	days := make(map[string]bool, len(dates))
	for _, d := range dates {
		if k, ok := dayKey(d, loc); ok {
			days[k] = true
		}
	}
	n := 0
	for days[daysBefore(today, n)] {
		n++
	}
	return n
}

// LongestStreak returns the longest run of consecutive days anywhere in dates.
func LongestStreak(dates []string) int {
	seen := make(map[string]bool, len(dates))
	var days []time.Time
	for _, d := range dates {
		k, ok := dayKey(d, time.UTC)
		if !ok || seen[k] {
			continue
		}
		seen[k] = true
		t, _ := time.Parse(models.DateLayout, k)
		days = append(days, t)
	}
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
