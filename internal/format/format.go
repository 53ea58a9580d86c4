// Package format renders durations, byte sizes and timestamps for display.
package format

import (
	"fmt"
	"time"
)

// PrettyTime formats a track length in seconds as H:MM:SS, or M:SS when
// under an hour.
func PrettyTime(seconds int) string {
	// Scrobbler metadata sometimes reports negative track lengths.
	if seconds < 0 {
		seconds = -seconds
	}

	hours := seconds / 3600
	minutes := (seconds / 60) % 60
	seconds %= 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// WordyTime formats a long duration in seconds, with a day count in front
// when the duration spans days: "3 days 2:10:05".
func WordyTime(seconds uint64) string {
	days := seconds / 86400
	clock := PrettyTime(int(seconds - days*86400))

	switch days {
	case 0:
		return clock
	case 1:
		return "1 day " + clock
	}
	return fmt.Sprintf("%d days %s", days, clock)
}

// Ago describes then relative to now: "Today 15:04", "Yesterday 15:04",
// "N days ago" up to a week, and a full date beyond that.
func Ago(then, now time.Time) string {
	daysAgo := calendarDaysBetween(then, now)
	clock := then.Format("15:04")

	switch {
	case daysAgo <= 0:
		return "Today " + clock
	case daysAgo == 1:
		return "Yesterday " + clock
	case daysAgo <= 7:
		return fmt.Sprintf("%d days ago", daysAgo)
	}
	return then.Format("2006-01-02 15:04")
}

// calendarDaysBetween counts date boundaries crossed between then and now,
// not elapsed 24-hour periods.
func calendarDaysBetween(then, now time.Time) int {
	ty, tm, td := then.Date()
	ny, nm, nd := now.Date()
	thenDate := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	nowDate := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(nowDate.Sub(thenDate) / (24 * time.Hour))
}

// PrettySize formats a byte count with decimal units: raw bytes up to 1000,
// then one-decimal KB/MB/GB. Zero formats as the empty string so empty
// values stay blank in list views.
func PrettySize(bytes uint64) string {
	switch {
	case bytes == 0:
		return ""
	case bytes <= 1000:
		return fmt.Sprintf("%d bytes", bytes)
	case bytes <= 1000*1000:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1000)
	case bytes <= 1000*1000*1000:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1000*1000))
	}
	return fmt.Sprintf("%.1f GB", float64(bytes)/(1000*1000*1000))
}
