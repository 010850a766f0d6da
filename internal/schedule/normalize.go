// Package schedule normalizes the loosely formatted date and time strings
// that come back from the model into concrete local instants. The same
// parsing is used for calendar event creation and for chronological display
// ordering, so the two can never disagree.
package schedule

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// clockPattern accepts "7:00 PM", "07:00pm", "19.05", "19:00" and similar.
// It matches anywhere in the string so trailing noise is tolerated.
var clockPattern = regexp.MustCompile(`(\d{1,2})[:.](\d{2})\s?([AaPp][Mm])?`)

var dateSeparator = regexp.MustCompile(`[-/]`)

// fallbackLayouts are tried, prefixed with an arbitrary fixed date, when the
// clock pattern does not match at all.
var fallbackLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 3:04 PM",
	"2006-01-02 3 PM",
	"2006-01-02 3PM",
	"2006-01-02 15",
}

// Clock is a parsed hour/minute of day.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock extracts an hour and minute from a free-form time string.
//
// A meridiem converts to 24-hour time (12 PM stays 12, 12 AM becomes 0,
// other PM hours gain 12). Without a meridiem the hour is taken as already
// 24-hour. If nothing parses the result defaults to noon and a diagnostic
// is written to stderr.
func ParseClock(s string) Clock {
	if m := clockPattern.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		switch strings.ToUpper(m[3]) {
		case "PM":
			if hour < 12 {
				hour += 12
			}
		case "AM":
			if hour == 12 {
				hour = 0
			}
		}
		return Clock{Hour: hour, Minute: minute}
	}

	trimmed := strings.TrimSpace(s)
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, "2000-01-01 "+trimmed); err == nil {
			return Clock{Hour: t.Hour(), Minute: t.Minute()}
		}
	}

	fmt.Fprintf(os.Stderr, "warning: could not parse time %q, defaulting to 12:00\n", s)
	return Clock{Hour: 12, Minute: 0}
}

// ParseDate splits a date string on "-" or "/" into year, month and day.
// Missing or non-numeric parts fall back to the current year, January and
// the 1st respectively, matching how partial dates are treated everywhere
// else in the plan.
func ParseDate(s string, now time.Time) (int, time.Month, int) {
	parts := dateSeparator.Split(strings.TrimSpace(s), 3)

	nums := [3]int{}
	for i := 0; i < len(parts) && i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err == nil {
			nums[i] = n
		}
	}

	year, month, day := nums[0], nums[1], nums[2]
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = 1
	}
	if day == 0 {
		day = 1
	}
	return year, time.Month(month), day
}

// Span composes a local start instant from a date and time string and an
// end instant offset by duration minutes.
func Span(dateStr, timeStr string, durationMin int, now time.Time) (time.Time, time.Time) {
	start := Start(dateStr, timeStr, now)
	return start, start.Add(time.Duration(durationMin) * time.Minute)
}

// Start composes the local start instant for a session. It is also the
// sort key for chronological display ordering.
func Start(dateStr, timeStr string, now time.Time) time.Time {
	year, month, day := ParseDate(dateStr, now)
	clock := ParseClock(timeStr)
	return time.Date(year, month, day, clock.Hour, clock.Minute, 0, 0, time.Local)
}

// FormatLocal renders an instant as a naive local timestamp with no UTC
// offset. Calendar events pair this with an explicit time-zone name.
func FormatLocal(t time.Time) string {
	return t.Format("2006-01-02T15:04:00")
}

// Zone returns the machine's local time-zone identifier.
func Zone() string {
	return time.Local.String()
}

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DayRange normalizes an exam date to YYYY-MM-DD and returns the half-open
// [date, date+1) pair that all-day calendar events require.
func DayRange(dateStr string, now time.Time) (string, string) {
	safe := strings.TrimSpace(dateStr)
	if !isoDate.MatchString(safe) {
		year, month, day := ParseDate(safe, now)
		safe = time.Date(year, month, day, 0, 0, 0, 0, time.Local).Format("2006-01-02")
	}
	day, err := time.ParseInLocation("2006-01-02", safe, time.Local)
	if err != nil {
		day = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.Local)
		safe = day.Format("2006-01-02")
	}
	return safe, day.AddDate(0, 0, 1).Format("2006-01-02")
}
