package calendar

import (
	"fmt"
	"regexp"
	"time"

	"github.com/prepnova/prepnova/internal/plan"
	"github.com/prepnova/prepnova/internal/schedule"
)

// Event is the subset of the Google Calendar event resource this client
// reads and writes.
type Event struct {
	ID                 string              `json:"id,omitempty"`
	Summary            string              `json:"summary"`
	Description        string              `json:"description,omitempty"`
	Start              *EventTime          `json:"start"`
	End                *EventTime          `json:"end"`
	ExtendedProperties *ExtendedProperties `json:"extendedProperties,omitempty"`
}

// EventTime is either a timed instant (DateTime plus TimeZone) or an
// all-day date, never both.
type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// ExtendedProperties carries the private tags used to find this app's
// events again later.
type ExtendedProperties struct {
	Private map[string]string `json:"private,omitempty"`
}

var whitespace = regexp.MustCompile(`\s+`)

// ExamTag converts an exam name into the value stored in the examName
// private property. Spaces become underscores so the tag survives URL
// query encoding round trips.
func ExamTag(examName string) string {
	return whitespace.ReplaceAllString(examName, "_")
}

// SessionEvent builds a timed calendar event for one study session.
// Times are naive local timestamps paired with the machine's zone name.
func SessionEvent(s plan.StudySession, now time.Time) *Event {
	start, end := schedule.Span(s.SessionDate, s.SessionTime, s.Duration, now)
	zone := schedule.Zone()

	return &Event{
		Summary: s.SessionTitle,
		Description: fmt.Sprintf(
			"Topics to study: %s\n\nOptional extra task: %s\n\nEvent from PrepNova Study Planner.",
			s.Topics, s.ExtraTask),
		Start: &EventTime{DateTime: schedule.FormatLocal(start), TimeZone: zone},
		End:   &EventTime{DateTime: schedule.FormatLocal(end), TimeZone: zone},
		ExtendedProperties: &ExtendedProperties{
			Private: map[string]string{
				"sessionId": s.SessionID,
				"examName":  ExamTag(s.ExamName),
			},
		},
	}
}

// ExamEvent builds an all-day event for the exam itself. All-day events
// use a half-open date range, so the end date is the day after.
func ExamEvent(examName, examDate string, now time.Time) *Event {
	startDay, endDay := schedule.DayRange(examDate, now)

	return &Event{
		Summary: fmt.Sprintf("%s Exam", examName),
		Description: fmt.Sprintf(
			"Exam: %s\n\nEvent from PrepNova Study Planner.", examName),
		Start: &EventTime{Date: startDay},
		End:   &EventTime{Date: endDay},
	}
}
