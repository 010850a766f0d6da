package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/prepnova/prepnova/internal/plan"
	"github.com/prepnova/prepnova/internal/schedule"
)

func TestSessionEvent_Fields(t *testing.T) {
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.Local)
	s := plan.StudySession{
		SessionID:    "abc-123",
		ExamName:     "Midterm 1",
		ExamDate:     "2025-10-10",
		SessionTitle: "Review limits",
		SessionDate:  "2025-10-03",
		SessionTime:  "7:00 PM",
		Duration:     60,
		Topics:       "Limits, continuity",
		ExtraTask:    "Make flashcards",
	}

	ev := SessionEvent(s, now)

	if ev.Summary != "Review limits" {
		t.Errorf("Summary = %q", ev.Summary)
	}
	if ev.Start.DateTime != "2025-10-03T19:00:00" {
		t.Errorf("Start.DateTime = %q", ev.Start.DateTime)
	}
	if ev.End.DateTime != "2025-10-03T20:00:00" {
		t.Errorf("End.DateTime = %q", ev.End.DateTime)
	}
	if ev.Start.TimeZone != schedule.Zone() || ev.End.TimeZone != schedule.Zone() {
		t.Error("events must carry the local zone name")
	}
	if ev.ExtendedProperties.Private["sessionId"] != "abc-123" {
		t.Errorf("sessionId tag = %q", ev.ExtendedProperties.Private["sessionId"])
	}
	if ev.ExtendedProperties.Private["examName"] != "Midterm_1" {
		t.Errorf("examName tag = %q", ev.ExtendedProperties.Private["examName"])
	}
	if !strings.Contains(ev.Description, "Limits, continuity") {
		t.Errorf("Description missing topics: %q", ev.Description)
	}
	if !strings.Contains(ev.Description, "Make flashcards") {
		t.Errorf("Description missing extra task: %q", ev.Description)
	}
}

func TestExamEvent_AllDayHalfOpenRange(t *testing.T) {
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.Local)
	ev := ExamEvent("Midterm 1", "2025-10-10", now)

	if ev.Summary != "Midterm 1 Exam" {
		t.Errorf("Summary = %q", ev.Summary)
	}
	if ev.Start.Date != "2025-10-10" || ev.Start.DateTime != "" {
		t.Errorf("Start = %+v, want all-day date", ev.Start)
	}
	if ev.End.Date != "2025-10-11" {
		t.Errorf("End.Date = %q, want next day", ev.End.Date)
	}
	if ev.ExtendedProperties != nil {
		t.Error("exam events carry no private tags")
	}
}

func TestExamTag(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Midterm 1", "Midterm_1"},
		{"Final  Exam", "Final_Exam"},
		{"Quiz", "Quiz"},
	}
	for _, tt := range tests {
		if got := ExamTag(tt.in); got != tt.want {
			t.Errorf("ExamTag(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
