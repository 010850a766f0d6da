package planstore

import (
	"testing"
	"time"

	"github.com/prepnova/prepnova/internal/plan"
)

func TestReplaceClearsDisplayState(t *testing.T) {
	s := New()
	s.SetWarning("old warning")
	s.ApplyAdjustment("Midterm 1", "2025-10-10", &plan.Adjustment{Encouragement: "hi"}, time.Now())

	s.Replace([]plan.StudySession{{SessionID: "x", ExamName: "Final"}})

	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	if s.Warning() != "" {
		t.Error("Replace should clear the warning")
	}
	if s.LastAdjustment() != nil {
		t.Error("Replace should clear the last adjustment")
	}
}

func TestSessionsReturnsCopy(t *testing.T) {
	s := New()
	s.Replace([]plan.StudySession{{SessionID: "x", ExamName: "Final"}})

	got := s.Sessions()
	got[0].ExamName = "mutated"

	if s.Sessions()[0].ExamName != "Final" {
		t.Error("mutating the returned slice must not affect the store")
	}
}

func TestApplyAdjustmentReturnsNewSessions(t *testing.T) {
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.Local)
	s := New()
	s.Replace([]plan.StudySession{
		{SessionID: "old", ExamName: "Midterm 1", ExamDate: "2025-10-10", SessionDate: "2025-10-05", SessionTime: "7:00 PM"},
	})

	adj := &plan.Adjustment{
		UpdatedSessions: []plan.AdjustedSession{
			{SessionTitle: "New A", SessionDate: "2025-10-06", SessionTime: "5:00 PM", Duration: 45},
			{SessionTitle: "New B", SessionDate: "2025-10-08", SessionTime: "5:00 PM", Duration: 45},
		},
		SummaryOfChanges: []string{"shortened sessions"},
		Encouragement:    "keep going",
	}

	created := s.ApplyAdjustment("Midterm 1", "2025-10-10", adj, now)

	if len(created) != 2 {
		t.Fatalf("created = %d sessions, want 2", len(created))
	}
	for _, c := range created {
		if c.ExamName != "Midterm 1" || c.ExamDate != "2025-10-10" {
			t.Errorf("created session missing exam tags: %+v", c)
		}
		if c.SessionID == "" {
			t.Error("created session missing id")
		}
	}
	if s.LastAdjustment() == nil || s.LastAdjustment().Encouragement != "keep going" {
		t.Error("adjustment result not recorded")
	}
}

func TestResetDiscardsEverything(t *testing.T) {
	s := New()
	s.Replace([]plan.StudySession{{SessionID: "x"}})
	s.SetWarning("w")

	s.Reset()

	if s.Len() != 0 || s.Warning() != "" || s.LastAdjustment() != nil {
		t.Error("Reset should discard plan and display state")
	}
}
