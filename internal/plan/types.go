// Package plan holds the study-plan domain records and the merge policy
// applied when an adjustment replaces part of a plan.
package plan

import "github.com/google/uuid"

// StudySession is one scheduled study block for a specific exam.
// SessionDate and SessionTime stay in the loose string form the model
// produced; the schedule package normalizes them on demand.
type StudySession struct {
	SessionID    string `json:"sessionId"`
	ExamName     string `json:"examName"`
	ExamDate     string `json:"examDate"` // YYYY-MM-DD expected, not enforced
	SessionTitle string `json:"sessionTitle"`
	SessionDate  string `json:"sessionDate"`
	SessionTime  string `json:"sessionTime"` // e.g. "7:00 PM"
	Duration     int    `json:"duration"`    // minutes
	Topics       string `json:"topics"`
	ExtraTask    string `json:"extraTask"`
}

// FeedbackInput is what the user reports about a completed session.
type FeedbackInput struct {
	DifficultyLevel   int    `json:"difficulty_level"`   // 1-5
	FocusLevel        int    `json:"focus_level"`        // 1-5
	ProgressPct       int    `json:"progress_pct"`       // 0-100
	PreparednessLevel int    `json:"preparedness_level"` // 1-5
	Notes             string `json:"notes"`
}

// AdjustedSession is a replacement session returned by the adjustment call.
// It carries no id or exam fields; the merge re-attaches those.
type AdjustedSession struct {
	SessionTitle string `json:"sessionTitle"`
	SessionDate  string `json:"sessionDate"`
	SessionTime  string `json:"sessionTime"`
	Duration     int    `json:"duration"`
	Topics       string `json:"topics"`
	ExtraTask    string `json:"extraTask"`
}

// Adjustment is the full response of the adjustment call.
type Adjustment struct {
	UpdatedSessions  []AdjustedSession `json:"updatedSessions"`
	SummaryOfChanges []string          `json:"summaryOfChanges"`
	Encouragement    string            `json:"encouragement"`
}

// NewSessionID returns a fresh unique session id.
func NewSessionID() string {
	return uuid.New().String()
}
