package planner

import (
	"time"

	"github.com/prepnova/prepnova/internal/llm"
)

// Preferences are the study preferences collected before analysis.
type Preferences struct {
	// StudyTime is the preferred daily study time, e.g. "7:00 PM".
	StudyTime string
	// SessionMinutes is the preferred session duration in minutes.
	SessionMinutes int
}

// AnalyzeInput is everything the planner needs to build a study plan.
type AnalyzeInput struct {
	Syllabus    llm.File
	Preferences Preferences
	// Now anchors the plan. Sessions are scheduled between Now and each
	// exam date.
	Now time.Time
}
