package processing

import (
	"time"

	"github.com/prepnova/prepnova/internal/plan"
)

// spinnerTickMsg drives the spinner animation.
type spinnerTickMsg time.Time

// planReadyMsg delivers the generated plan, or the analysis error.
type planReadyMsg struct {
	Sessions []plan.StudySession
	Err      error
}
