package feedback

import "github.com/prepnova/prepnova/internal/plan"

// adjustDoneMsg delivers the model's adjustment, or the error.
type adjustDoneMsg struct {
	Adjustment *plan.Adjustment
	Err        error
}

// reconcileDoneMsg signals the calendar update finished (the warning, if
// any, is already recorded in the plan store).
type reconcileDoneMsg struct{}
