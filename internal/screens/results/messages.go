package results

// sessionAddedMsg reports one session's calendar create.
type sessionAddedMsg struct {
	SessionID string
	Err       error
}

// examAddedMsg reports the all-day exam event's create.
type examAddedMsg struct {
	ExamName string
	Err      error
}

// addAllStepMsg reports one create of a running add-all pass. Index is
// 0-based into the queued sessions.
type addAllStepMsg struct {
	Index int
	Err   error
}

// signInDoneMsg reports the outcome of the Google sign-in flow.
type signInDoneMsg struct {
	Err error
}
