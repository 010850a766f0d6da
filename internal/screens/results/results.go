// Package results implements the third wizard step: the generated plan,
// calendar sync and the jumping-off point for session feedback.
package results

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/prepnova/prepnova/internal/calendar"
	"github.com/prepnova/prepnova/internal/googleauth"
	"github.com/prepnova/prepnova/internal/plan"
	"github.com/prepnova/prepnova/internal/router"
	"github.com/prepnova/prepnova/internal/screen"
	"github.com/prepnova/prepnova/internal/screens"
	"github.com/prepnova/prepnova/internal/screens/feedback"
	"github.com/prepnova/prepnova/internal/screens/success"
	"github.com/prepnova/prepnova/internal/ui/layout"
)

type itemStatus int

const (
	statusNone itemStatus = iota
	statusPending
	statusAdded
	statusFailed
)

const expiredNotice = "Your Google session expired and you have been signed out. Your plan is untouched; press g to sign in again."

// ResultsScreen shows the plan grouped by exam and drives all calendar
// work from it.
type ResultsScreen struct {
	deps *screens.Deps

	cursor int

	sessionStatus map[string]itemStatus
	examStatus    map[string]itemStatus

	// addAllQueue is non-nil while a sequential add-all pass runs.
	addAllQueue []plan.StudySession
	addAllPos   int

	signing   bool
	notice    string
	noticeBad bool
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results screen over the current plan store.
func New(deps *screens.Deps) *ResultsScreen {
	return &ResultsScreen{
		deps:          deps,
		sessionStatus: make(map[string]itemStatus),
		examStatus:    make(map[string]itemStatus),
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Your Study Plan"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Select"},
		{Key: "c", Description: "Add to calendar"},
		{Key: "a", Description: "Add all for exam"},
		{Key: "e", Description: "Add exam day"},
		{Key: "f", Description: "Feedback"},
		{Key: "g", Description: "Google sign-in/out"},
		{Key: "d", Description: "Done"},
	}
}

// groups rebuilds the display grouping from the store. The store is the
// single source of truth because adjustments rewrite it underneath this
// screen.
func (s *ResultsScreen) groups() []plan.ExamGroup {
	return plan.GroupByExam(s.deps.Store.Sessions(), s.deps.Now())
}

// flattened returns the sessions in display order, for cursor math.
func flattened(groups []plan.ExamGroup) []plan.StudySession {
	var out []plan.StudySession
	for _, g := range groups {
		out = append(out, g.Sessions...)
	}
	return out
}

func (s *ResultsScreen) selected() (plan.StudySession, bool) {
	flat := flattened(s.groups())
	if len(flat) == 0 {
		return plan.StudySession{}, false
	}
	if s.cursor >= len(flat) {
		s.cursor = len(flat) - 1
	}
	return flat[s.cursor], true
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionAddedMsg:
		if msg.Err != nil {
			s.sessionStatus[msg.SessionID] = statusFailed
			s.calendarTrouble("Could not add the session", msg.Err)
			return s, nil
		}
		s.sessionStatus[msg.SessionID] = statusAdded
		return s, nil

	case examAddedMsg:
		if msg.Err != nil {
			s.examStatus[msg.ExamName] = statusFailed
			s.calendarTrouble("Could not add the exam day", msg.Err)
			return s, nil
		}
		s.examStatus[msg.ExamName] = statusAdded
		return s, nil

	case addAllStepMsg:
		return s.handleAddAllStep(msg)

	case signInDoneMsg:
		s.signing = false
		if msg.Err != nil {
			s.setNotice("Google sign-in failed: "+msg.Err.Error(), true)
			return s, nil
		}
		s.setNotice("Signed in as "+s.deps.Account()+".", false)
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ResultsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	flat := flattened(s.groups())

	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(flat)-1 {
			s.cursor++
		}

	case "c":
		sess, ok := s.selected()
		if !ok || s.sessionStatus[sess.SessionID] == statusPending {
			return s, nil
		}
		if !s.accountReady() {
			return s, nil
		}
		s.sessionStatus[sess.SessionID] = statusPending
		return s, s.addSessionCmd(sess)

	case "e":
		sess, ok := s.selected()
		if !ok || s.examStatus[sess.ExamName] == statusPending {
			return s, nil
		}
		if !s.accountReady() {
			return s, nil
		}
		s.examStatus[sess.ExamName] = statusPending
		return s, s.addExamCmd(sess.ExamName, sess.ExamDate)

	case "a":
		if s.addAllQueue != nil {
			return s, nil
		}
		sess, ok := s.selected()
		if !ok || !s.accountReady() {
			return s, nil
		}
		for _, g := range s.groups() {
			if g.ExamName == sess.ExamName {
				s.addAllQueue = g.Sessions
				break
			}
		}
		if len(s.addAllQueue) == 0 {
			s.addAllQueue = nil
			return s, nil
		}
		s.addAllPos = 0
		s.sessionStatus[s.addAllQueue[0].SessionID] = statusPending
		return s, s.addAllStepCmd(0)

	case "f":
		sess, ok := s.selected()
		if !ok {
			return s, nil
		}
		s.notice = ""
		next := feedback.New(s.deps, sess)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }

	case "g":
		return s.toggleSignIn()

	case "d", "enter":
		groups := s.groups()
		next := success.New(s.deps, len(flattened(groups)), len(groups))
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return s, nil
}

// accountReady reports whether calendar work can start, setting a
// guidance notice when it cannot.
func (s *ResultsScreen) accountReady() bool {
	if s.deps.Auth == nil {
		s.setNotice(s.deps.AuthHint, true)
		return false
	}
	if !s.deps.Auth.SignedIn() {
		s.setNotice("Sign in with Google first (press g).", true)
		return false
	}
	return true
}

func (s *ResultsScreen) toggleSignIn() (screen.Screen, tea.Cmd) {
	if s.deps.Auth == nil {
		s.setNotice(s.deps.AuthHint, true)
		return s, nil
	}
	if s.deps.Auth.SignedIn() {
		s.deps.Auth.SignOut()
		s.setNotice("Signed out of Google. Your plan is untouched.", false)
		return s, nil
	}
	if s.signing {
		return s, nil
	}
	s.signing = true
	s.setNotice("Waiting for Google sign-in in your browser...", false)
	return s, func() tea.Msg {
		_, err := s.deps.Auth.SignIn(context.Background(), s.deps.OpenURL)
		return signInDoneMsg{Err: err}
	}
}

func (s *ResultsScreen) addSessionCmd(sess plan.StudySession) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		rec, err := s.deps.Calendar(ctx)
		if err != nil {
			return sessionAddedMsg{SessionID: sess.SessionID, Err: err}
		}
		return sessionAddedMsg{
			SessionID: sess.SessionID,
			Err:       rec.AddSession(ctx, sess, s.deps.Now()),
		}
	}
}

func (s *ResultsScreen) addExamCmd(examName, examDate string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		rec, err := s.deps.Calendar(ctx)
		if err != nil {
			return examAddedMsg{ExamName: examName, Err: err}
		}
		return examAddedMsg{
			ExamName: examName,
			Err:      rec.AddExamDay(ctx, examName, examDate, s.deps.Now()),
		}
	}
}

// addAllStepCmd creates the event for one queued session. The steps are
// chained through Update so the creates stay strictly sequential.
func (s *ResultsScreen) addAllStepCmd(i int) tea.Cmd {
	sess := s.addAllQueue[i]
	return func() tea.Msg {
		ctx := context.Background()
		rec, err := s.deps.Calendar(ctx)
		if err != nil {
			return addAllStepMsg{Index: i, Err: err}
		}
		return addAllStepMsg{Index: i, Err: rec.AddSession(ctx, sess, s.deps.Now())}
	}
}

func (s *ResultsScreen) handleAddAllStep(msg addAllStepMsg) (screen.Screen, tea.Cmd) {
	if s.addAllQueue == nil || msg.Index >= len(s.addAllQueue) {
		return s, nil
	}
	sess := s.addAllQueue[msg.Index]
	total := len(s.addAllQueue)

	if msg.Err != nil {
		s.sessionStatus[sess.SessionID] = statusFailed
		s.calendarTrouble(fmt.Sprintf("Stopped adding events at session %d of %d", msg.Index+1, total), msg.Err)
		s.addAllQueue = nil
		return s, nil
	}

	s.sessionStatus[sess.SessionID] = statusAdded
	next := msg.Index + 1
	if next >= total {
		s.addAllQueue = nil
		s.setNotice(fmt.Sprintf("Added all %d sessions to Google Calendar.", total), false)
		return s, nil
	}
	s.addAllPos = next
	s.sessionStatus[s.addAllQueue[next].SessionID] = statusPending
	return s, s.addAllStepCmd(next)
}

// calendarTrouble records a calendar failure. An expired Google session
// forces a sign-out but never touches the plan.
func (s *ResultsScreen) calendarTrouble(what string, err error) {
	switch {
	case errors.Is(err, calendar.ErrUnauthorized):
		if s.deps.Auth != nil {
			s.deps.Auth.ForceSignOut()
		}
		s.setNotice(expiredNotice, true)
	case errors.Is(err, googleauth.ErrSignedOut):
		s.setNotice("Sign in with Google first (press g).", true)
	default:
		s.setNotice(what+": "+err.Error(), true)
	}
}

func (s *ResultsScreen) setNotice(msg string, bad bool) {
	s.notice = msg
	s.noticeBad = bad
}
