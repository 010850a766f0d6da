// Package feedback implements the session feedback form and the plan
// adjustment it triggers.
package feedback

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/prepnova/prepnova/internal/adjust"
	"github.com/prepnova/prepnova/internal/calendar"
	"github.com/prepnova/prepnova/internal/googleauth"
	"github.com/prepnova/prepnova/internal/plan"
	"github.com/prepnova/prepnova/internal/router"
	"github.com/prepnova/prepnova/internal/screen"
	"github.com/prepnova/prepnova/internal/screens"
	"github.com/prepnova/prepnova/internal/ui/components"
	"github.com/prepnova/prepnova/internal/ui/layout"
	"github.com/prepnova/prepnova/internal/ui/theme"
)

const (
	fieldDifficulty = iota
	fieldFocus
	fieldProgress
	fieldPreparedness
	fieldNotes
	fieldCount
)

const calendarWarning = "Your plan was adjusted, but we failed to update your Google Calendar completely. Please check your calendar."
const expiredWarning = "Your plan was adjusted, but your Google session expired before the calendar could be updated. Sign in again to sync."

// FeedbackScreen collects how one session went and rewrites the exam's
// upcoming sessions from it.
type FeedbackScreen struct {
	deps    *screens.Deps
	session plan.StudySession

	difficulty   components.Slider
	focusLevel   components.Slider
	progress     components.Slider
	preparedness components.Slider
	notes        components.TextInput
	focus        int

	adjusting bool
	errMsg    string
}

var _ screen.Screen = (*FeedbackScreen)(nil)
var _ screen.KeyHintProvider = (*FeedbackScreen)(nil)

// New creates the feedback form for one completed session.
func New(deps *screens.Deps, session plan.StudySession) *FeedbackScreen {
	s := &FeedbackScreen{
		deps:         deps,
		session:      session,
		difficulty:   components.NewSlider("How difficult was it?", 1, 5, 1, 3),
		focusLevel:   components.NewSlider("How focused were you?", 1, 5, 1, 3),
		progress:     components.NewSlider("Progress through the material (%)", 0, 100, 5, 50),
		preparedness: components.NewSlider("How prepared do you feel?", 1, 5, 1, 3),
		notes:        components.NewTextInput("Anything else? (optional)", false, 200),
	}
	s.difficulty.Focused = true
	s.notes.Model.Blur()
	return s
}

func (s *FeedbackScreen) Init() tea.Cmd {
	return nil
}

func (s *FeedbackScreen) Title() string {
	return "Session Feedback"
}

func (s *FeedbackScreen) KeyHints() []layout.KeyHint {
	if s.adjusting {
		return nil
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "←/→", Description: "Adjust"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *FeedbackScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case adjustDoneMsg:
		if msg.Err != nil {
			s.adjusting = false
			s.errMsg = "Failed to adjust the plan: " + msg.Err.Error()
			return s, nil
		}
		created := s.deps.Store.ApplyAdjustment(s.session.ExamName, s.session.ExamDate, msg.Adjustment, s.deps.Now())
		return s, s.reconcile(created)

	case reconcileDoneMsg:
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyMsg:
		if s.adjusting {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		case "enter":
			s.errMsg = ""
			s.adjusting = true
			return s, s.runAdjust()
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldDifficulty:
		s.difficulty, cmd = s.difficulty.Update(msg)
	case fieldFocus:
		s.focusLevel, cmd = s.focusLevel.Update(msg)
	case fieldProgress:
		s.progress, cmd = s.progress.Update(msg)
	case fieldPreparedness:
		s.preparedness, cmd = s.preparedness.Update(msg)
	case fieldNotes:
		s.notes, cmd = s.notes.Update(msg)
	}
	return s, cmd
}

func (s *FeedbackScreen) setFocus(i int) tea.Cmd {
	s.focus = i
	s.difficulty.Focused = i == fieldDifficulty
	s.focusLevel.Focused = i == fieldFocus
	s.progress.Focused = i == fieldProgress
	s.preparedness.Focused = i == fieldPreparedness

	if i == fieldNotes {
		return s.notes.Model.Focus()
	}
	s.notes.Model.Blur()
	return nil
}

// runAdjust calls the adjuster with the upcoming sessions of this exam.
func (s *FeedbackScreen) runAdjust() tea.Cmd {
	input := adjust.Input{
		ExamName: s.session.ExamName,
		ExamDate: s.session.ExamDate,
		Feedback: plan.FeedbackInput{
			DifficultyLevel:   s.difficulty.Value,
			FocusLevel:        s.focusLevel.Value,
			ProgressPct:       s.progress.Value,
			PreparednessLevel: s.preparedness.Value,
			Notes:             strings.TrimSpace(s.notes.Value()),
		},
		Upcoming: plan.Upcoming(s.deps.Store.Sessions(), s.session.ExamName, s.deps.Now()),
		Now:      s.deps.Now(),
	}
	return func() tea.Msg {
		adj, err := s.deps.Adjuster.Adjust(context.Background(), input)
		return adjustDoneMsg{Adjustment: adj, Err: err}
	}
}

// reconcile swaps the exam's calendar events for the replacement
// sessions. Best effort: any trouble becomes a stored warning, never an
// error, and when nobody is signed in there is nothing to do.
func (s *FeedbackScreen) reconcile(created []plan.StudySession) tea.Cmd {
	examName := s.session.ExamName
	return func() tea.Msg {
		ctx := context.Background()
		rec, err := s.deps.Calendar(ctx)
		if err != nil {
			if !errors.Is(err, googleauth.ErrSignedOut) {
				s.deps.Store.SetWarning(calendarWarning)
			}
			return reconcileDoneMsg{}
		}

		if err := rec.ReplaceExamEvents(ctx, examName, created, s.deps.Now()); err != nil {
			if errors.Is(err, calendar.ErrUnauthorized) {
				if s.deps.Auth != nil {
					s.deps.Auth.ForceSignOut()
				}
				s.deps.Store.SetWarning(expiredWarning)
			} else {
				s.deps.Store.SetWarning(calendarWarning)
			}
		}
		return reconcileDoneMsg{}
	}
}

func (s *FeedbackScreen) View(width, height int) string {
	if s.adjusting {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("Adjusting your plan..."))
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("How did it go?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(s.session.SessionTitle + "  (" + s.session.ExamName + ")"))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
		b.WriteString("\n\n")
	}

	b.WriteString(s.difficulty.View() + "\n\n")
	b.WriteString(s.focusLevel.View() + "\n\n")
	b.WriteString(s.progress.View() + "\n\n")
	b.WriteString(s.preparedness.View() + "\n\n")

	notesLabel := lipgloss.NewStyle().Foreground(theme.Text)
	if s.focus == fieldNotes {
		notesLabel = notesLabel.Foreground(theme.Primary).Bold(true)
	}
	b.WriteString(notesLabel.Render("Notes") + "\n" + s.notes.View())

	card := lipgloss.NewStyle().
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
