// Package processing implements the second wizard step: the syllabus is
// analyzed while a spinner keeps the screen alive.
package processing

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/prepnova/prepnova/internal/planner"
	"github.com/prepnova/prepnova/internal/router"
	"github.com/prepnova/prepnova/internal/screen"
	"github.com/prepnova/prepnova/internal/screens"
	"github.com/prepnova/prepnova/internal/screens/results"
	"github.com/prepnova/prepnova/internal/ui/layout"
	"github.com/prepnova/prepnova/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const noExamsMsg = "Couldn't find any exams in the syllabus to build a study plan. Please try another file."

// ProcessingScreen runs the syllabus analysis and routes to the results
// step, or back to upload when the analysis comes up empty or fails.
type ProcessingScreen struct {
	deps  *screens.Deps
	input planner.AnalyzeInput
	frame int
}

var _ screen.Screen = (*ProcessingScreen)(nil)
var _ screen.KeyHintProvider = (*ProcessingScreen)(nil)

// New creates the processing screen for one analysis run.
func New(deps *screens.Deps, input planner.AnalyzeInput) *ProcessingScreen {
	return &ProcessingScreen{deps: deps, input: input}
}

func (s *ProcessingScreen) Init() tea.Cmd {
	return tea.Batch(s.analyze(), spinnerTick())
}

func (s *ProcessingScreen) Title() string {
	return "Analyzing"
}

func (s *ProcessingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ProcessingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case planReadyMsg:
		if msg.Err != nil {
			back := s.deps.NewUpload(fmt.Sprintf("Failed to analyze the syllabus: %v", msg.Err))
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: back} }
		}
		if len(msg.Sessions) == 0 {
			back := s.deps.NewUpload(noExamsMsg)
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: back} }
		}
		s.deps.Store.Replace(msg.Sessions)
		next := results.New(s.deps)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return s, nil
}

// analyze runs the planner off the UI loop.
func (s *ProcessingScreen) analyze() tea.Cmd {
	input := s.input
	return func() tea.Msg {
		sessions, err := s.deps.Planner.Analyze(context.Background(), input)
		return planReadyMsg{Sessions: sessions, Err: err}
	}
}

func (s *ProcessingScreen) View(width, height int) string {
	var b strings.Builder

	spinner := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(spinnerFrames[s.frame])

	b.WriteString(spinner + "  " + lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Analyzing your syllabus..."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Finding exams and building a spaced-repetition plan.\nThis can take a minute for a large file."))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
