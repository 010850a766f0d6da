// Package success implements the final wizard step.
package success

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/prepnova/prepnova/internal/router"
	"github.com/prepnova/prepnova/internal/screen"
	"github.com/prepnova/prepnova/internal/screens"
	"github.com/prepnova/prepnova/internal/ui/layout"
	"github.com/prepnova/prepnova/internal/ui/theme"
)

// SuccessScreen closes out a plan and offers a fresh start.
type SuccessScreen struct {
	deps     *screens.Deps
	sessions int
	exams    int
}

var _ screen.Screen = (*SuccessScreen)(nil)
var _ screen.KeyHintProvider = (*SuccessScreen)(nil)

// New creates the success screen, capturing the plan's size for the
// farewell message before anything resets it.
func New(deps *screens.Deps, sessions, exams int) *SuccessScreen {
	return &SuccessScreen{deps: deps, sessions: sessions, exams: exams}
}

func (s *SuccessScreen) Init() tea.Cmd {
	return nil
}

func (s *SuccessScreen) Title() string {
	return "All Set"
}

func (s *SuccessScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "N", Description: "New plan"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *SuccessScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "n", "N":
		s.deps.Store.Reset()
		next := s.deps.NewUpload("")
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case "q", "Q":
		return s, tea.Quit
	}
	return s, nil
}

func (s *SuccessScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Success).
		Bold(true).
		Render("You're all set!"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(fmt.Sprintf("%d study sessions planned across %d exam(s).", s.sessions, s.exams)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Good luck. Come back after each session to keep the plan honest."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("[N] Start a new plan    [Q] Quit"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
