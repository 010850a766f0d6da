// Package upload implements the first wizard step: pick a syllabus file
// and set study preferences.
package upload

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/prepnova/prepnova/internal/planner"
	"github.com/prepnova/prepnova/internal/router"
	"github.com/prepnova/prepnova/internal/screen"
	"github.com/prepnova/prepnova/internal/screens"
	"github.com/prepnova/prepnova/internal/screens/processing"
	"github.com/prepnova/prepnova/internal/ui/components"
	"github.com/prepnova/prepnova/internal/ui/layout"
	"github.com/prepnova/prepnova/internal/ui/theme"
)

const (
	fieldPath = iota
	fieldStudyTime
	fieldMinutes
	fieldCount
)

const defaultStudyTime = "6:00 PM"

// durationOptions are the selectable session lengths in minutes.
var durationOptions = []int{30, 45, 60, 75, 90, 120}

const defaultDurationIdx = 2 // 60 minutes

// UploadScreen collects the syllabus path and the study preferences.
type UploadScreen struct {
	deps *screens.Deps

	path      components.TextInput
	studyTime components.TextInput
	duration  components.Menu
	focus     int

	errMsg  string
	reading bool
}

var _ screen.Screen = (*UploadScreen)(nil)
var _ screen.KeyHintProvider = (*UploadScreen)(nil)

// New creates the upload screen. errMsg, when non-empty, is shown above
// the form; the processing step routes back here with its failure text.
func New(deps *screens.Deps, errMsg string) *UploadScreen {
	items := make([]components.MenuItem, len(durationOptions))
	for i, minutes := range durationOptions {
		items[i] = components.MenuItem{Label: fmt.Sprintf("%d minutes", minutes)}
	}
	menu := components.NewMenu(items)
	menu.Selected = defaultDurationIdx

	s := &UploadScreen{
		deps:      deps,
		path:      components.NewTextInput("path/to/syllabus.pdf", false, 200),
		studyTime: components.NewTextInput(defaultStudyTime, false, 20),
		duration:  menu,
		errMsg:    errMsg,
	}
	s.studyTime.Model.Blur()
	return s
}

func (s *UploadScreen) Init() tea.Cmd {
	return s.path.Init()
}

func (s *UploadScreen) Title() string {
	return "Upload Syllabus"
}

func (s *UploadScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Generate plan"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *UploadScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case syllabusReadMsg:
		s.reading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		input := planner.AnalyzeInput{
			Syllabus:    msg.File,
			Preferences: s.preferences(),
			Now:         s.deps.Now(),
		}
		next := processing.New(s.deps, input)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyMsg:
		if s.reading {
			return s, nil
		}
		switch msg.String() {
		case "tab":
			return s, s.setFocus((s.focus + 1) % fieldCount)
		case "shift+tab":
			return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		case "enter":
			return s.submit()
		case "up", "down":
			// The duration menu consumes up/down; elsewhere they move fields.
			if s.focus != fieldMinutes {
				if msg.String() == "down" {
					return s, s.setFocus((s.focus + 1) % fieldCount)
				}
				return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
			}
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldPath:
		s.path, cmd = s.path.Update(msg)
	case fieldStudyTime:
		s.studyTime, cmd = s.studyTime.Update(msg)
	case fieldMinutes:
		s.duration, cmd = s.duration.Update(msg)
	}
	return s, cmd
}

func (s *UploadScreen) setFocus(i int) tea.Cmd {
	s.focus = i
	inputs := map[int]*components.TextInput{
		fieldPath:      &s.path,
		fieldStudyTime: &s.studyTime,
	}
	var cmd tea.Cmd
	for j, in := range inputs {
		if j == i {
			cmd = in.Model.Focus()
		} else {
			in.Model.Blur()
		}
	}
	return cmd
}

func (s *UploadScreen) preferences() planner.Preferences {
	prefs := planner.Preferences{
		StudyTime:      strings.TrimSpace(s.studyTime.Value()),
		SessionMinutes: durationOptions[s.duration.Selected],
	}
	if prefs.StudyTime == "" {
		prefs.StudyTime = defaultStudyTime
	}
	return prefs
}

func (s *UploadScreen) submit() (screen.Screen, tea.Cmd) {
	path := strings.TrimSpace(s.path.Value())
	if path == "" {
		s.errMsg = "Pick a syllabus file first."
		return s, nil
	}
	s.errMsg = ""
	s.reading = true
	return s, readSyllabusCmd(path)
}

// readSyllabusCmd loads the syllabus from disk off the UI loop.
func readSyllabusCmd(path string) tea.Cmd {
	return func() tea.Msg {
		file, err := planner.LoadSyllabus(path)
		return syllabusReadMsg{File: file, Err: err}
	}
}

func (s *UploadScreen) View(width, height int) string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Generate your study plan")
	sub := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Upload a syllabus and PrepNova will map out every exam.")

	b.WriteString(title + "\n" + sub + "\n\n")

	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Error).
			Render(s.errMsg))
		b.WriteString("\n\n")
	}

	b.WriteString(s.renderField(fieldPath, "Syllabus file", s.path.View()))
	b.WriteString(s.renderField(fieldStudyTime, "Preferred study time", s.studyTime.View()))
	b.WriteString(s.renderField(fieldMinutes, "Session length", strings.TrimRight(s.duration.View(), "\n")))

	if s.reading {
		b.WriteString("\n" + lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("Reading file..."))
	}

	card := lipgloss.NewStyle().
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *UploadScreen) renderField(id int, label, input string) string {
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if id == s.focus {
		style = style.Foreground(theme.Primary).Bold(true)
	}
	return style.Render(label) + "\n" + input + "\n\n"
}
