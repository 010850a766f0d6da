package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/prepnova/prepnova/internal/ui/theme"
)

// Slider is a horizontal discrete value picker, used for the 1-5 rating
// scales and the 0-100 progress percentage in the feedback form.
type Slider struct {
	Label   string
	Min     int
	Max     int
	Step    int
	Value   int
	Focused bool
}

// NewSlider creates a slider spanning [min, max] starting at value.
func NewSlider(label string, min, max, step, value int) Slider {
	return Slider{
		Label: label,
		Min:   min,
		Max:   max,
		Step:  step,
		Value: value,
	}
}

// Update handles left/right adjustment while focused.
func (s Slider) Update(msg tea.Msg) (Slider, tea.Cmd) {
	if !s.Focused {
		return s, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		s.Value -= s.Step
		if s.Value < s.Min {
			s.Value = s.Min
		}
	case "right", "l":
		s.Value += s.Step
		if s.Value > s.Max {
			s.Value = s.Max
		}
	}
	return s, nil
}

// View renders the slider as a segmented track with the value on the right.
func (s Slider) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if s.Focused {
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
	}

	steps := (s.Max - s.Min) / s.Step
	if steps < 1 {
		steps = 1
	}
	pos := (s.Value - s.Min) / s.Step

	var track strings.Builder
	for i := 0; i <= steps; i++ {
		if i == pos {
			track.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("●"))
		} else {
			track.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("─"))
		}
	}

	value := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Render(fmt.Sprintf(" %d", s.Value))

	return labelStyle.Render(s.Label) + "  " + track.String() + value
}
