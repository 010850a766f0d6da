package results

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/prepnova/prepnova/internal/plan"
	"github.com/prepnova/prepnova/internal/ui/components"
	"github.com/prepnova/prepnova/internal/ui/theme"
)

func (s *ResultsScreen) View(width, height int) string {
	groups := s.groups()
	if len(groups) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  No plan loaded.")
	}

	var b strings.Builder
	b.WriteString("\n")

	if w := s.deps.Store.Warning(); w != "" {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Error).Render("! "+w) + "\n\n")
	}

	if adj := s.deps.Store.LastAdjustment(); adj != nil {
		b.WriteString(s.renderAdjustment(adj.Summary, adj.Encouragement, width))
	}

	if s.notice != "" {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if s.noticeBad {
			style = lipgloss.NewStyle().Foreground(theme.Error)
		}
		b.WriteString("  " + style.Render(s.notice) + "\n\n")
	}

	if s.addAllQueue != nil {
		total := len(s.addAllQueue)
		bar := components.NewProgressBar(
			fmt.Sprintf("Adding %d of %d...", s.addAllPos+1, total),
			float64(s.addAllPos)/float64(total),
			false,
			min(width-4, 60),
		)
		b.WriteString("  " + bar.View() + "\n\n")
	}

	idx := 0
	for _, g := range groups {
		b.WriteString(s.renderExamHeader(g.ExamName, g.ExamDate))
		for _, sess := range g.Sessions {
			b.WriteString(s.renderSessionLine(sess, idx == s.cursor))
			idx++
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (s *ResultsScreen) renderExamHeader(examName, examDate string) string {
	name := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(examName)
	date := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("exam on " + examDate)

	marker := ""
	switch s.examStatus[examName] {
	case statusAdded:
		marker = "  " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓ exam day on calendar")
	case statusPending:
		marker = "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render("adding exam day...")
	case statusFailed:
		marker = "  " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ exam day failed")
	}

	return "  " + name + "  " + date + marker + "\n"
}

func (s *ResultsScreen) renderSessionLine(sess plan.StudySession, selected bool) string {
	prefix := "    "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		prefix = "  ▸ "
		style = style.Foreground(theme.Primary).Bold(true)
	}

	line := fmt.Sprintf("%s  %s %s (%d min)", sess.SessionTitle, sess.SessionDate, sess.SessionTime, sess.Duration)

	var marker string
	switch s.sessionStatus[sess.SessionID] {
	case statusAdded:
		marker = "  " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	case statusPending:
		marker = "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render("…")
	case statusFailed:
		marker = "  " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}

	return prefix + style.Render(line) + marker + "\n"
}

func (s *ResultsScreen) renderAdjustment(summary []string, encouragement string, width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Render("Plan adjusted"))
	b.WriteString("\n")
	for _, line := range summary {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("• " + line))
		b.WriteString("\n")
	}
	if encouragement != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(encouragement))
		b.WriteString("\n")
	}

	card := lipgloss.NewStyle().
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2).
		Width(min(width-6, 76)).
		Render(strings.TrimRight(b.String(), "\n"))

	return "  " + strings.ReplaceAll(card, "\n", "\n  ") + "\n\n"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
