// Package app wires the services together and runs the wizard.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/prepnova/prepnova/internal/adjust"
	"github.com/prepnova/prepnova/internal/calendar"
	"github.com/prepnova/prepnova/internal/googleauth"
	"github.com/prepnova/prepnova/internal/llm"
	"github.com/prepnova/prepnova/internal/planner"
	"github.com/prepnova/prepnova/internal/planstore"
	"github.com/prepnova/prepnova/internal/router"
	"github.com/prepnova/prepnova/internal/screen"
	"github.com/prepnova/prepnova/internal/screens"
	"github.com/prepnova/prepnova/internal/screens/upload"
	"github.com/prepnova/prepnova/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   *screens.Deps
	width  int
	height int
}

// newAppModel creates the AppModel starting at the upload step.
func newAppModel(deps *screens.Deps) AppModel {
	return AppModel{
		router: router.New(deps.NewUpload("")),
		deps:   deps,
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Esc is left to the screens; the feedback form must be able to
		// refuse it mid-adjustment.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.deps.Account(), m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hinter, ok := active.(screen.KeyHintProvider); ok {
		if hints := hinter.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// BuildDeps constructs the shared service bundle from the environment.
func BuildDeps(ctx context.Context, usage *llm.UsageLog) (*screens.Deps, error) {
	provider, _, err := llm.NewProviderFromEnv(ctx, usage)
	if err != nil {
		return nil, fmt.Errorf("configure LLM provider: %w", err)
	}

	deps := &screens.Deps{
		Planner:  planner.NewService(provider, planner.DefaultConfig()),
		Adjuster: adjust.NewService(provider, adjust.DefaultConfig()),
		Store:    planstore.New(),
		OpenURL:  OpenBrowser,
	}
	deps.Now = time.Now
	deps.NewUpload = func(errMsg string) screen.Screen {
		return upload.New(deps, errMsg)
	}

	gcfg, err := googleauth.ConfigFromEnv()
	switch {
	case err == nil:
		deps.Auth = googleauth.NewState(gcfg)
	case errors.Is(err, googleauth.ErrNotConfigured):
		deps.AuthHint = err.Error()
	default:
		return nil, err
	}

	deps.Calendar = func(ctx context.Context) (*calendar.Reconciler, error) {
		if deps.Auth == nil {
			return nil, googleauth.ErrSignedOut
		}
		hc, err := deps.Auth.HTTPClient(ctx)
		if err != nil {
			return nil, err
		}
		return calendar.NewReconciler(calendar.NewClient(hc)), nil
	}

	return deps, nil
}

// Run starts the Bubble Tea program and prints the LLM usage summary on
// the way out.
func Run() error {
	usage := llm.NewUsageLog()

	deps, err := BuildDeps(context.Background(), usage)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}

	p := tea.NewProgram(newAppModel(deps))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}

	if summary := usage.Summary(); summary != "" {
		fmt.Fprintln(os.Stderr, summary)
	}
	return nil
}

// OpenBrowser launches the system browser. Failures are reported on
// stderr only; the sign-in page URL is printed so the user can open it
// by hand.
func OpenBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "could not open browser: %v\nvisit: %s\n", err, url)
	}
}
