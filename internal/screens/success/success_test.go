package success

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/prepnova/prepnova/internal/plan"
	"github.com/prepnova/prepnova/internal/planstore"
	"github.com/prepnova/prepnova/internal/router"
	"github.com/prepnova/prepnova/internal/screen"
	"github.com/prepnova/prepnova/internal/screens"
)

type stubUpload struct{}

func (s *stubUpload) Init() tea.Cmd                           { return nil }
func (s *stubUpload) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubUpload) View(int, int) string                    { return "" }
func (s *stubUpload) Title() string                           { return "stub" }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testScreen() (*SuccessScreen, *planstore.Store) {
	store := planstore.New()
	store.Replace([]plan.StudySession{{SessionID: "s1", ExamName: "Biology Midterm"}})
	store.SetWarning("old warning")

	deps := &screens.Deps{
		Store:     store,
		Now:       time.Now,
		NewUpload: func(string) screen.Screen { return &stubUpload{} },
	}
	return New(deps, 8, 2), store
}

func TestSuccessScreen_View(t *testing.T) {
	s, _ := testScreen()

	view := s.View(80, 24)
	if !strings.Contains(view, "8 study sessions") || !strings.Contains(view, "2 exam(s)") {
		t.Errorf("view missing the plan summary:\n%s", view)
	}
}

func TestSuccessScreen_NewPlanResets(t *testing.T) {
	s, store := testScreen()

	_, cmd := s.Update(keyPress('n'))
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("got %T, want router.ReplaceScreenMsg", cmd())
	}
	if _, ok := msg.Screen.(*stubUpload); !ok {
		t.Errorf("replaced with %T, want the upload screen", msg.Screen)
	}

	if store.Len() != 0 {
		t.Error("expected the plan to be discarded")
	}
	if store.Warning() != "" {
		t.Error("expected the warning to be cleared")
	}
}

func TestSuccessScreen_Quit(t *testing.T) {
	s, _ := testScreen()

	_, cmd := s.Update(keyPress('q'))
	if cmd == nil {
		t.Fatal("expected the quit command")
	}
}
