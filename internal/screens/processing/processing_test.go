package processing

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/prepnova/prepnova/internal/llm"
	"github.com/prepnova/prepnova/internal/planner"
	"github.com/prepnova/prepnova/internal/planstore"
	"github.com/prepnova/prepnova/internal/router"
	"github.com/prepnova/prepnova/internal/screen"
	"github.com/prepnova/prepnova/internal/screens"
	"github.com/prepnova/prepnova/internal/screens/results"
	"github.com/prepnova/prepnova/internal/ui/layout"

	tea "charm.land/bubbletea/v2"
)

const planJSON = `[
	{"examName": "Biology Midterm", "examDate": "2026-05-10", "sessionTitle": "Cells",
	 "sessionDate": "2026-04-02", "sessionTime": "6:00 PM", "duration": 60,
	 "topics": "cell structure", "extraTask": ""}
]`

// stubUpload stands in for the upload screen so the test can see the
// error text the processing step routes back with.
type stubUpload struct {
	errMsg string
}

func (s *stubUpload) Init() tea.Cmd                           { return nil }
func (s *stubUpload) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubUpload) View(int, int) string                    { return "" }
func (s *stubUpload) Title() string                           { return "stub" }
func (s *stubUpload) KeyHints() []layout.KeyHint              { return nil }

func testScreen(mock *llm.MockProvider) (*ProcessingScreen, *planstore.Store) {
	store := planstore.New()
	deps := &screens.Deps{
		Planner: planner.NewService(mock, planner.DefaultConfig()),
		Store:   store,
		Now:     func() time.Time { return time.Date(2026, 4, 1, 9, 0, 0, 0, time.Local) },
		NewUpload: func(errMsg string) screen.Screen {
			return &stubUpload{errMsg: errMsg}
		},
	}
	input := planner.AnalyzeInput{
		Syllabus:    llm.File{Name: "syllabus.txt", MIMEType: "text/plain", Data: []byte("exams")},
		Preferences: planner.Preferences{StudyTime: "6:00 PM", SessionMinutes: 60},
		Now:         deps.Now(),
	}
	return New(deps, input), store
}

func replaceTarget(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("got %T, want router.ReplaceScreenMsg", cmd())
	}
	return msg.Screen
}

func TestProcessingScreen_SuccessAdvancesToResults(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(planJSON)})
	s, store := testScreen(mock)

	msg := s.analyze()()
	_, cmd := s.Update(msg)

	target := replaceTarget(t, cmd)
	if _, ok := target.(*results.ResultsScreen); !ok {
		t.Errorf("advanced to %T, want *results.ResultsScreen", target)
	}
	if store.Len() != 1 {
		t.Errorf("store has %d sessions, want 1", store.Len())
	}
	if sessions := store.Sessions(); sessions[0].SessionID == "" {
		t.Error("expected a generated session id")
	}
}

func TestProcessingScreen_NoExamsRoutesBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`[]`)})
	s, store := testScreen(mock)

	msg := s.analyze()()
	_, cmd := s.Update(msg)

	target := replaceTarget(t, cmd)
	stub, ok := target.(*stubUpload)
	if !ok {
		t.Fatalf("advanced to %T, want the upload screen", target)
	}
	if stub.errMsg != noExamsMsg {
		t.Errorf("errMsg = %q, want the no-exams message", stub.errMsg)
	}
	if store.Len() != 0 {
		t.Error("store must stay empty for an empty plan")
	}
}

func TestProcessingScreen_AnalysisFailureRoutesBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	s, _ := testScreen(mock)

	msg := s.analyze()()
	_, cmd := s.Update(msg)

	target := replaceTarget(t, cmd)
	stub, ok := target.(*stubUpload)
	if !ok {
		t.Fatalf("advanced to %T, want the upload screen", target)
	}
	if !strings.Contains(stub.errMsg, "Failed to analyze the syllabus") {
		t.Errorf("errMsg = %q", stub.errMsg)
	}
}

func TestProcessingScreen_SpinnerAdvances(t *testing.T) {
	s, _ := testScreen(llm.NewMockProvider())

	_, cmd := s.Update(spinnerTickMsg(time.Now()))
	if s.frame != 1 {
		t.Errorf("frame = %d, want 1", s.frame)
	}
	if cmd == nil {
		t.Error("expected the next tick command")
	}
}
