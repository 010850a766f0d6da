package planner

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prepnova/prepnova/internal/llm"
)

func testInput() AnalyzeInput {
	return AnalyzeInput{
		Syllabus: llm.File{
			Name:     "syllabus.pdf",
			MIMEType: "application/pdf",
			Data:     []byte("%PDF-1.4 fake"),
		},
		Preferences: Preferences{StudyTime: "7:00 PM", SessionMinutes: 60},
		Now:         time.Date(2025, 9, 1, 10, 0, 0, 0, time.Local),
	}
}

func TestAnalyze_AssignsSessionIDs(t *testing.T) {
	content := `[
		{"examName":"Midterm 1","examDate":"2025-10-10","sessionTitle":"Review limits","sessionDate":"2025-10-03","sessionTime":"7:00 PM","duration":60,"topics":"Limits, continuity","extraTask":"Make flashcards"},
		{"examName":"Midterm 1","examDate":"2025-10-10","sessionTitle":"Final review","sessionDate":"2025-10-09","sessionTime":"7:00 PM","duration":60,"topics":"All topics","extraTask":"Take a practice quiz"}
	]`
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(content)},
	)
	svc := NewService(mock, DefaultConfig())

	sessions, err := svc.Analyze(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].SessionID == "" || sessions[1].SessionID == "" {
		t.Fatal("expected session ids to be assigned")
	}
	if sessions[0].SessionID == sessions[1].SessionID {
		t.Fatal("session ids must be unique")
	}
	if sessions[0].ExamName != "Midterm 1" {
		t.Fatalf("unexpected exam name: %q", sessions[0].ExamName)
	}
}

func TestAnalyze_AttachesSyllabusFile(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`[]`)},
	)
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Analyze(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if len(req.Files) != 1 || req.Files[0].Name != "syllabus.pdf" {
		t.Fatalf("expected syllabus file attachment, got %+v", req.Files)
	}
	if req.Schema == nil || req.Schema.Name != "study-plan" {
		t.Fatal("expected study-plan schema on the request")
	}
}

func TestAnalyze_EmptyPlanIsNotAnError(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`[]`)},
	)
	svc := NewService(mock, DefaultConfig())

	sessions, err := svc.Analyze(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected empty plan, got %d sessions", len(sessions))
	}
}

func TestAnalyze_ProviderErrorWrapped(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Analyze(context.Background(), testInput())
	if err == nil {
		t.Fatal("expected error")
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected wrapped ErrProviderUnavailable, got: %v", err)
	}
}
