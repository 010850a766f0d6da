// Package adjust reshapes the upcoming sessions of one exam in response
// to student feedback.
package adjust

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/prepnova/prepnova/internal/llm"
	"github.com/prepnova/prepnova/internal/plan"
	"github.com/prepnova/prepnova/internal/schedule"
)

// Config holds adjustment generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for plan adjustment.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.4,
	}
}

// Input is everything the adjuster needs for one feedback round.
type Input struct {
	ExamName string
	ExamDate string
	Feedback plan.FeedbackInput
	// Upcoming is the subset of the plan being rewritten: future sessions
	// of this exam only.
	Upcoming []plan.StudySession
	// Now anchors the exam-date sanity check on returned sessions.
	Now time.Time
}

// Service runs feedback-driven plan adjustments.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates an adjustment service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Adjust asks the model for replacement sessions and returns the parsed
// adjustment. Sessions the model schedules on or after the exam date are
// dropped with a diagnostic; the rest of the plan is trusted as-is.
func (s *Service) Adjust(ctx context.Context, input Input) (*plan.Adjustment, error) {
	ctx = llm.WithPurpose(ctx, "plan-adjustment")

	req := llm.Request{
		System: adjustSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildAdjustUserMessage(input)},
		},
		Schema:      AdjustmentSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("plan adjustment: %w", err)
	}

	var adj plan.Adjustment
	if err := json.Unmarshal(resp.Content, &adj); err != nil {
		return nil, fmt.Errorf("parse adjustment response: %w", err)
	}

	adj.UpdatedSessions = dropSessionsPastExam(adj.UpdatedSessions, input.ExamDate, input.Now)

	return &adj, nil
}

// dropSessionsPastExam filters out sessions dated on or after the exam.
// The prompt forbids them but the model occasionally produces them
// anyway, and a study session after the exam is useless.
func dropSessionsPastExam(sessions []plan.AdjustedSession, examDate string, now time.Time) []plan.AdjustedSession {
	ey, em, ed := schedule.ParseDate(examDate, now)
	examDay := time.Date(ey, em, ed, 0, 0, 0, 0, time.Local)
	kept := sessions[:0]
	for _, sess := range sessions {
		sy, sm, sd := schedule.ParseDate(sess.SessionDate, now)
		day := time.Date(sy, sm, sd, 0, 0, 0, 0, time.Local)
		if !day.Before(examDay) {
			fmt.Fprintf(os.Stderr, "warning: dropping adjusted session %q dated %s, on or after exam date %s\n",
				sess.SessionTitle, sess.SessionDate, examDate)
			continue
		}
		kept = append(kept, sess)
	}
	return kept
}
