// Package planner turns an uploaded syllabus into a spaced-repetition
// study plan by way of a single structured LLM call.
package planner

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/prepnova/prepnova/internal/llm"
	"github.com/prepnova/prepnova/internal/plan"
)

// Service generates study plans from syllabus documents.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a plan generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Analyze extracts exams from the syllabus and returns a full study plan.
// An empty plan (no error) means the model found no exams in the
// document; callers surface that as a user-facing message, not a failure.
func (s *Service) Analyze(ctx context.Context, input AnalyzeInput) ([]plan.StudySession, error) {
	ctx = llm.WithPurpose(ctx, "syllabus-analysis")

	req := llm.Request{
		System: plannerSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPlannerUserMessage(input)},
		},
		Files:       []llm.File{input.Syllabus},
		Schema:      StudyPlanSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("syllabus analysis: %w", err)
	}

	var sessions []plan.StudySession
	if err := json.Unmarshal(resp.Content, &sessions); err != nil {
		return nil, fmt.Errorf("parse study plan response: %w", err)
	}

	// The model never produces ids; attach them here.
	for i := range sessions {
		sessions[i].SessionID = plan.NewSessionID()
	}

	return sessions, nil
}
