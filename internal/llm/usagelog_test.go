package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestWithLogging_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`), Usage: Usage{InputTokens: 100, OutputTokens: 50}},
	)
	log := NewUsageLog()
	p := WithLogging(mock, log)

	ctx := WithPurpose(context.Background(), "syllabus-analysis")
	_, err := p.Generate(ctx, Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recs := log.Records()
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Purpose != "syllabus-analysis" {
		t.Fatalf("expected purpose 'syllabus-analysis', got %q", recs[0].Purpose)
	}
	if !recs[0].Success || recs[0].InputTokens != 100 {
		t.Fatalf("unexpected record: %+v", recs[0])
	}
}

func TestWithLogging_RecordsFailure(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	log := NewUsageLog()
	p := WithLogging(mock, log)

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}

	recs := log.Records()
	if len(recs) != 1 || recs[0].Success {
		t.Fatalf("expected 1 failed record, got %+v", recs)
	}
	if recs[0].ErrorMessage == "" {
		t.Fatal("expected error message in record")
	}
}

func TestUsageLog_Summary(t *testing.T) {
	log := NewUsageLog()
	if log.Summary() != "" {
		t.Fatal("empty log should produce empty summary")
	}

	log.Append(UsageRecord{Model: "gemini-2.5-flash", Purpose: "syllabus-analysis", InputTokens: 1000, OutputTokens: 500, Success: true})
	log.Append(UsageRecord{Model: "gemini-2.5-flash", Purpose: "plan-adjustment", InputTokens: 200, OutputTokens: 100, Success: true})

	s := log.Summary()
	if !strings.Contains(s, "2 requests") {
		t.Fatalf("summary missing request count: %q", s)
	}
	if !strings.Contains(s, "1200 input + 600 output tokens") {
		t.Fatalf("summary missing token totals: %q", s)
	}
	if !strings.Contains(s, "syllabus-analysis: 1") {
		t.Fatalf("summary missing per-purpose breakdown: %q", s)
	}
	if !strings.Contains(s, "$") {
		t.Fatalf("summary missing cost estimate for known model: %q", s)
	}
}
