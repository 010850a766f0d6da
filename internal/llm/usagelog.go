package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// UsageRecord captures one LLM request for the session usage report.
type UsageRecord struct {
	Timestamp    time.Time
	Model        string
	Purpose      string
	LatencyMs    int64
	InputTokens  int
	OutputTokens int
	Success      bool
	ErrorMessage string
}

// UsageLog accumulates LLM usage for one run. It backs the summary
// printed when the program exits.
type UsageLog struct {
	mu      sync.Mutex
	records []UsageRecord
}

// NewUsageLog creates an empty usage log.
func NewUsageLog() *UsageLog {
	return &UsageLog{}
}

// Append records one request.
func (u *UsageLog) Append(rec UsageRecord) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.records = append(u.records, rec)
}

// Records returns a copy of all records.
func (u *UsageLog) Records() []UsageRecord {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]UsageRecord(nil), u.records...)
}

// Summary renders a human-readable usage report: per-purpose request
// counts, token totals and estimated cost. Returns the empty string when
// nothing was recorded.
func (u *UsageLog) Summary() string {
	records := u.Records()
	if len(records) == 0 {
		return ""
	}

	var in, out, failures int
	var cost float64
	costKnown := true
	byPurpose := map[string]int{}

	for _, r := range records {
		in += r.InputTokens
		out += r.OutputTokens
		byPurpose[r.Purpose]++
		if !r.Success {
			failures++
		}
		if c := LookupCost(r.Model); c != nil {
			cost += c.Cost(r.InputTokens, r.OutputTokens)
		} else {
			costKnown = false
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "LLM usage: %d requests", len(records))
	if failures > 0 {
		fmt.Fprintf(&b, " (%d failed)", failures)
	}
	fmt.Fprintf(&b, ", %d input + %d output tokens", in, out)
	if costKnown {
		fmt.Fprintf(&b, ", ~$%.4f", cost)
	}
	b.WriteString("\n")
	for purpose, n := range byPurpose {
		fmt.Fprintf(&b, "  %s: %d\n", purpose, n)
	}
	return b.String()
}

// LoggingProvider is a decorator that records every LLM request in a
// UsageLog.
type LoggingProvider struct {
	inner Provider
	log   *UsageLog
}

// WithLogging wraps a Provider with usage logging.
func WithLogging(p Provider, log *UsageLog) Provider {
	return &LoggingProvider{inner: p, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	rec := UsageRecord{
		Timestamp: start,
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.Model = resp.Model
	}

	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	l.log.Append(rec)

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
