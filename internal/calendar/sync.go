package calendar

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prepnova/prepnova/internal/plan"
)

// Reconciler keeps the calendar in line with the current plan after an
// adjustment: old events for the exam are removed, replacements added.
// All of it is best effort; the plan itself is never blocked on the
// calendar.
type Reconciler struct {
	client *Client
}

// NewReconciler creates a reconciler on top of a calendar client.
func NewReconciler(client *Client) *Reconciler {
	return &Reconciler{client: client}
}

// ReplaceExamEvents deletes the upcoming events previously created for
// examName and creates one event per replacement session.
//
// Deletes run concurrently and all finish before any create starts, so a
// replacement event can never be swept up by the deletion pass. If the
// listing fails, deletion is skipped and creation proceeds anyway.
// ErrUnauthorized aborts immediately; any other failures are collected
// into a single summary error.
func (r *Reconciler) ReplaceExamEvents(ctx context.Context, examName string, replacements []plan.StudySession, now time.Time) error {
	var trouble []error

	ids, err := r.client.ListExamEventIDs(ctx, examName, now)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return err
		}
		trouble = append(trouble, err)
		ids = nil
	}

	if len(ids) > 0 {
		errs := r.forEach(ctx, len(ids), func(ctx context.Context, i int) error {
			return r.client.DeleteEvent(ctx, ids[i])
		})
		for _, err := range errs {
			if errors.Is(err, ErrUnauthorized) {
				return err
			}
			trouble = append(trouble, err)
		}
	}

	if len(replacements) > 0 {
		errs := r.forEach(ctx, len(replacements), func(ctx context.Context, i int) error {
			return r.client.CreateEvent(ctx, SessionEvent(replacements[i], now))
		})
		for _, err := range errs {
			if errors.Is(err, ErrUnauthorized) {
				return err
			}
			trouble = append(trouble, err)
		}
	}

	if len(trouble) > 0 {
		return fmt.Errorf("calendar partially updated (%d operations failed): %w", len(trouble), errors.Join(trouble...))
	}
	return nil
}

// forEach runs fn for each index concurrently and returns the non-nil
// errors.
func (r *Reconciler) forEach(ctx context.Context, n int, fn func(ctx context.Context, i int) error) []error {
	errCh := make(chan error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx, i); err != nil {
				errCh <- err
			}
		}()
	}
	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	return errs
}

// AddSession creates the timed calendar event for one study session.
func (r *Reconciler) AddSession(ctx context.Context, s plan.StudySession, now time.Time) error {
	return r.client.CreateEvent(ctx, SessionEvent(s, now))
}

// AddExamDay creates the all-day event for the exam itself.
func (r *Reconciler) AddExamDay(ctx context.Context, examName, examDate string, now time.Time) error {
	return r.client.CreateEvent(ctx, ExamEvent(examName, examDate, now))
}

// AddAll creates one event per session, in order, stopping at the first
// failure. The progress callback fires before each create with the
// 1-based position.
func (r *Reconciler) AddAll(ctx context.Context, sessions []plan.StudySession, now time.Time, progress func(done, total int)) error {
	total := len(sessions)
	for i, s := range sessions {
		if progress != nil {
			progress(i+1, total)
		}
		if err := r.AddSession(ctx, s, now); err != nil {
			return fmt.Errorf("session %d of %d: %w", i+1, total, err)
		}
	}
	return nil
}
