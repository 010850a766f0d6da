package plan

import (
	"time"

	"github.com/prepnova/prepnova/internal/schedule"
)

// Merge folds an adjustment's replacement sessions for one exam back into
// the full plan.
//
// Sessions of other exams are kept verbatim. Sessions of the adjusted exam
// whose normalized start is strictly before now are treated as already
// happened and also kept verbatim. Every remaining (future) session of that
// exam is discarded and replaced by the updated list, each entry getting a
// fresh id and the exam's name and date.
//
// The result is ordered: other exams, then past sessions, then new
// sessions. Display ordering is a separate chronological sort, so this
// order only matters for stable bookkeeping.
func Merge(current []StudySession, examName, examDate string, updated []AdjustedSession, now time.Time) []StudySession {
	merged := make([]StudySession, 0, len(current)+len(updated))

	for _, s := range current {
		if s.ExamName != examName {
			merged = append(merged, s)
		}
	}
	for _, s := range current {
		if s.ExamName == examName && schedule.Start(s.SessionDate, s.SessionTime, now).Before(now) {
			merged = append(merged, s)
		}
	}
	for _, u := range updated {
		merged = append(merged, StudySession{
			SessionID:    NewSessionID(),
			ExamName:     examName,
			ExamDate:     examDate,
			SessionTitle: u.SessionTitle,
			SessionDate:  u.SessionDate,
			SessionTime:  u.SessionTime,
			Duration:     u.Duration,
			Topics:       u.Topics,
			ExtraTask:    u.ExtraTask,
		})
	}

	return merged
}

// Upcoming returns the sessions of one exam that fall on today or a later
// day. The comparison is date-level (noon of the session date against the
// start of today) so a loose session time cannot exclude today's sessions.
func Upcoming(current []StudySession, examName string, now time.Time) []StudySession {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	var out []StudySession
	for _, s := range current {
		if s.ExamName != examName {
			continue
		}
		year, month, day := schedule.ParseDate(s.SessionDate, now)
		noon := time.Date(year, month, day, 12, 0, 0, 0, time.Local)
		if !noon.Before(startOfToday) {
			out = append(out, s)
		}
	}
	return out
}
