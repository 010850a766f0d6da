package plan

import (
	"sort"
	"time"

	"github.com/prepnova/prepnova/internal/schedule"
)

// ExamGroup collects one exam's sessions for display.
type ExamGroup struct {
	ExamName string
	ExamDate string
	Sessions []StudySession
}

// GroupByExam buckets sessions per exam, preserving first-appearance order
// of exams, and sorts each bucket chronologically using the same
// normalization that calendar placement uses.
func GroupByExam(sessions []StudySession, now time.Time) []ExamGroup {
	var order []string
	byExam := make(map[string]*ExamGroup)

	for _, s := range sessions {
		g, ok := byExam[s.ExamName]
		if !ok {
			g = &ExamGroup{ExamName: s.ExamName, ExamDate: s.ExamDate}
			byExam[s.ExamName] = g
			order = append(order, s.ExamName)
		}
		g.Sessions = append(g.Sessions, s)
	}

	groups := make([]ExamGroup, 0, len(order))
	for _, name := range order {
		g := byExam[name]
		sort.SliceStable(g.Sessions, func(i, j int) bool {
			a := schedule.Start(g.Sessions[i].SessionDate, g.Sessions[i].SessionTime, now)
			b := schedule.Start(g.Sessions[j].SessionDate, g.Sessions[j].SessionTime, now)
			return a.Before(b)
		})
		groups = append(groups, *g)
	}
	return groups
}
