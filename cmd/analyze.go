package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/prepnova/prepnova/internal/app"
	"github.com/prepnova/prepnova/internal/calendar"
	"github.com/prepnova/prepnova/internal/googleauth"
	"github.com/prepnova/prepnova/internal/llm"
	"github.com/prepnova/prepnova/internal/plan"
	"github.com/prepnova/prepnova/internal/planner"
	"github.com/spf13/cobra"
)

// analyzeCmd is the non-interactive path: one syllabus in, one plan out.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <syllabus-file>",
	Short: "Generate a study plan from a syllabus without the TUI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		studyTime, _ := cmd.Flags().GetString("study-time")
		minutes, _ := cmd.Flags().GetInt("minutes")
		asJSON, _ := cmd.Flags().GetBool("json")
		toCalendar, _ := cmd.Flags().GetBool("calendar")

		ctx := cmd.Context()
		usage := llm.NewUsageLog()

		provider, _, err := llm.NewProviderFromEnv(ctx, usage)
		if err != nil {
			return fmt.Errorf("configure LLM provider: %w", err)
		}

		file, err := planner.LoadSyllabus(args[0])
		if err != nil {
			return err
		}

		now := time.Now()
		svc := planner.NewService(provider, planner.DefaultConfig())
		sessions, err := svc.Analyze(ctx, planner.AnalyzeInput{
			Syllabus: file,
			Preferences: planner.Preferences{
				StudyTime:      studyTime,
				SessionMinutes: minutes,
			},
			Now: now,
		})
		if err != nil {
			return err
		}

		defer func() {
			if summary := usage.Summary(); summary != "" {
				fmt.Fprintln(os.Stderr, summary)
			}
		}()

		if len(sessions) == 0 {
			fmt.Println("Couldn't find any exams in the syllabus to build a study plan. Please try another file.")
			return nil
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(sessions); err != nil {
				return err
			}
		} else {
			printPlan(sessions, now)
		}

		if toCalendar {
			return syncToCalendar(ctx, sessions, now)
		}
		return nil
	},
}

func printPlan(sessions []plan.StudySession, now time.Time) {
	for _, g := range plan.GroupByExam(sessions, now) {
		fmt.Printf("%s (exam on %s)\n", g.ExamName, g.ExamDate)
		for _, s := range g.Sessions {
			fmt.Printf("  %s %s  %s (%d min)\n", s.SessionDate, s.SessionTime, s.SessionTitle, s.Duration)
			if s.Topics != "" {
				fmt.Printf("    topics: %s\n", s.Topics)
			}
		}
		fmt.Println()
	}
}

// syncToCalendar signs in interactively and adds every session, in
// order, stopping at the first failure.
func syncToCalendar(ctx context.Context, sessions []plan.StudySession, now time.Time) error {
	gcfg, err := googleauth.ConfigFromEnv()
	if err != nil {
		return err
	}
	auth := googleauth.NewState(gcfg)

	fmt.Println("Opening your browser for Google sign-in...")
	if _, err := auth.SignIn(ctx, app.OpenBrowser); err != nil {
		return fmt.Errorf("google sign-in: %w", err)
	}

	hc, err := auth.HTTPClient(ctx)
	if err != nil {
		return err
	}

	rec := calendar.NewReconciler(calendar.NewClient(hc))
	err = rec.AddAll(ctx, sessions, now, func(done, total int) {
		fmt.Printf("Adding %d of %d...\n", done, total)
	})
	if err != nil {
		return fmt.Errorf("calendar sync: %w", err)
	}
	fmt.Printf("Added %d events to Google Calendar.\n", len(sessions))
	return nil
}

func init() {
	analyzeCmd.Flags().String("study-time", "6:00 PM", "Preferred daily study time")
	analyzeCmd.Flags().Int("minutes", 60, "Preferred session length in minutes")
	analyzeCmd.Flags().Bool("json", false, "Print the plan as JSON")
	analyzeCmd.Flags().Bool("calendar", false, "Add every session to Google Calendar after planning")
}
