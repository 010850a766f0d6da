package cmd

import (
	"github.com/prepnova/prepnova/internal/app"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prepnova",
	Short: "AI study planner for exam season",
	Long:  "PrepNova — terminal app that turns a course syllabus into a spaced-repetition study plan and keeps it synced with Google Calendar.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}
