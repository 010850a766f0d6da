package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/prepnova/prepnova/internal/llm"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM provider configuration",
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Send a test request to the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		provider, cfg, err := llm.NewProviderFromEnv(ctx, nil)
		if err != nil {
			return fmt.Errorf("no usable provider found; set PREPNOVA_GEMINI_API_KEY or GEMINI_API_KEY: %w", err)
		}

		fmt.Printf("Provider:  %s\n", cfg.Provider)
		fmt.Printf("Model:     %s\n", provider.ModelID())
		fmt.Printf("Timeout:   %s\n", cfg.Timeout)

		start := time.Now()
		resp, err := provider.Generate(ctx, llm.Request{
			Messages: []llm.Message{
				{Role: llm.RoleUser, Content: `Reply with exactly this JSON: {"ok": true}`},
			},
			Schema: &llm.Schema{
				Name:        "health-check",
				Description: "Connectivity probe response",
				Definition: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"ok": map[string]any{"type": "boolean"},
					},
					"required":             []string{"ok"},
					"additionalProperties": false,
				},
			},
			MaxTokens: 64,
		})
		if err != nil {
			return fmt.Errorf("test request failed: %w", err)
		}

		fmt.Printf("Latency:   %s\n", time.Since(start).Round(time.Millisecond))
		fmt.Printf("Tokens:    %d in / %d out\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
		fmt.Println("OK")

		if cfg.Provider != "gemini" {
			fmt.Println()
			fmt.Println("Note: only the gemini provider accepts syllabus file uploads.")
			fmt.Println("Other providers will refuse the analyze step.")
		}
		return nil
	},
}

var llmModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List known models and their pricing",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("%-32s  %12s  %12s\n", "Model", "In $/MTok", "Out $/MTok")
		fmt.Println(strings.Repeat("─", 60))
		for _, id := range llm.KnownModels() {
			c := llm.LookupCost(id)
			fmt.Printf("%-32s  %12.2f  %12.2f\n", id, c.InputPerMTok, c.OutputPerMTok)
		}
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmCheckCmd)
	llmCmd.AddCommand(llmModelsCmd)
}
