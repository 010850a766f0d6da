package adjust

import "github.com/prepnova/prepnova/internal/llm"

// AdjustmentSchema defines the JSON schema for feedback-driven plan
// adjustment: replacement sessions plus a human-readable change summary.
var AdjustmentSchema = &llm.Schema{
	Name:        "plan-adjustment",
	Description: "Updated study sessions for one exam with a summary of changes",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"updatedSessions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"sessionTitle": map[string]any{
							"type": "string",
						},
						"sessionDate": map[string]any{
							"type":        "string",
							"description": "Format: YYYY-MM-DD",
						},
						"sessionTime": map[string]any{
							"type":        "string",
							"description": "Format: 'h:mm AM/PM', e.g. '5:30 PM'",
						},
						"duration": map[string]any{
							"type":        "integer",
							"description": "In minutes",
						},
						"topics": map[string]any{
							"type": "string",
						},
						"extraTask": map[string]any{
							"type": "string",
						},
					},
					"required": []any{
						"sessionTitle", "sessionDate", "sessionTime",
						"duration", "topics", "extraTask",
					},
					"additionalProperties": false,
				},
			},
			"summaryOfChanges": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Bullet points describing what changed and why",
			},
			"encouragement": map[string]any{
				"type":        "string",
				"description": "A short encouraging message for the student",
			},
		},
		"required":             []any{"updatedSessions", "summaryOfChanges", "encouragement"},
		"additionalProperties": false,
	},
}
