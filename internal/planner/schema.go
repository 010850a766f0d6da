package planner

import "github.com/prepnova/prepnova/internal/llm"

// StudyPlanSchema defines the JSON schema for syllabus analysis output:
// a flat array of study sessions, each tagged with its exam.
var StudyPlanSchema = &llm.Schema{
	Name:        "study-plan",
	Description: "A spaced-repetition study plan derived from a syllabus",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"examName": map[string]any{
					"type":        "string",
					"description": "Name of the exam this session prepares for",
				},
				"examDate": map[string]any{
					"type":        "string",
					"description": "Exam date in YYYY-MM-DD format",
				},
				"sessionTitle": map[string]any{
					"type":        "string",
					"description": "Short descriptive title for the study session",
				},
				"sessionDate": map[string]any{
					"type":        "string",
					"description": "Session date in YYYY-MM-DD format",
				},
				"sessionTime": map[string]any{
					"type":        "string",
					"description": "Session start time in 12-hour AM/PM format, e.g. '7:00 PM'",
				},
				"duration": map[string]any{
					"type":        "integer",
					"description": "Session length in minutes",
				},
				"topics": map[string]any{
					"type":        "string",
					"description": "Topics or chapters to focus on",
				},
				"extraTask": map[string]any{
					"type":        "string",
					"description": "Small optional extra task for proactive students",
				},
			},
			"required": []any{
				"examName", "examDate", "sessionTitle", "sessionDate",
				"sessionTime", "duration", "topics", "extraTask",
			},
			"additionalProperties": false,
		},
	},
}
