package adjust

import (
	"encoding/json"
	"fmt"
	"strings"
)

const adjustSystemPrompt = `You are Prep Nova's adaptive study planner. Your task is to update a student's study plan based on their feedback.`

func buildAdjustUserMessage(input Input) string {
	var b strings.Builder

	b.WriteString(`Instructions:
- Modify the length, frequency, or topics of upcoming sessions based on the feedback and adjustment rules.
- Add or remove sessions when appropriate.
- Ensure all sessions occur before the exam date and do not overlap.
- Always maintain balanced pacing. Do not cluster sessions too close together.
- Rewrite at least the next 3 upcoming sessions to show the applied adjustments.

Adjustment Rules:
- If difficulty_level >= 4 or focus_level <= 2: shorten sessions by 15-25 minutes, increase total frequency, and add one catch-up or review session.
- If progress_pct < 70 or preparedness_level <= 2: add a new review session focused on the weakest topics mentioned in the notes.
- If difficulty_level <= 2 and preparedness_level >= 4: lengthen future sessions slightly or reduce total session count.

Context:
`)

	b.WriteString(fmt.Sprintf("- Exam: %s\n", input.ExamName))
	b.WriteString(fmt.Sprintf("- Exam Date: %s\n", input.ExamDate))
	b.WriteString(fmt.Sprintf("- Upcoming Sessions: %s\n", marshalIndented(input.Upcoming)))
	b.WriteString(fmt.Sprintf("- Student Feedback: %s\n", marshalIndented(input.Feedback)))

	b.WriteString(`
Your Task:
Generate an updated study schedule based on all the information and rules provided.

Output Format:
Return your results in the exact JSON structure specified in the schema. Do not include any explanations or extra text.`)

	return b.String()
}

func marshalIndented(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(out)
}
