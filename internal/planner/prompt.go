package planner

import (
	"fmt"
	"strings"
)

const plannerSystemPrompt = `You are Prep Nova's Study Planner. Your role is to analyze the provided syllabus, identify all exams (including midterms, finals, tests, quizzes), and generate a personalized study plan using a scientifically-based spaced repetition schedule.`

func buildPlannerUserMessage(input AnalyzeInput) string {
	var b strings.Builder

	b.WriteString("User Preferences:\n")
	b.WriteString(fmt.Sprintf("- Preferred Study Time: %s\n", input.Preferences.StudyTime))
	b.WriteString(fmt.Sprintf("- Preferred Session Duration: %d minutes\n", input.Preferences.SessionMinutes))
	b.WriteString(fmt.Sprintf("- Today's Date: %s\n", input.Now.Format("2006-01-02")))

	b.WriteString(`
Input Analysis:
From the attached syllabus, extract each exam's name, date, and the topics it covers.

Study Plan Generation Rules:
For each exam identified, create a series of study sessions leading up to it.

1. Spaced Repetition Intervals: Schedule sessions at decreasing intervals as the exam approaches. From the exam date, schedule sessions backwards at approximately: 1 day before, 3 days before, 7 days before, 14 days before, and 28 days before, as time permits between today and the exam. If the time is short, adjust the schedule to be more frequent.
2. Topic Distribution: Distribute the exam topics across the study sessions. The earliest sessions should cover new topics. Subsequent sessions should review previously studied topics and introduce new ones. The session 1 day before the exam should be a final review of all topics.
3. Session Details:
   - sessionTitle: Create a clear title, like "Review for Midterm 1: Key Concepts" or "Final Exam Prep: Practice Problems".
   - sessionDate: The date of the study session in YYYY-MM-DD format.
   - sessionTime: Use the user's preferred study time. IMPORTANT: Format this time in a 12-hour AM/PM format (e.g., '7:00 PM'). Do not use 24-hour military time.
   - duration: Use the user's preferred session duration in minutes.
   - topics: List the specific topics or chapters to focus on for that session.
   - extraTask: Suggest a small, optional extra task for proactive students, like "Create flashcards for key terms" or "Find and complete one practice quiz online".
4. Date Assumption: Use the today's date given above as the start date for planning. For syllabus dates without a year, infer the year from the current academic calendar.

Output Constraints:
- You must only return a JSON array of study session objects.
- Do not include any introductory text, explanations, or summaries. Your entire response must be the JSON data.
- If no exams are found in the syllabus, return an empty array.`)

	return b.String()
}
