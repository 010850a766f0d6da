package upload

import "github.com/prepnova/prepnova/internal/llm"

// syllabusReadMsg delivers the loaded syllabus file, or the read error.
type syllabusReadMsg struct {
	File llm.File
	Err  error
}
