package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prepnova/prepnova/internal/llm"
)

// LoadSyllabus reads a syllabus document from disk and wraps it for the
// provider upload.
func LoadSyllabus(path string) (llm.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return llm.File{}, fmt.Errorf("could not read syllabus: %w", err)
	}
	return llm.File{
		Name:     filepath.Base(path),
		MIMEType: DetectMIME(path),
		Data:     data,
	}, nil
}

// DetectMIME maps a syllabus filename to the upload content type.
// Unknown extensions are sent as plain text, which keeps exported
// course pages and ad-hoc notes usable.
func DetectMIME(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "text/plain"
	}
}
