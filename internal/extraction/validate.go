package extraction

import (
	"strings"
	"unicode"
)

const (
	// Quality gate for extracted text.
	minTextLength = 50
	minAlnumRatio = 0.3
)

// ValidateExtractedText is the quality gate applied to OCR output before the
// pipeline accepts it: non-empty, a minimum trimmed length, and a minimum
// ratio of alphanumeric characters (garbage scans tend to fail the ratio).
func ValidateExtractedText(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	if len(trimmed) < minTextLength {
		return false
	}

	runes := []rune(text)
	alnum := 0
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			alnum++
		}
	}

	return float64(alnum)/float64(len(runes)) >= minAlnumRatio
}

// TextStatistics summarizes extracted text for logging.
type TextStatistics struct {
	CharacterCount int
	WordCount      int
	LineCount      int
}

func GetTextStatistics(text string) TextStatistics {
	if text == "" {
		return TextStatistics{}
	}
	return TextStatistics{
		CharacterCount: len(text),
		WordCount:      len(strings.Fields(text)),
		LineCount:      len(strings.Split(text, "\n")),
	}
}
