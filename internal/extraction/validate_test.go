package extraction

import (
	"strings"
	"testing"
)

func TestValidateExtractedText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"whitespace only", "   \n\t  ", false},
		{"below minimum length", "This lease is short.", false},
		{"normal lease text", "This commercial lease agreement is entered into between the landlord and the tenant for the premises.", true},
		{"exactly at threshold", strings.Repeat("a", 50), true},
		{"garbage scan output", strings.Repeat("~!@#$%^&*() ", 20), false},
		{"mixed but mostly symbols", "a b " + strings.Repeat("#### //// ;;;; ", 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateExtractedText(tt.text); got != tt.want {
				t.Errorf("ValidateExtractedText(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestGetTextStatistics(t *testing.T) {
	stats := GetTextStatistics("one two three\nfour five")
	if stats.WordCount != 5 {
		t.Errorf("WordCount = %d, want 5", stats.WordCount)
	}
	if stats.LineCount != 2 {
		t.Errorf("LineCount = %d, want 2", stats.LineCount)
	}
	if stats.CharacterCount != 23 {
		t.Errorf("CharacterCount = %d, want 23", stats.CharacterCount)
	}

	if got := GetTextStatistics(""); got != (TextStatistics{}) {
		t.Errorf("empty input stats = %+v, want zero value", got)
	}
}
