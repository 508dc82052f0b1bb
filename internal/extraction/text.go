package extraction

import (
	"context"
	"fmt"
	"io"
	"strings"
)

type TextParser struct{}

func NewTextParser() *TextParser {
	return &TextParser{}
}

func (p *TextParser) Parse(ctx context.Context, reader io.Reader) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return "", fmt.Errorf("no text content found")
	}

	return content, nil
}

func (p *TextParser) SupportedTypes() []string {
	return []string{"text/plain", ".txt", ".md"}
}
