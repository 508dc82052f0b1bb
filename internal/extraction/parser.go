package extraction

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Parser extracts plain text from one document format.
type Parser interface {
	Parse(ctx context.Context, reader io.Reader) (string, error)
	SupportedTypes() []string
}

// Registry routes a document to the right parser by MIME type, with a
// filename-extension fallback. It is the pipeline's text-extraction backend.
type Registry struct {
	parsers map[string]Parser
}

func NewRegistry() *Registry {
	registry := &Registry{
		parsers: make(map[string]Parser),
	}

	registry.Register(NewTextParser())
	registry.Register(NewPDFParser())
	registry.Register(NewDOCXParser())

	return registry
}

func (r *Registry) Register(parser Parser) {
	for _, contentType := range parser.SupportedTypes() {
		r.parsers[strings.ToLower(contentType)] = parser
	}
}

func (r *Registry) GetParser(mimeOrFilename string) (Parser, error) {
	contentType := strings.ToLower(mimeOrFilename)
	if parser, ok := r.parsers[contentType]; ok {
		return parser, nil
	}

	ext := strings.ToLower(filepath.Ext(mimeOrFilename))
	if parser, ok := r.parsers[ext]; ok {
		return parser, nil
	}

	return nil, fmt.Errorf("unsupported file type: %s", mimeOrFilename)
}

// ExtractText implements the pipeline's TextExtractor contract.
func (r *Registry) ExtractText(ctx context.Context, reader io.Reader, mimeType string) (string, error) {
	parser, err := r.GetParser(mimeType)
	if err != nil {
		return "", err
	}

	return parser.Parse(ctx, reader)
}

func (r *Registry) SupportedTypes() []string {
	var types []string
	seen := make(map[string]bool)

	for contentType := range r.parsers {
		if !seen[contentType] {
			types = append(types, contentType)
			seen[contentType] = true
		}
	}

	return types
}
