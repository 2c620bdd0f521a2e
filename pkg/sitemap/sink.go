package sitemap

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Sink persists a rendered sitemap.
type Sink interface {
	Write(ctx context.Context, doc []byte) error
}

// NopSink discards the document, for targets without a writable filesystem.
type NopSink struct{}

// Write discards doc.
func (NopSink) Write(context.Context, []byte) error { return nil }

// FileSink overwrites a file with the whole document on every write.
type FileSink struct {
	Path string
}

// Write creates the parent directory if needed and replaces the file.
func (s FileSink) Write(_ context.Context, doc []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", s.Path, err)
	}
	if err := os.WriteFile(s.Path, doc, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	log.Printf("Sitemap written to %s (%d bytes)", s.Path, len(doc))
	return nil
}

// NewSink selects the sink named by SITEMAP_OUTPUT ("file" or "none").
func NewSink(output, path string) (Sink, error) {
	switch output {
	case "", "none":
		return NopSink{}, nil
	case "file":
		if path == "" {
			return nil, fmt.Errorf("SITEMAP_OUTPUT_PATH is required for file output")
		}
		return FileSink{Path: path}, nil
	default:
		return nil, fmt.Errorf("unknown sitemap output %q", output)
	}
}
