// Package corpus turns raw books into the cleaned training text the n-gram
// models are built from.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cognicore/speller/pkg/speller/internalerr"
)

// Source describes one raw book and the span of it that is kept.
type Source struct {
	File string `yaml:"file"`
	// StartMarker is a case-insensitive regular expression. The body starts
	// at its second match, the first usually being the table of contents.
	StartMarker string `yaml:"start_marker"`
	// EndMarker is a literal string. The body ends at its first occurrence.
	EndMarker string `yaml:"end_marker"`
	// Cache names the cleaned copy inside the processed directory.
	Cache string `yaml:"cache"`
}

// Builder reads, cleans, caches and merges the configured sources.
type Builder struct {
	RawDir       string
	ProcessedDir string
	MergedFile   string
	Sources      []Source

	// Logf receives progress and warnings. Nil discards them.
	Logf func(format string, args ...any)
}

func (b *Builder) logf(format string, args ...any) {
	if b.Logf != nil {
		b.Logf(format, args...)
	}
}

// Build returns the merged corpus: the cleaned body of every usable source
// joined with newlines. Sources whose file is missing or whose markers are
// absent are skipped with a warning. The merged text is also written to
// MergedFile inside ProcessedDir when that is set.
func (b *Builder) Build(ctx context.Context) (string, error) {
	if err := os.MkdirAll(b.ProcessedDir, 0o755); err != nil {
		return "", err
	}

	var parts []string
	for _, src := range b.Sources {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		body, err := b.Source(src)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			b.logf("corpus: %s not found in %s, skipping", src.File, b.RawDir)
			continue
		case errors.Is(err, internalerr.ErrMarkerNotFound):
			b.logf("corpus: %s: %v, skipping", src.File, err)
			continue
		case err != nil:
			return "", fmt.Errorf("corpus %s: %w", src.File, err)
		}
		parts = append(parts, body)
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no usable corpus source: %w", internalerr.ErrEmptyCorpus)
	}

	merged := strings.Join(parts, "\n")
	if b.MergedFile != "" {
		path := filepath.Join(b.ProcessedDir, b.MergedFile)
		if err := os.WriteFile(path, []byte(merged), 0o644); err != nil {
			return "", err
		}
		b.logf("corpus: merged corpus saved at %s", path)
	}
	return merged, nil
}

// Source returns the cleaned body of src. A non-empty cache file is reused
// as is; otherwise the raw book is processed and the cache written.
func (b *Builder) Source(src Source) (string, error) {
	cachePath := ""
	if src.Cache != "" {
		cachePath = filepath.Join(b.ProcessedDir, src.Cache)
		if data, err := os.ReadFile(cachePath); err == nil && len(data) > 0 {
			b.logf("corpus: using cached file %s", cachePath)
			return string(data), nil
		}
	}

	raw, err := ReadSource(filepath.Join(b.RawDir, src.File))
	if err != nil {
		return "", err
	}
	body, err := Extract(raw, src.StartMarker, src.EndMarker)
	if err != nil {
		return "", err
	}
	cleaned := Clean(body)

	if cachePath != "" {
		if err := os.WriteFile(cachePath, []byte(cleaned), 0o644); err != nil {
			return "", err
		}
	}
	return cleaned, nil
}

// Extract returns the trimmed text from the second match of startMarker up
// to the first occurrence of endMarker.
func Extract(text, startMarker, endMarker string) (string, error) {
	re, err := regexp.Compile("(?i)" + startMarker)
	if err != nil {
		return "", fmt.Errorf("start marker %q: %w", startMarker, internalerr.ErrInvalidConfig)
	}
	starts := re.FindAllStringIndex(text, 2)
	if len(starts) < 2 {
		return "", fmt.Errorf("second occurrence of start marker %q: %w", startMarker, internalerr.ErrMarkerNotFound)
	}
	end := strings.Index(text, endMarker)
	if endMarker == "" || end < 0 {
		return "", fmt.Errorf("end marker %q: %w", endMarker, internalerr.ErrMarkerNotFound)
	}
	start := starts[1][0]
	if end < start {
		return "", fmt.Errorf("end marker %q before start marker: %w", endMarker, internalerr.ErrMarkerNotFound)
	}
	return strings.TrimSpace(text[start:end]), nil
}

var (
	editorNote = regexp.MustCompile(`\s*--\s*ED\s*\.\s*`)
	spaces     = regexp.MustCompile(`\s+`)
)

// Clean drops "-- ED." editor notes, turns hyphens into spaces and collapses
// whitespace.
func Clean(text string) string {
	text = editorNote.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "-", " ")
	return strings.TrimSpace(spaces.ReplaceAllString(text, " "))
}
