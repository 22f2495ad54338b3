package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/frame/pkg/pipeline"
)

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for path, or stdout if path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// basePath derives the output path without extension for an input file.
// If dir is set, the file goes there instead of next to the input.
func basePath(input, dir string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if dir != "" {
		base = filepath.Join(dir, filepath.Base(base))
	}
	return base
}

// writeArtifacts writes each artifact to base plus the format extension,
// in the order of formats, and returns the written paths.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range slices.Compact(slices.Clone(formats)) {
		data, ok := artifacts[format]
		if !ok {
			return paths, fmt.Errorf("no %s artifact", format)
		}
		path := base + pipeline.Extension(format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
