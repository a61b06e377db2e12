package archivegen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ErrDuplicatePath is returned when two generated files resolve to the
// same location on disk.
var ErrDuplicatePath = errors.New("duplicate output path")

// File is one generated output file. Path is slash-separated and relative
// to the destination root; a leading slash is allowed.
type File struct {
	Path string
	Data []byte
}

// Writer writes generated files under a destination directory.
type Writer struct {
	Dest        string
	Concurrency int
}

// NewWriter creates a Writer targeting dest, creating the directory if needed.
func NewWriter(dest string, concurrency int) (*Writer, error) {
	if dest == "" {
		return nil, fmt.Errorf("archivegen: empty destination")
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, fmt.Errorf("creating destination %s: %w", dest, err)
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Writer{Dest: dest, Concurrency: concurrency}, nil
}

// Resolve maps a file path to its location on disk. It rejects paths that
// would land outside the destination.
func (w *Writer) Resolve(rel string) (string, error) {
	full := filepath.Join(w.Dest, filepath.FromSlash(strings.TrimPrefix(rel, "/")))
	r, err := filepath.Rel(w.Dest, full)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archivegen: %q escapes destination", rel)
	}
	return full, nil
}

// WriteAll writes files concurrently and returns the first error. Paths are
// checked up front, so nothing is written when one escapes the destination
// or two files share a path.
func (w *Writer) WriteAll(ctx context.Context, files []File) error {
	seen := make(map[string]string, len(files))
	for _, f := range files {
		full, err := w.Resolve(f.Path)
		if err != nil {
			return err
		}
		if prev, ok := seen[full]; ok {
			return fmt.Errorf("archivegen: %w: %q and %q", ErrDuplicatePath, prev, f.Path)
		}
		seen[full] = f.Path
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.Concurrency)
	for _, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return w.write(f)
		})
	}
	return g.Wait()
}

func (w *Writer) write(f File) error {
	full, err := w.Resolve(f.Path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(full, f.Data, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", full, err)
	}
	return nil
}
