package file

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/turtle/pkg/ports"
)

// ErrOutsideRoot is returned by a confined Loader for references that are
// absolute or climb out of its root.
var ErrOutsideRoot = errors.New("batch reference outside root")

// Loader implements ports.BatchLoader on the local filesystem.
// Relative references resolve against Root.
type Loader struct {
	Root string

	// Confined restricts references to local paths below Root, symlinks included.
	Confined bool
}

// NewLoader creates a loader rooted at dir ("" means the working directory).
// Absolute references are read as is.
func NewLoader(dir string) *Loader {
	return &Loader{Root: dir}
}

// NewConfinedLoader creates a loader that only reads files below dir.
func NewConfinedLoader(dir string) *Loader {
	return &Loader{Root: dir, Confined: true}
}

// Load reads ref and returns one entry per line, blank lines included,
// so that line numbers in parse errors match the file.
func (l *Loader) Load(ctx context.Context, ref string) ([]string, error) {
	f, err := l.open(ref)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ports.ErrBatchNotFound, ref)
		}
		if errors.Is(err, ErrOutsideRoot) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to open batch %s: %w", ref, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch %s: %w", ref, err)
	}
	return lines, nil
}

func (l *Loader) open(ref string) (*os.File, error) {
	if !l.Confined {
		path := ref
		if !filepath.IsAbs(path) && l.Root != "" {
			path = filepath.Join(l.Root, ref)
		}
		return os.Open(path)
	}

	if !filepath.IsLocal(ref) {
		return nil, fmt.Errorf("%w: %s", ErrOutsideRoot, ref)
	}
	dir := l.Root
	if dir == "" {
		dir = "."
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, err
	}
	defer root.Close()

	// os.Root also refuses symlinks that leave the root.
	return root.Open(ref)
}
