package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/turtle/pkg/ports"
)

// Loader implements ports.BatchLoader using an in-memory map of named batches.
type Loader struct {
	batches map[string][]string
}

// NewLoader creates a loader serving the given batches (ref -> lines).
func NewLoader(batches map[string][]string) *Loader {
	copied := make(map[string][]string, len(batches))
	for ref, lines := range batches {
		copied[ref] = append([]string(nil), lines...)
	}
	return &Loader{batches: copied}
}

// Load returns a copy of the lines stored under ref.
// References match exactly first, then case-insensitively.
func (l *Loader) Load(_ context.Context, ref string) ([]string, error) {
	lines, ok := l.batches[ref]
	if !ok {
		for name, candidate := range l.batches {
			if strings.EqualFold(name, ref) {
				lines, ok = candidate, true
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrBatchNotFound, ref)
	}
	return append([]string(nil), lines...), nil
}

// Refs lists the known references.
func (l *Loader) Refs() []string {
	refs := make([]string, 0, len(l.batches))
	for ref := range l.batches {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}
