package runner

import (
	"strings"
	"testing"
)

func TestNewCompleter(t *testing.T) {
	completer := NewCompleter()

	candidates, offset := completer.Do([]rune("MO"), 2)
	if offset != 2 {
		t.Errorf("Expected offset 2, got %d", offset)
	}
	if len(candidates) != 1 || !strings.HasPrefix(string(candidates[0]), "VE") {
		t.Errorf("Expected MOVE completion, got %q", candidates)
	}

	candidates, _ = completer.Do([]rune("PLACE 0,0,W"), len("PLACE 0,0,W"))
	if len(candidates) != 1 || !strings.HasPrefix(string(candidates[0]), "EST") {
		t.Errorf("Expected WEST completion, got %q", candidates)
	}
}
