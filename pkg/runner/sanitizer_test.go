package runner

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitizeInput_SizeLimit(t *testing.T) {
	limit := DefaultMaxInputSize

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeInput(strings.Repeat("M", tt.inputSize))
			if tt.wantErr != (err != nil) {
				t.Errorf("SanitizeInput(size=%d) error = %v, wantErr %v", tt.inputSize, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInputTooLarge) {
				t.Errorf("expected ErrInputTooLarge, got %v", err)
			}
		})
	}
}

func TestSanitizeInput_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain Command", "PLACE 0,0,NORTH", "PLACE 0,0,NORTH"},
		{"Safe Controls", "MOVE\r\n\tREPORT", "MOVE\r\n\tREPORT"},
		{"ANSI Code", "\x1b[31mMOVE\x1b[0m", "[31mMOVE[0m"},
		{"Null Byte", "RE\x00PORT", "REPORT"},
		{"Bell", "LEFT\x07", "LEFT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input)
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSanitizeInput_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "10")

	if _, err := SanitizeInput("PLACE 0,0,NORTH"); err == nil {
		t.Error("Expected error for input > 10 when env var is set")
	}
	if _, err := SanitizeInput("MOVE"); err != nil {
		t.Errorf("Unexpected error for valid input: %v", err)
	}
}

func TestSanitizeInput_InvalidUTF8(t *testing.T) {
	_, err := SanitizeInput("MOVE \xbd\xb2")
	if err != ErrInvalidUTF8 {
		t.Errorf("Expected ErrInvalidUTF8, got %v", err)
	}
}
