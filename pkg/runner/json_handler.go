package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/turtle/pkg/domain"
)

// JSONReport is the object emitted for each report in JSON mode.
type JSONReport struct {
	X      int           `json:"x"`
	Y      int           `json:"y"`
	Facing domain.Facing `json:"facing"`
	Report string        `json:"report"`
}

// JSONSystem is the object emitted for meta-messages in JSON mode.
type JSONSystem struct {
	System string `json:"system"`
}

// JSONHandler implements the IOHandler interface for JSON-Lines communication.
// Input lines are either JSON strings ("MOVE") or raw text (MOVE).
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder

	mu sync.Mutex
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

// NextLine implements ports.InputSource.
func (h *JSONHandler) NextLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	text = strings.TrimSpace(text)

	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		text = val
	}
	return SanitizeInput(text)
}

// Write implements ports.OutputSink, encoding the report as a JSON object.
func (h *JSONHandler) Write(_ context.Context, text string) error {
	p, err := domain.ParsePosition(text)
	if err != nil {
		return fmt.Errorf("json handler: %w", err)
	}
	return h.encode(JSONReport{
		X:      p.Coordinate.X,
		Y:      p.Coordinate.Y,
		Facing: p.Facing,
		Report: text,
	})
}

// SystemOutput emits {"system": msg}.
func (h *JSONHandler) SystemOutput(_ context.Context, msg string) error {
	return h.encode(JSONSystem{System: msg})
}

func (h *JSONHandler) encode(v any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Encoder.Encode(v)
}
