package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// DefaultPrompt is shown before each line on interactive terminals.
const DefaultPrompt = "> "

// TextHandler implements the standard line-based interface.
type TextHandler struct {
	Reader *bufio.Reader
	Writer io.Writer

	// Prompt is written before each read. Empty disables it.
	Prompt string
	// Style decorates report lines, e.g. with terminal colors.
	Style func(string) string

	mu        sync.Mutex
	inputChan chan inputResult
	startOnce sync.Once
	done      chan struct{}
	stopOnce  sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithPrompt overrides the prompt decision made from terminal detection.
func WithPrompt(prompt string) TextHandlerOption {
	return func(h *TextHandler) {
		h.Prompt = prompt
	}
}

// WithStyle decorates report lines.
func WithStyle(style func(string) string) TextHandlerOption {
	return func(h *TextHandler) {
		h.Style = style
	}
}

// NewTextHandler creates a handler for standard text IO.
// The prompt is enabled only when r is a terminal, so piped input and
// batch runs produce nothing but reports on w.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		done:   make(chan struct{}),
	}
	if IsTerminal(r) {
		h.Prompt = DefaultPrompt
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// IsTerminal reports whether v is a file attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

// pump reads in the background so NextLine can honor context cancellation.
// It exits at end of input or, after Close, with the next line it reads.
func (h *TextHandler) pump() {
	defer close(h.inputChan)
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" && !h.send(inputResult{text: text}) {
			return
		}
		if err != nil {
			if err != io.EOF {
				h.send(inputResult{err: err})
			}
			return
		}
	}
}

func (h *TextHandler) send(res inputResult) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.inputChan <- res:
		return true
	case <-h.done:
		return false
	}
}

// Close stops the background reader. NextLine calls it when its context ends.
func (h *TextHandler) Close() error {
	h.stopOnce.Do(func() {
		if h.done != nil {
			close(h.done)
		}
	})
	return nil
}

// NextLine implements ports.InputSource.
func (h *TextHandler) NextLine(ctx context.Context) (string, error) {
	h.initPump()

	for {
		select {
		case <-ctx.Done():
			h.Close()
			return "", ctx.Err()
		default:
			if h.Prompt != "" {
				h.print(h.Prompt)
			}
		}

		select {
		case <-ctx.Done():
			h.Close()
			return "", ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}

			clean, err := SanitizeInput(strings.TrimSpace(res.text))
			if err != nil {
				h.print(fmt.Sprintf("Error: %v. Please try again.\n", err))
				continue
			}
			return clean, nil
		}
	}
}

// Write implements ports.OutputSink: one report per line.
func (h *TextHandler) Write(_ context.Context, text string) error {
	if h.Style != nil {
		text = h.Style(text)
	}
	_, err := h.print(text + "\n")
	return err
}

// SystemOutput prints a meta-message as is.
func (h *TextHandler) SystemOutput(_ context.Context, msg string) error {
	_, err := h.print(strings.TrimRight(msg, "\n") + "\n")
	return err
}

func (h *TextHandler) print(s string) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return io.WriteString(h.Writer, s)
}
