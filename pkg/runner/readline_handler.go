package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/turtle/pkg/domain"
	"github.com/chzyer/readline"
)

// ReadlineHandler is an interactive IOHandler with history and tab completion.
type ReadlineHandler struct {
	rl    *readline.Instance
	Style func(string) string
}

// NewReadlineHandler opens a readline session on the process terminal.
func NewReadlineHandler(prompt string) (*ReadlineHandler, error) {
	return NewReadlineHandlerWithConfig(&readline.Config{Prompt: prompt})
}

// NewReadlineHandlerWithConfig opens a readline session with cfg.
// Completion and the interrupt/EOF prompts are filled in when unset.
func NewReadlineHandlerWithConfig(cfg *readline.Config) (*ReadlineHandler, error) {
	if cfg.AutoComplete == nil {
		cfg.AutoComplete = NewCompleter()
	}
	if cfg.InterruptPrompt == "" {
		cfg.InterruptPrompt = "^C"
	}
	if cfg.EOFPrompt == "" {
		cfg.EOFPrompt = "exit"
	}
	cfg.HistorySearchFold = true

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %w", err)
	}
	return &ReadlineHandler{rl: rl}, nil
}

// NewCompleter completes the verbs, the four facings after PLACE, and exit/quit.
func NewCompleter() *readline.PrefixCompleter {
	facings := make([]readline.PrefixCompleterInterface, 0, len(domain.Facings))
	for _, f := range domain.Facings {
		facings = append(facings, readline.PcItem("0,0,"+f.String()))
	}

	items := []readline.PrefixCompleterInterface{
		readline.PcItem(string(domain.ActionPlace), facings...),
	}
	for _, a := range domain.Actions {
		if a == domain.ActionPlace || a == domain.ActionUnknown {
			continue
		}
		items = append(items, readline.PcItem(string(a)))
	}
	items = append(items, readline.PcItem("exit"), readline.PcItem("quit"))
	return readline.NewPrefixCompleter(items...)
}

// NextLine implements ports.InputSource. Ctrl+C on an empty line ends the session.
func (h *ReadlineHandler) NextLine(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		line, err := h.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return "", io.EOF
			}
			continue
		}
		if err != nil {
			return "", err
		}

		clean, err := SanitizeInput(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintf(h.rl.Stderr(), "Error: %v. Please try again.\n", err)
			continue
		}
		return clean, nil
	}
}

// Write implements ports.OutputSink.
func (h *ReadlineHandler) Write(_ context.Context, text string) error {
	if h.Style != nil {
		text = h.Style(text)
	}
	_, err := fmt.Fprintln(h.rl.Stdout(), text)
	return err
}

// SystemOutput prints a meta-message.
func (h *ReadlineHandler) SystemOutput(_ context.Context, msg string) error {
	_, err := fmt.Fprintln(h.rl.Stdout(), strings.TrimRight(msg, "\n"))
	return err
}

// Close restores the terminal.
func (h *ReadlineHandler) Close() error {
	return h.rl.Close()
}
