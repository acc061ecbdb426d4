package tui

import (
	"fmt"

	"github.com/aretw0/turtle/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render, nil
}

// NewGridRenderer renders the grid view through glamour.
func NewGridRenderer() (func(domain.Bounds, domain.Position) (string, error), error) {
	render, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	return func(b domain.Bounds, p domain.Position) (string, error) {
		return render(GridMarkdown(b, p))
	}, nil
}
