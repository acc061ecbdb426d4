package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/turtle/pkg/domain"
)

const emptyCell = "·"

var arrows = map[domain.Facing]string{
	domain.North: "▲",
	domain.East:  "▶",
	domain.South: "▼",
	domain.West:  "◀",
}

// Marker is the cell content for the turtle facing f.
func Marker(f domain.Facing) string {
	if a, ok := arrows[f]; ok {
		return a
	}
	return "●"
}

// GridMarkdown draws the grid as a markdown table, north at the top.
// Columns are X values and rows are Y values; the turtle is drawn when it is on the grid.
func GridMarkdown(b domain.Bounds, p domain.Position) string {
	var sb strings.Builder

	sb.WriteString("| y\\x |")
	for x := b.Min.X; x <= b.Max.X; x++ {
		fmt.Fprintf(&sb, " %d |", x)
	}
	sb.WriteString("\n|---|")
	for x := b.Min.X; x <= b.Max.X; x++ {
		sb.WriteString(":-:|")
	}
	sb.WriteString("\n")

	for y := b.Max.Y; y >= b.Min.Y; y-- {
		fmt.Fprintf(&sb, "| **%d** |", y)
		for x := b.Min.X; x <= b.Max.X; x++ {
			cell := emptyCell
			if p.Coordinate == (domain.Coordinate{X: x, Y: y}) {
				cell = Marker(p.Facing)
			}
			fmt.Fprintf(&sb, " %s |", cell)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
