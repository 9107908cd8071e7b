package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-sim/internal/core"
)

// tintStyles maps presentation tints to terminal colors.
var tintStyles = map[core.Tint]lipgloss.Style{
	core.TintDefault: lipgloss.NewStyle(),
	core.TintPlayer:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.TintAlly:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.TintEnemy:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.TintHazard:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.TintPickup:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.TintWall:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.TintMuted:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

const wallGlyph = '#'

// Rasterize draws a frame onto the canvas. The world bounds are stretched
// over every row above the HUD lines.
func Rasterize(c *Canvas, f core.Frame) {
	c.Clear()

	field := c.Height() - len(f.HUD)
	if field > 0 && f.Bounds.W > 0 && f.Bounds.H > 0 {
		b := f.Bounds
		sx := float64(c.Width()) / b.W
		sy := float64(field) / b.H

		for _, w := range f.Walls {
			x0 := int(math.Floor((w.X - b.X) * sx))
			y0 := int(math.Floor((w.Y - b.Y) * sy))
			x1 := int(math.Ceil((w.Right() - b.X) * sx))
			y1 := int(math.Ceil((w.Bottom() - b.Y) * sy))
			c.Fill(x0, y0, x1, min(y1, field), wallGlyph, core.TintWall)
		}
		for _, s := range f.Sprites {
			x := int((s.Pos.X - b.X) * sx)
			y := int((s.Pos.Y - b.Y) * sy)
			if y >= field {
				continue
			}
			c.Set(x, y, s.Glyph, s.Tint)
		}
	}

	for i, line := range f.HUD {
		c.DrawText(0, max(field, 0)+i, line, core.TintDefault)
	}
}

// RenderCanvas converts the canvas to a styled string for display.
// Adjacent cells with the same tint share one escape sequence.
func RenderCanvas(c *Canvas) string {
	var sb strings.Builder
	sb.Grow(c.Width()*c.Height()*2 + c.Height())

	for y := range c.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < c.Width() {
			tint := c.Get(x, y).Tint

			var run strings.Builder
			for x < c.Width() {
				cell := c.Get(x, y)
				if cell.Tint != tint {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := tintStyles[tint]
			if !ok {
				style = tintStyles[core.TintDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
