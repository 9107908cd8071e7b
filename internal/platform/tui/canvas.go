package tui

import (
	"strings"

	"github.com/vovakirdan/arcade-sim/internal/core"
)

// Cell is one character of the terminal grid.
type Cell struct {
	Rune rune
	Tint core.Tint
}

// Canvas is a 2D character buffer the frame rasterizer draws into.
// It keeps simulations free of any terminal knowledge.
type Canvas struct {
	width  int
	height int
	cells  [][]Cell
}

// NewCanvas creates a blank canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		width:  max(width, 0),
		height: max(height, 0),
	}
	c.allocate()
	c.Clear()
	return c
}

func (c *Canvas) allocate() {
	c.cells = make([][]Cell, c.height)
	for y := range c.cells {
		c.cells[y] = make([]Cell, c.width)
	}
}

// Width returns the canvas width in characters.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in characters.
func (c *Canvas) Height() int {
	return c.height
}

// Resize changes the dimensions and blanks the canvas.
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == c.width && height == c.height {
		return
	}
	c.width = width
	c.height = height
	c.allocate()
	c.Clear()
}

// Clear fills the canvas with untinted spaces.
func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

// Set places a rune at the given cell.
// Out-of-bounds coordinates are silently ignored.
func (c *Canvas) Set(x, y int, r rune, tint core.Tint) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = Cell{Rune: r, Tint: tint}
}

// Get returns the cell at the given position, or a blank cell out of bounds.
func (c *Canvas) Get(x, y int) Cell {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Cell{Rune: ' '}
	}
	return c.cells[y][x]
}

// Fill sets every cell in [x0,x1) x [y0,y1).
func (c *Canvas) Fill(x0, y0, x1, y1 int, r rune, tint core.Tint) {
	for y := max(y0, 0); y < min(y1, c.height); y++ {
		for x := max(x0, 0); x < min(x1, c.width); x++ {
			c.cells[y][x] = Cell{Rune: r, Tint: tint}
		}
	}
}

// DrawText writes a string horizontally starting at (x, y), clipped at the edge.
func (c *Canvas) DrawText(x, y int, text string, tint core.Tint) {
	i := 0
	for _, r := range text {
		c.Set(x+i, y, r, tint)
		i++
	}
}

// String returns the plain characters, one line per row.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height + c.height)

	for y := 0; y < c.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < c.width; x++ {
			sb.WriteRune(c.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the plain characters of one row.
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.height {
		return strings.Repeat(" ", c.width)
	}
	var sb strings.Builder
	for _, cell := range c.cells[y] {
		sb.WriteRune(cell.Rune)
	}
	return sb.String()
}
