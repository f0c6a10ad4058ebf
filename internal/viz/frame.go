package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type cell struct {
	r    rune
	fg   lipgloss.Color
	bg   lipgloss.Color
	bold bool
	// cont marks the right half of a double-width rune.
	cont bool
}

// Frame is a grid of styled terminal cells. Layers are painted in order;
// later writes win.
type Frame struct {
	Width, Height int
	cells         [][]cell
}

func NewFrame(w, h int, bg lipgloss.Color) *Frame {
	f := &Frame{Width: w, Height: h, cells: make([][]cell, h)}
	for y := range f.cells {
		f.cells[y] = make([]cell, w)
		for x := range f.cells[y] {
			f.cells[y][x] = cell{r: ' ', bg: bg}
		}
	}
	return f
}

func (f *Frame) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.Width && y < f.Height
}

// Put writes a rune keeping the cell background. Double-width runes take two
// cells and are dropped if the second one falls off the frame.
func (f *Frame) Put(x, y int, r rune, fg lipgloss.Color) {
	f.put(x, y, r, fg, false)
}

func (f *Frame) put(x, y int, r rune, fg lipgloss.Color, bold bool) int {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return 0
	}
	if !f.in(x, y) || (w == 2 && !f.in(x+1, y)) {
		return w
	}
	f.clearWide(x, y)
	c := &f.cells[y][x]
	c.r, c.fg, c.bold, c.cont = r, fg, bold, false
	if w == 2 {
		f.clearWide(x+1, y)
		n := &f.cells[y][x+1]
		n.r, n.cont = 0, true
	}
	return w
}

// clearWide blanks the other half of a wide rune about to be overwritten.
func (f *Frame) clearWide(x, y int) {
	c := f.cells[y][x]
	if c.cont && x > 0 {
		f.cells[y][x-1].r = ' '
	} else if x+1 < f.Width && f.cells[y][x+1].cont {
		f.cells[y][x+1] = cell{r: ' ', bg: f.cells[y][x+1].bg}
	}
}

// PutString writes s starting at (x, y) and returns the number of cells used.
func (f *Frame) PutString(x, y int, s string, fg lipgloss.Color, bold bool) int {
	start := x
	for _, r := range s {
		x += f.put(x, y, r, fg, bold)
	}
	return x - start
}

// Tint sets the background of a cell.
func (f *Frame) Tint(x, y int, bg lipgloss.Color) {
	if f.in(x, y) {
		f.cells[y][x].bg = bg
	}
}

// Background returns the background colour of a cell.
func (f *Frame) Background(x, y int) lipgloss.Color {
	if !f.in(x, y) {
		return ""
	}
	return f.cells[y][x].bg
}

// Rune returns the rune at a cell, or 0 for the right half of a wide rune.
func (f *Frame) Rune(x, y int) rune {
	if !f.in(x, y) {
		return 0
	}
	return f.cells[y][x].r
}

// Fill paints a rectangle with a rune and background.
func (f *Frame) Fill(x, y, w, h int, r rune, fg, bg lipgloss.Color) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			if !f.in(xx, yy) {
				continue
			}
			f.clearWide(xx, yy)
			f.cells[yy][xx] = cell{r: r, fg: fg, bg: bg}
		}
	}
}

// Overlay copies the non-empty braille cells of c onto the frame.
func (f *Frame) Overlay(c *Canvas, fg lipgloss.Color) {
	for row := 0; row < c.Height && row < f.Height; row++ {
		for col := 0; col < c.Width && col < f.Width; col++ {
			if c.Empty(col, row) {
				continue
			}
			f.Put(col, row, c.Grid[row][col], fg)
		}
	}
}

// String renders the frame, merging runs of identically styled cells.
func (f *Frame) String() string {
	var b strings.Builder
	for y, row := range f.cells {
		var run strings.Builder
		var cur cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			st := lipgloss.NewStyle().Foreground(cur.fg).Background(cur.bg).Bold(cur.bold)
			b.WriteString(st.Render(run.String()))
			run.Reset()
		}
		for x, c := range row {
			if c.cont {
				continue
			}
			if x == 0 || c.fg != cur.fg || c.bg != cur.bg || c.bold != cur.bold {
				flush()
				cur = c
			}
			run.WriteRune(c.r)
		}
		flush()
		if y < len(f.cells)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Plain renders the frame without styling.
func (f *Frame) Plain() string {
	var b strings.Builder
	for y, row := range f.cells {
		for _, c := range row {
			if c.cont {
				continue
			}
			b.WriteRune(c.r)
		}
		if y < len(f.cells)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
