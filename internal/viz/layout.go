package viz

import "math"

// Layout maps between terminal cells and pointer space. Pointer space has
// its origin at the top-left of the stage column, where the card lives.
type Layout struct {
	Width, Height int
	CellW, CellH  float64
	StageX        int
}

// minHeroWidth is the narrowest terminal that still gets a hero column.
const minHeroWidth = 90

func NewLayout(w, h int, cellW, cellH float64) Layout {
	l := Layout{Width: w, Height: h, CellW: cellW, CellH: cellH}
	if w >= minHeroWidth {
		l.StageX = w * 2 / 5
	}
	return l
}

// ToPointer returns the pointer-space centre of a cell.
func (l Layout) ToPointer(col, row int) (x, y float64) {
	return (float64(col-l.StageX) + 0.5) * l.CellW, (float64(row) + 0.5) * l.CellH
}

// ToCell returns the cell containing a pointer-space point. Non-finite input
// maps to (-1, -1), which every layer treats as off-screen.
func (l Layout) ToCell(x, y float64) (col, row int) {
	cx, cy := math.Floor(x/l.CellW), math.Floor(y/l.CellH)
	if math.IsNaN(cx) || math.IsNaN(cy) || math.IsInf(cx, 0) || math.IsInf(cy, 0) {
		return -1, -1
	}
	if cx < -1e6 || cx > 1e6 || cy < -1e6 || cy > 1e6 {
		return -1, -1
	}
	return l.StageX + int(cx), int(cy)
}

// Cells converts a pointer-space length pair to whole cells, at least one.
func (l Layout) Cells(w, h float64) (int, int) {
	cw, ch := int(math.Round(w/l.CellW)), int(math.Round(h/l.CellH))
	return max(cw, 1), max(ch, 1)
}
