package core

// Viewport maps the logical playfield (y up, origin bottom-left) onto a grid
// of terminal cells (y down, origin top-left).
type Viewport struct {
	FieldW, FieldH float64
	Cols, Rows     int
}

// NewViewport creates a viewport for a field of fw x fh units shown on
// cols x rows cells.
func NewViewport(fw, fh float64, cols, rows int) Viewport {
	return Viewport{FieldW: fw, FieldH: fh, Cols: max(cols, 1), Rows: max(rows, 1)}
}

// Col returns the cell column containing field x.
func (v Viewport) Col(x float64) int {
	if v.FieldW <= 0 {
		return 0
	}
	return Clamp(int(x/v.FieldW*float64(v.Cols)), 0, v.Cols-1)
}

// Row returns the cell row containing field y.
func (v Viewport) Row(y float64) int {
	if v.FieldH <= 0 {
		return 0
	}
	return Clamp(int((v.FieldH-y)/v.FieldH*float64(v.Rows)), 0, v.Rows-1)
}

// Cell converts a field point to a cell.
func (v Viewport) Cell(x, y float64) (int, int) {
	return v.Col(x), v.Row(y)
}

// Span returns the rows covered by the vertical segment [y0, y1] in field
// units, top row first. At least one row is always covered.
func (v Viewport) Span(y0, y1 float64) (top, bottom int) {
	top = v.Row(y1)
	bottom = v.Row(y0)
	if bottom < top {
		top, bottom = bottom, top
	}
	return top, bottom
}
