package core

import "testing"

func TestViewportCorners(t *testing.T) {
	v := NewViewport(1280, 720, 80, 24)

	if c, r := v.Cell(0, 0); c != 0 || r != 23 {
		t.Errorf("bottom-left = (%d, %d), expected (0, 23)", c, r)
	}
	if c, r := v.Cell(1280, 720); c != 79 || r != 0 {
		t.Errorf("top-right = (%d, %d), expected (79, 0)", c, r)
	}
	if c, r := v.Cell(640, 360); c != 40 || r != 12 {
		t.Errorf("center = (%d, %d), expected (40, 12)", c, r)
	}
}

func TestViewportClampsOutside(t *testing.T) {
	v := NewViewport(1280, 720, 80, 24)
	if v.Col(-50) != 0 || v.Col(5000) != 79 {
		t.Error("columns should clamp")
	}
	if v.Row(-50) != 23 || v.Row(5000) != 0 {
		t.Error("rows should clamp")
	}
}

func TestViewportSpan(t *testing.T) {
	v := NewViewport(1280, 720, 80, 24)
	top, bottom := v.Span(300, 420)
	if top != 10 || bottom != 14 {
		t.Errorf("Span(300, 420) = (%d, %d), expected (10, 14)", top, bottom)
	}
}
