package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		p        Vec2
		expected bool
	}{
		{"inside", V(15, 15), true},
		{"top-left corner", V(10, 10), true},
		{"bottom-right edge (exclusive)", V(30, 25), false},
		{"outside left", V(5, 15), false},
		{"outside bottom", V(15, 30), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.p); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestVec2Cell(t *testing.T) {
	tests := []struct {
		p        Vec2
		size     int
		col, row int
	}{
		{V(0, 0), 10, 0, 0},
		{V(20, 10), 10, 2, 1},
		{V(19, 29), 10, 1, 2},
		{V(-1, -10), 10, -1, -1},
		{V(7, 3), 0, 7, 3},
	}

	for _, tc := range tests {
		col, row := tc.p.Cell(tc.size)
		if col != tc.col || row != tc.row {
			t.Errorf("%v.Cell(%d) = (%d, %d), expected (%d, %d)", tc.p, tc.size, col, row, tc.col, tc.row)
		}
	}
}

func TestVec2Add(t *testing.T) {
	if got := V(1, 2).Add(V(10, 20)); got != V(11, 22) {
		t.Errorf("Add() = %v, expected (11, 22)", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name string
		want Color
		ok   bool
	}{
		{"yellow", ColorYellow, true},
		{"  Bright_Blue ", ColorBrightBlue, true},
		{"pink", ColorPink, true},
		{"chartreuse", ColorDefault, false},
	}

	for _, tc := range tests {
		got, ok := ParseColor(tc.name)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseColor(%q) = (%v, %v), expected (%v, %v)", tc.name, got, ok, tc.want, tc.ok)
		}
	}

	if len(Palette()) != int(ColorPink) {
		t.Errorf("Palette() length = %d, expected %d", len(Palette()), ColorPink)
	}
}
