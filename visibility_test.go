package tabledraw

import (
	"slices"
	"testing"
)

func TestVisibilityMap_Span(t *testing.T) {
	m := newVisibilityMap(3, 3, []placement{{pos: Pos{0, 1}, span: Span{2, 2}}})

	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			covered := r < 2 && c >= 1
			want := !covered || (r == 0 && c == 1)
			if got := m.Visible(r, c); got != want {
				t.Errorf("Visible(%d, %d) = %v, want %v", r, c, got, want)
			}
		}
	}
}

func TestVisibilityMap_UnregisteredVisible(t *testing.T) {
	m := newVisibilityMap(2, 3, nil)
	if got := len(m.Positions()); got != 6 {
		t.Errorf("len(Positions()) = %d, want 6", got)
	}
}

func TestVisibilityMap_PositionsRowMajor(t *testing.T) {
	m := newVisibilityMap(2, 2, []placement{{pos: Pos{0, 0}, span: Span{1, 2}}})
	want := []Pos{{0, 0}, {1, 0}, {1, 1}}
	if got := m.Positions(); !slices.Equal(got, want) {
		t.Errorf("Positions() = %v, want %v", got, want)
	}
}

func TestVisibilityMap_LastAnchorWins(t *testing.T) {
	t.Run("later anchor inside earlier span", func(t *testing.T) {
		m := newVisibilityMap(2, 2, []placement{
			{pos: Pos{0, 0}, span: Span{2, 2}},
			{pos: Pos{1, 1}, span: One},
		})
		if !m.Visible(0, 0) || !m.Visible(1, 1) {
			t.Errorf("both anchors should be visible")
		}
		if m.Visible(0, 1) || m.Visible(1, 0) {
			t.Errorf("covered positions should be hidden")
		}
	})
	t.Run("later span hides earlier anchor", func(t *testing.T) {
		m := newVisibilityMap(2, 2, []placement{
			{pos: Pos{1, 1}, span: One},
			{pos: Pos{0, 0}, span: Span{2, 2}},
		})
		if m.Visible(1, 1) {
			t.Errorf("earlier anchor (1, 1) should be hidden by the later span")
		}
		if !m.Visible(0, 0) {
			t.Errorf("later anchor (0, 0) should be visible")
		}
	})
}
