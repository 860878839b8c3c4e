package tabledraw

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func countKinds(prims []Primitive) map[Kind]int {
	n := make(map[Kind]int)
	for _, p := range prims {
		n[p.Kind()]++
	}
	return n
}

func lines(prims []Primitive) []Line {
	var out []Line
	for _, p := range prims {
		if l, ok := p.(Line); ok {
			out = append(out, l)
		}
	}
	return out
}

func TestRender_SingleTextCell(t *testing.T) {
	tbl := New(Point{}, 2, 2, true)
	if _, err := tbl.TextCell(0, 0, "Hi", One, "default"); err != nil {
		t.Fatal(err)
	}

	prims, err := tbl.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	n := countKinds(prims)
	if n[KindLine] != 12 || n[KindSolid] != 0 || n[KindText] != 1 || len(prims) != 13 {
		t.Fatalf("primitive counts = %v (total %d), want 12 lines, 1 text", n, len(prims))
	}

	txt, ok := prims[12].(Text)
	if !ok {
		t.Fatalf("last primitive is %T, want Text", prims[12])
	}
	want := Point{X: 0 + DefaultMargin, Y: 0 - DefaultMargin}
	if txt.Insert != want {
		t.Errorf("text insert = %v, want %v", txt.Insert, want)
	}
	if txt.HAlign != AlignLeft || txt.VAlign != AlignTop || txt.Layer != DefaultContentLayer {
		t.Errorf("text = %v", txt)
	}
	for _, l := range lines(prims) {
		if l.Layer != DefaultGridLayer || l.Color != DefaultBorderColor {
			t.Errorf("line %v not on the default grid", l)
		}
	}
}

func TestRender_NoDefaultGrid(t *testing.T) {
	tbl := New(Point{}, 3, 4, false)
	prims, err := tbl.Render()
	if err != nil {
		t.Fatal(err)
	}
	if len(prims) != 0 {
		t.Errorf("Render() = %d primitives, want 0", len(prims))
	}
}

func TestRender_SpanSuppressesInnerLines(t *testing.T) {
	for _, grid := range []bool{true, false} {
		tbl := New(Point{}, 3, 3, grid)
		visible := NewBorderStyle(Red, true, DefaultNewBorderPriority, "")
		if _, err := tbl.DefineStyle("boxed", "", WithBorders(visible)); err != nil {
			t.Fatal(err)
		}
		// a frame that would draw a cross through the spanning cell
		if _, err := tbl.Frame(0, 0, 1, 1, "boxed"); err != nil {
			t.Fatal(err)
		}
		if _, err := tbl.TextCell(0, 0, "big", Span{2, 2}, "boxed"); err != nil {
			t.Fatal(err)
		}

		prims, err := tbl.Render()
		if err != nil {
			t.Fatal(err)
		}
		// inner boundaries of the 2x2 cell: y = -1 for x in [0, 5], x = 2.5 for y in [-2, 0]
		for _, l := range lines(prims) {
			horizontalInside := l.Start.Y == -1 && l.End.Y == -1 && l.End.X <= 5
			verticalInside := l.Start.X == 2.5 && l.End.X == 2.5 && l.End.Y >= -2
			if horizontalInside || verticalInside {
				t.Errorf("grid=%v: line %v inside spanning cell", grid, l)
			}
		}
		if !grid {
			// only the red outline: 2+2 horizontal, 2+2 vertical
			if got := len(lines(prims)); got != 8 {
				t.Errorf("grid=false: %d lines, want 8", got)
			}
		}
	}
}

func TestRender_FrameAndCellPriority(t *testing.T) {
	tbl := New(Point{}, 2, 2, true)
	if _, err := tbl.DefineStyle("frame", "", WithBorders(NewBorderStyle(Red, true, 100, ""))); err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.DefineStyle("cell", "", WithBorder(NewBorderStyle(Green, true, 100, ""), false, false, true, false)); err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.Frame(0, 0, 2, 2, "frame"); err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.TextCell(0, 1, "x", One, "cell"); err != nil {
		t.Fatal(err)
	}

	var topColors []Color
	var inner []Color
	for _, l := range lines(mustRender(t, tbl)) {
		switch {
		case l.Start.Y == 0 && l.End.Y == 0:
			topColors = append(topColors, l.Color)
		case l.Start.Y == -1 && l.End.Y == -1:
			inner = append(inner, l.Color)
		}
	}
	// frame (priority 100) on (0,0), cell top (priority 100, applied later) on (0,1)
	if diff := cmp.Diff([]Color{Red, Green}, topColors); diff != "" {
		t.Errorf("top edge colors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Color{DefaultBorderColor, DefaultBorderColor}, inner); diff != "" {
		t.Errorf("inner edge colors mismatch (-want +got):\n%s", diff)
	}
}

func mustRender(t *testing.T, tbl *Table) []Primitive {
	t.Helper()
	prims, err := tbl.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return prims
}

func TestRender_Idempotent(t *testing.T) {
	tbl := New(Point{X: 5, Y: 5}, 3, 3, true)
	if _, err := tbl.DefineStyle("bg", "", WithBackground(Yellow), WithAlign(AlignCenter, AlignMiddle)); err != nil {
		t.Fatal(err)
	}
	def := &BlockDef{Name: "B", AttDefs: []AttDef{{Tag: "a"}, {Tag: "b"}, {Tag: "c"}}}
	if _, err := tbl.BlockCell(1, 1, def, map[string]any{"c": 3, "a": 1, "b": 2}, Span{2, 2}, "bg"); err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.TextCell(0, 0, "head", Span{1, 3}, "bg"); err != nil {
		t.Fatal(err)
	}

	first := mustRender(t, tbl)
	second := mustRender(t, tbl)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second render differs (-first +second):\n%s", diff)
	}
	if n := countKinds(first); n[KindSolid] != 2 || n[KindBlockRef] != 1 || n[KindText] != 1 {
		t.Errorf("primitive counts = %v", n)
	}
}

func TestRender_BackgroundBeforeContent(t *testing.T) {
	tbl := New(Point{}, 1, 1, false)
	if _, err := tbl.DefineStyle("bg", "", WithBackground(Red)); err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.TextCell(0, 0, "x", One, "bg"); err != nil {
		t.Fatal(err)
	}
	prims := mustRender(t, tbl)
	if len(prims) != 2 || prims[0].Kind() != KindSolid || prims[1].Kind() != KindText {
		t.Fatalf("prims = %v, want solid then text", prims)
	}
	solid := prims[0].(Solid)
	want := []Point{{0, 0}, {0, -1}, {2.5, -1}, {2.5, 0}}
	if diff := cmp.Diff(want, solid.Points); diff != "" {
		t.Errorf("solid points mismatch (-want +got):\n%s", diff)
	}
	if solid.Layer != DefaultBackgroundLayer || solid.Color != Red {
		t.Errorf("solid = %v", solid)
	}
}

func TestRender_Errors(t *testing.T) {
	t.Run("index out of range", func(t *testing.T) {
		tbl := New(Point{}, 2, 2, true)
		for _, p := range []Pos{{2, 0}, {0, 2}, {-1, 0}} {
			if _, err := tbl.TextCell(p.Row, p.Col, "x", One, "default"); !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("TextCell(%v) error = %v, want ErrIndexOutOfRange", p, err)
			}
		}
		if _, err := tbl.Frame(0, 5, 1, 1, "default"); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Frame() error = %v, want ErrIndexOutOfRange", err)
		}
		if err := tbl.SetRowHeight(3, 1); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("SetRowHeight() error = %v, want ErrIndexOutOfRange", err)
		}
	})

	t.Run("unknown style fails at render", func(t *testing.T) {
		tbl := New(Point{}, 2, 2, true)
		if _, err := tbl.TextCell(0, 0, "x", One, "nope"); err != nil {
			t.Fatalf("registration should not resolve styles: %v", err)
		}
		if _, err := tbl.Render(); !errors.Is(err, ErrUnknownStyle) {
			t.Errorf("Render() error = %v, want ErrUnknownStyle", err)
		}
		if tbl.State() != Unbuilt {
			t.Errorf("State() = %v after failed render, want unbuilt", tbl.State())
		}
	})

	t.Run("unknown base style", func(t *testing.T) {
		tbl := New(Point{}, 1, 1, true)
		if _, err := tbl.DefineStyle("x", "missing"); !errors.Is(err, ErrUnknownStyle) {
			t.Errorf("DefineStyle() error = %v, want ErrUnknownStyle", err)
		}
	})

	t.Run("unsupported content", func(t *testing.T) {
		tbl := New(Point{}, 1, 1, true)
		if _, err := tbl.CustomCell(0, 0, nil, One, "default"); err != nil {
			t.Fatal(err)
		}
		if _, err := tbl.Render(); !errors.Is(err, ErrUnsupportedContent) {
			t.Errorf("Render() error = %v, want ErrUnsupportedContent", err)
		}
	})

	t.Run("not built", func(t *testing.T) {
		tbl := New(Point{}, 1, 1, true)
		if _, err := tbl.Visible(0, 0); !errors.Is(err, ErrNotBuilt) {
			t.Errorf("Visible() error = %v, want ErrNotBuilt", err)
		}
		if _, err := tbl.VisibleCells(); !errors.Is(err, ErrNotBuilt) {
			t.Errorf("VisibleCells() error = %v, want ErrNotBuilt", err)
		}
		if _, err := tbl.HBorder(0, 0); !errors.Is(err, ErrNotBuilt) {
			t.Errorf("HBorder() error = %v, want ErrNotBuilt", err)
		}
	})

	t.Run("unknown cell handle", func(t *testing.T) {
		tbl := New(Point{}, 1, 1, true)
		if err := tbl.PlaceCell(0, 0, CellID(3)); !errors.Is(err, ErrUnknownCell) {
			t.Errorf("PlaceCell() error = %v, want ErrUnknownCell", err)
		}
	})
}

func TestRender_AccessorsDuringRender(t *testing.T) {
	tbl := New(Point{}, 2, 2, true)
	if _, err := tbl.TextCell(0, 0, "wide", Span{1, 2}, "default"); err != nil {
		t.Fatal(err)
	}

	var (
		state    State
		visible  []bool
		placed   []PlacedCell
		innerV   BorderStyle
		innerErr error
	)
	inspect := ContentFunc(func(Box, Style, string) ([]Primitive, error) {
		state = tbl.State()
		for _, p := range []Pos{{0, 0}, {0, 1}, {1, 0}} {
			v, err := tbl.Visible(p.Row, p.Col)
			if err != nil {
				return nil, err
			}
			visible = append(visible, v)
		}
		placed, innerErr = tbl.VisibleCells()
		if innerErr != nil {
			return nil, innerErr
		}
		innerV, innerErr = tbl.VBorder(0, 1)
		return nil, innerErr
	})
	if _, err := tbl.CustomCell(1, 1, inspect, One, "default"); err != nil {
		t.Fatal(err)
	}
	mustRender(t, tbl)

	if state != Built {
		t.Errorf("State() during content = %v, want built", state)
	}
	if diff := cmp.Diff([]bool{true, false, true}, visible); diff != "" {
		t.Errorf("visibility mismatch (-want +got):\n%s", diff)
	}
	if len(placed) != 3 || placed[0].Span != (Span{1, 2}) {
		t.Errorf("VisibleCells() = %v", placed)
	}
	if innerV.Visible {
		t.Errorf("vertical segment inside spanning cell is visible")
	}
	if tbl.State() != Unbuilt {
		t.Errorf("State() after render = %v, want unbuilt", tbl.State())
	}
}

func TestRender_SpanClippedAtEdge(t *testing.T) {
	tbl := New(Point{}, 2, 2, false)
	if _, err := tbl.DefineStyle("bg", "", WithBackground(Green)); err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.TextCell(1, 1, "x", Span{5, 5}, "bg"); err != nil {
		t.Fatal(err)
	}
	prims := mustRender(t, tbl)
	solid := prims[0].(Solid)
	if solid.Points[2] != (Point{5, -2}) {
		t.Errorf("clipped background corner = %v, want (5, -2)", solid.Points[2])
	}
}

func TestRender_CellReuse(t *testing.T) {
	tbl := New(Point{}, 1, 3, false)
	id := tbl.AddCell(NewTextCell("same", One, "default"))
	for col := 0; col < 3; col++ {
		if err := tbl.PlaceCell(0, col, id); err != nil {
			t.Fatal(err)
		}
	}
	var xs []float64
	for _, p := range mustRender(t, tbl) {
		xs = append(xs, p.(Text).Insert.X)
	}
	want := []float64{0.1, 2.6, 5.1}
	if diff := cmp.Diff(want, xs, cmp.Comparer(func(a, b float64) bool { return a-b < 1e-9 && b-a < 1e-9 })); diff != "" {
		t.Errorf("insert x mismatch (-want +got):\n%s", diff)
	}

	c, err := tbl.Cell(0, 1)
	if err != nil || c.Text() != "same" {
		t.Errorf("Cell(0, 1) = %v, %v", c, err)
	}
}

func TestTable_EmptyCellSingleton(t *testing.T) {
	tbl := New(Point{}, 2, 2, true)
	a, _ := tbl.Cell(0, 0)
	b, _ := tbl.Cell(1, 1)
	if a != b || a.Kind() != EmptyCell || a.StyleName() != "default" {
		t.Errorf("unoccupied cells = %v / %v, want shared empty cell", a, b)
	}
}

func TestTable_ConcurrentUse(t *testing.T) {
	tbl := New(Point{}, 3, 3, true)
	if _, err := tbl.TextCell(0, 0, "x", Span{2, 2}, "default"); err != nil {
		t.Fatal(err)
	}

	const n = 50
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			if _, err := tbl.Render(); err != nil && !errors.Is(err, ErrRenderInProgress) {
				t.Errorf("Render() error = %v", err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			name := fmt.Sprintf("s%d", i)
			if _, err := tbl.Styles().Define(name, "", WithBackground(Red)); err != nil {
				t.Errorf("Define(%s) error = %v", name, err)
				return
			}
			if err := tbl.UpdateStyle(name, WithRotation(90)); err != nil {
				t.Errorf("UpdateStyle(%s) error = %v", name, err)
				return
			}
			tbl.Styles().Set("default", DefaultStyle())
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			if _, err := tbl.TextCell(2, i%3, "y", One, "default"); err != nil {
				t.Errorf("TextCell() error = %v", err)
				return
			}
			_, _ = tbl.Cell(2, i%3)
			_ = tbl.Frames()
			_ = tbl.RowHeights()
			_ = tbl.String()
		}
	}()
	wg.Wait()

	if got := len(tbl.Styles().Names()); got != n+1 {
		t.Errorf("len(Names()) = %d, want %d", got, n+1)
	}
	if _, err := tbl.Render(); err != nil {
		t.Fatalf("Render() after concurrent use error = %v", err)
	}
}
