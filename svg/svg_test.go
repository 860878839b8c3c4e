package svg

import (
	"strings"
	"testing"

	"github.com/aerissecure/tabledraw"
)

func TestSink_Table(t *testing.T) {
	tbl := tabledraw.New(tabledraw.Point{}, 1, 1, true)
	if _, err := tbl.TextCell(0, 0, "<a&b>", tabledraw.One, "default"); err != nil {
		t.Fatal(err)
	}
	s, err := tabledraw.NewSink("svg")
	if err != nil {
		t.Fatal(err)
	}
	if err := tbl.RenderTo(s); err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	n, err := s.WriteTo(&b)
	if err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if int(n) != len(out) {
		t.Errorf("WriteTo() = %d, wrote %d bytes", n, len(out))
	}
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 50 20" width="50" height="20">`) {
		t.Errorf("unexpected header:\n%s", out)
	}
	if got := strings.Count(out, "<line "); got != 4 {
		t.Errorf("lines = %d, want 4", got)
	}
	if !strings.Contains(out, `class="TABLEGRID"`) || !strings.Contains(out, `stroke="#0000FF"`) {
		t.Errorf("grid lines should be blue on the grid layer:\n%s", out)
	}
	if !strings.Contains(out, "&lt;a&amp;b&gt;") {
		t.Errorf("text not escaped:\n%s", out)
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Errorf("document not closed")
	}
}

func TestSink_Text(t *testing.T) {
	tests := []struct {
		name string
		text tabledraw.Text
		want []string
	}{
		{
			name: "top left",
			text: tabledraw.Text{Content: "a\nb", Insert: tabledraw.Point{X: 1, Y: -1}, Height: 1, LineSpacing: 2},
			want: []string{`x="20" y="20"`, `text-anchor="start"`, `<tspan x="20" dy="20">a</tspan><tspan x="20" dy="40">b</tspan>`},
		},
		{
			name: "middle centered",
			text: tabledraw.Text{Content: "a\nb", Height: 1, LineSpacing: 2, HAlign: tabledraw.AlignCenter, VAlign: tabledraw.AlignMiddle},
			want: []string{`text-anchor="middle"`, `dy="-10">a</tspan>`},
		},
		{
			name: "rotated",
			text: tabledraw.Text{Content: "r", Insert: tabledraw.Point{X: 1}, Height: 1, Rotation: 90, HAlign: tabledraw.AlignRight},
			want: []string{`transform="rotate(-90 20 0)"`, `text-anchor="end"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.AddText(tt.text)
			var b strings.Builder
			if _, err := s.WriteTo(&b); err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(b.String(), w) {
					t.Errorf("output missing %s:\n%s", w, b.String())
				}
			}
		})
	}
}

func TestSink_LineTypeAndBlock(t *testing.T) {
	s := New(WithScale(10))
	s.AddLine(tabledraw.Line{End: tabledraw.Point{X: 1}, LineType: "dashed", Color: tabledraw.Red})
	s.AddBlockRef(tabledraw.BlockRef{
		Name: "PUMP", Insert: tabledraw.Point{X: 2, Y: -1}, XScale: 1, YScale: 1,
		Attribs: []tabledraw.Attrib{{Tag: "num", Text: "7", Insert: tabledraw.Point{X: 3, Y: -1}, Height: 0.5}},
	})
	var b strings.Builder
	if _, err := s.WriteTo(&b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, w := range []string{
		`stroke="#FF0000" stroke-dasharray="5 2.5"`,
		`href="#PUMP" transform="translate(20 10) rotate(0) scale(1 1)"`,
		`data-tag="num" x="30" y="10" font-size="5"`,
		`viewBox="0 0 30 10"`,
	} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %s:\n%s", w, out)
		}
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{0: "0", 1.5: "1.5", 100: "100", -0.0001: "0", 2.0004: "2", -3.25: "-3.25"}
	for in, want := range tests {
		if got := num(in); got != want {
			t.Errorf("num(%v) = %q, want %q", in, got, want)
		}
	}
}
