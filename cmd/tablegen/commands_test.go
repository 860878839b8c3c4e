package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aerissecure/tabledraw"
)

const def = `
rows: 1
cols: 2
cells:
  - {row: 0, col: 0, span: [1, 2], text: Title}
`

func writeDef(t *testing.T) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "table.yaml")
	if err := os.WriteFile(name, []byte(def), 0o644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestDefCommand(t *testing.T) {
	name := writeDef(t)
	t.Cleanup(func() { params = renderParams{format: "svg"} })

	var out bytes.Buffer
	RootCommand.SetOut(&out)
	RootCommand.SetArgs([]string{"def", name})
	if err := RootCommand.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "<svg ") || !strings.Contains(out.String(), ">Title</tspan>") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestRun_List(t *testing.T) {
	tbl := tabledraw.New(tabledraw.Point{}, 1, 2, true)
	if _, err := tbl.TextCell(0, 0, "x", tabledraw.One, "default"); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	err := run(&out, &renderParams{format: formatList}, func() ([]*tabledraw.Table, error) {
		return []*tabledraw.Table{tbl}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	// 2x2 horizontal + 3 vertical segments, then the text
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "Line ") || !strings.HasPrefix(lines[7], `Text "x"`) {
		t.Errorf("unexpected dump:\n%s", out.String())
	}
}

func TestRun_Errors(t *testing.T) {
	one := func() ([]*tabledraw.Table, error) {
		return []*tabledraw.Table{tabledraw.New(tabledraw.Point{}, 1, 1, true)}, nil
	}
	none := func() ([]*tabledraw.Table, error) { return nil, nil }

	tests := []struct {
		name string
		p    renderParams
		load func() ([]*tabledraw.Table, error)
		want string
	}{
		{"no tables", renderParams{format: "svg"}, none, "no tables"},
		{"index", renderParams{format: "svg", index: 2}, one, "out of range"},
		{"format", renderParams{format: "pdf"}, one, "unknown sink"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(&out, &tt.p, tt.load)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("run() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestRun_OutputFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.svg")
	err := run(nil, &renderParams{format: "svg", output: name}, func() ([]*tabledraw.Table, error) {
		return []*tabledraw.Table{tabledraw.New(tabledraw.Point{}, 1, 1, true)}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(b), "<line ") != 4 {
		t.Errorf("unexpected file content:\n%s", b)
	}
}
