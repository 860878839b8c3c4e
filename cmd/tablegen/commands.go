package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aerissecure/tabledraw"
	"github.com/aerissecure/tabledraw/docx"
	_ "github.com/aerissecure/tabledraw/svg"
	"github.com/aerissecure/tabledraw/tabledef"
	"github.com/aerissecure/tabledraw/xlsx"
)

// formatList dumps primitives one per line instead of using a sink.
const formatList = "list"

type renderParams struct {
	format   string
	output   string
	index    int
	xlsxGrid bool
	docxGrid bool
	verbose  bool
}

var params = renderParams{format: "svg"}

// RootCommand is the base CLI command that all subcommands are added to.
var RootCommand = &cobra.Command{
	Use:   path.Base(os.Args[0]),
	Short: "Table layout generator",
	Long:  "Lay out tables as lines, fills, text and block references.",
	PersistentPreRun: func(*cobra.Command, []string) {
		if params.verbose {
			tabledraw.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}
	},
	SilenceUsage: true,
}

var defCommand = &cobra.Command{
	Use:   "def <file.yaml>",
	Short: "Render a YAML table description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.OutOrStdout(), &params, func() ([]*tabledraw.Table, error) {
			f, err := os.Open(args[0])
			if err != nil {
				return nil, err
			}
			defer f.Close()
			t, err := tabledef.Load(f)
			if err != nil {
				return nil, err
			}
			return []*tabledraw.Table{t}, nil
		})
	},
}

var xlsxCommand = &cobra.Command{
	Use:   "xlsx <file.xlsx>",
	Short: "Render a worksheet of an XLSX workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.OutOrStdout(), &params, func() ([]*tabledraw.Table, error) {
			return openReaderAt(args[0], func(r io.ReaderAt, size int64) ([]*tabledraw.Table, error) {
				return xlsx.Tables(r, size, xlsx.WithGrid(params.xlsxGrid))
			})
		})
	},
}

var docxCommand = &cobra.Command{
	Use:   "docx <file.docx>",
	Short: "Render a table of a DOCX document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.OutOrStdout(), &params, func() ([]*tabledraw.Table, error) {
			return openReaderAt(args[0], func(r io.ReaderAt, size int64) ([]*tabledraw.Table, error) {
				return docx.Tables(r, size, docx.WithGrid(params.docxGrid))
			})
		})
	},
}

func init() {
	pf := RootCommand.PersistentFlags()
	pf.StringVarP(&params.format, "format", "f", params.format,
		fmt.Sprintf("output format: %s or %s", strings.Join(tabledraw.Sinks(), ", "), formatList))
	pf.StringVarP(&params.output, "output", "o", "", "output file (default stdout)")
	pf.BoolVarP(&params.verbose, "verbose", "v", false, "log layout details to stderr")

	xlsxCommand.Flags().IntVar(&params.index, "sheet", 0, "index of the worksheet to render")
	xlsxCommand.Flags().BoolVar(&params.xlsxGrid, "grid", false, "draw the default grid under the sheet borders")
	docxCommand.Flags().IntVar(&params.index, "table", 0, "index of the table to render")
	docxCommand.Flags().BoolVar(&params.docxGrid, "grid", true, "draw the default grid")

	RootCommand.AddCommand(defCommand, xlsxCommand, docxCommand)
}

func openReaderAt(name string, fn func(io.ReaderAt, int64) ([]*tabledraw.Table, error)) ([]*tabledraw.Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return fn(f, info.Size())
}

func run(stdout io.Writer, p *renderParams, load func() ([]*tabledraw.Table, error)) error {
	tables, err := load()
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		return errors.New("no tables found")
	}
	if p.index < 0 || p.index >= len(tables) {
		return fmt.Errorf("index %d out of range, found %d tables", p.index, len(tables))
	}
	t := tables[p.index]

	out := stdout
	if p.output != "" {
		f, err := os.Create(p.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if p.format == formatList {
		prims, err := t.Render()
		if err != nil {
			return err
		}
		for _, prim := range prims {
			if _, err := fmt.Fprintln(out, prim); err != nil {
				return err
			}
		}
		return nil
	}

	sink, err := tabledraw.NewSink(p.format)
	if err != nil {
		return err
	}
	if err := t.RenderTo(sink); err != nil {
		return err
	}
	_, err = sink.WriteTo(out)
	return err
}
