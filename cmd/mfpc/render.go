package main

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/katalvlaran/mfpc/network"
)

// newTable returns a writer with the style every command uses.
func newTable(header ...any) table.Writer {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row(header))

	return w
}

// rightAlign right-aligns the given 1-based columns.
func rightAlign(w table.Writer, cols ...int) {
	cfgs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		cfgs[i] = table.ColumnConfig{Number: c, Align: text.AlignRight}
	}
	w.SetColumnConfigs(cfgs)
}

func render(out io.Writer, w table.Writer, markdown bool) {
	if markdown {
		fmt.Fprintln(out, w.RenderMarkdown())
		return
	}
	fmt.Fprintln(out, w.Render())
}

// node prints a node in the numbering of the file it came from.
func node(inst *network.Instance, n network.Node) int {
	return int(n) + inst.Base()
}

func field(out io.Writer, name string, value any) {
	fmt.Fprintf(out, "%-11s%v\n", name+":", value)
}

func round(d time.Duration) time.Duration {
	if d < time.Millisecond {
		return d.Round(time.Microsecond)
	}
	return d.Round(time.Millisecond)
}
