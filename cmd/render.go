/*
Copyright © 2025 Raindancer118
*/
package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	tgraph "github.com/daoleno/tgraph"
	"golang.org/x/term"

	"github.com/Raindancer118/genesis/hero"
)

// RenderTargets prints the target table. In fast mode the CPU column
// is rendered as N/A because no sampling window was taken.
func RenderTargets(w io.Writer, targets []hero.Target, fast bool) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PID\tNAME\tUSER\tMEM (MB)\tCPU %\tSCORE\tCOMMAND")
	for _, t := range targets {
		cpu := fmt.Sprintf("%.1f", t.CPUPercent)
		if fast {
			cpu = "N/A"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%s\t%.1f\t%s\n",
			t.PID, t.Name, t.Username, t.RSSMB, cpu, t.Score, t.Cmdline)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

// RenderScoreChart draws a horizontal bar chart of target scores when
// stdout is a terminal. Outside a terminal it silently does nothing.
func RenderScoreChart(targets []hero.Target) {
	if !term.IsTerminal(0) || len(targets) == 0 {
		return
	}
	width, height, err := term.GetSize(0)
	if err != nil {
		return
	}
	maxRows := min(len(targets), max(height/2, 4))
	labels := make([]string, maxRows)
	data := make([][]float64, maxRows)
	for i, t := range targets[:maxRows] {
		labels[i] = fmt.Sprintf("%s (%d)", t.Name, t.PID)
		data[i] = []float64{t.RSSMB, t.CPUPercent}
	}
	tgraph.Chart(
		fmt.Sprintf("Top %d targets by score", maxRows),
		labels,
		data,
		[]string{"Memory (MB)", "CPU %"},
		[]string{"green", "blue"},
		float64(width),
		false,
		"",
	)
}
