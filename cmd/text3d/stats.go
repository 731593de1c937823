package main

import (
	"fmt"
	"io"
	"time"

	"github.com/idursun/text3d/internal/runner"
	"github.com/olekukonko/tablewriter"
)

func printStats(w io.Writer, stats runner.Stats, period time.Duration) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Frames", "Average", "Slowest", "Over budget", "Budget"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.Append([]string{
		fmt.Sprintf("%d", stats.Frames),
		stats.Average().String(),
		stats.Slowest.String(),
		fmt.Sprintf("%d", stats.Overruns),
		period.String(),
	})
	table.Render()
}
