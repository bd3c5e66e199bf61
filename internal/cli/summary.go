package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"firing_curve/internal/builder"
	"firing_curve/internal/chart"
	"firing_curve/internal/glass"
)

// printSummary writes the derived program phase by phase.
func printSummary(w io.Writer, p builder.Params, plan builder.Plan, ch chart.Chart) {
	bold := color.New(color.Bold)
	dim := color.New(color.Faint)
	heat := color.New(color.FgRed)
	cool := color.New(color.FgCyan)

	bold.Fprintln(w, ch.Title)
	dim.Fprintf(w, "%s oven, radius %d cm, %d layer(s), top %d °C, anneal %d/%d °C\n\n",
		glass.OvenName(p.Oven), p.Radius, p.Layers, plan.TopTemp,
		plan.Glass.UpperAnneal, plan.Glass.LowerAnneal)

	for _, s := range ch.Series {
		v := plan.Velocities[s.Phase]
		rate := heat
		if v < 0 {
			rate = cool
		}
		start, end := s.Points[0], s.Points[len(s.Points)-1]
		fmt.Fprintf(w, "%-8s ", s.Label)
		rate.Fprintf(w, "%5d °C/h", v)
		fmt.Fprintf(w, "  %4d -> %4d °C  %5d min  ", start.Temp, end.Temp, end.Minute-start.Minute)
		dim.Fprintln(w, s.Color)
	}

	fmt.Fprintln(w)
	bold.Fprint(w, "Total time: ")
	fmt.Fprintln(w, ch.TotalTime)
}
