// Package chart turns a firing curve into plottable time/temperature series.
package chart

import (
	"fmt"

	"firing_curve/internal/curve"
)

// Palette is the 20 colour qualitative palette phases are labelled with, in order.
var Palette = []string{
	"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c",
	"#98df8a", "#d62728", "#ff9896", "#9467bd", "#c5b0d5",
	"#8c564b", "#c49c94", "#e377c2", "#f7b6d2", "#7f7f7f",
	"#c7c7c7", "#bcbd22", "#dbdb8d", "#17becf", "#9edae5",
}

// Point is a temperature at a minute from the start of the program.
type Point struct {
	Minute int `json:"minute"`
	Temp   int `json:"temp"`
}

// Series is the line drawn for one phase.
type Series struct {
	Phase  int     `json:"phase"`
	Label  string  `json:"label"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

// Chart is a rendered firing curve.
type Chart struct {
	Title        string   `json:"title"`
	RoomTemp     int      `json:"room_temp"`
	TotalMinutes int      `json:"total_minutes"`
	TotalTime    string   `json:"total_time"`
	Series       []Series `json:"series"`
}

// Render draws c phase by phase. A ramp goes from the start temperature to the end
// temperature, then stays flat for the holding time; a zero velocity phase is flat.
// Phases without a colour get the next palette entry for their position. Nothing
// else on the curve is modified.
func Render(title string, c *curve.FiringCurve) Chart {
	ch := Chart{
		Title:        title,
		RoomTemp:     c.RoomTemp(),
		TotalMinutes: c.TotalTimeMinutes(),
		TotalTime:    c.FormatTotalTime(),
		Series:       make([]Series, 0, c.Len()),
	}

	elapsed := 0
	for i, p := range c.All() {
		if p.Color() == "" {
			p.SetColor(Palette[i%len(Palette)])
		}
		start, end := elapsed, elapsed+p.Duration()
		top := p.EndTemp()
		if p.Velocity() == 0 {
			top = p.StartTemp()
		}

		points := []Point{{Minute: start, Temp: p.StartTemp()}}
		if p.HoldingTime() != 0 {
			points = append(points, Point{Minute: end - p.HoldingTime(), Temp: top})
		}
		points = append(points, Point{Minute: end, Temp: top})

		ch.Series = append(ch.Series, Series{
			Phase:  i,
			Label:  fmt.Sprintf("Phase %d", i+1),
			Color:  p.Color(),
			Points: points,
		})
		elapsed = end
	}
	return ch
}
