package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"firing_curve/internal/builder"
	"firing_curve/internal/chart"
	"firing_curve/internal/glass"
	"firing_curve/internal/prompt"
)

// BuildCmd returns the build command.
func BuildCmd(g *globalOptions) *cobra.Command {
	var (
		p           builder.Params
		interactive bool
		asChart     bool
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Derive a firing curve for a piece of glass",
		Long: `Derive the five-phase firing curve (initial heating, heating to top
temperature, fast cooling, annealing, final cooling) for a glass type, piece
radius, layer count and firing type.

Pass the parameters as flags, or use --interactive to be asked for each one.`,
		Example: `  kilnctl build --glass "Bullseye COE 90" --radius 10 --layers 2 --hold 10 --firing f
  kilnctl build -i`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, opts, err := g.load()
			if err != nil {
				return err
			}
			if interactive {
				p, err = prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()).Params(tables)
				if err != nil {
					return err
				}
			}

			c, plan, err := builder.Build(tables, p, opts)
			if err != nil {
				return err
			}

			title := fmt.Sprintf("%s, %s", plan.Glass.Name, firingName(p.Firing))
			ch := chart.Render(title, c)
			if asChart {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(ch)
			}
			printSummary(cmd.OutOrStdout(), p, plan, ch)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "ask for every parameter")
	cmd.Flags().BoolVar(&asChart, "chart", false, "print the chart series as JSON instead of the summary")
	cmd.Flags().StringVar(&p.Glass, "glass", "", "glass type name (see kilnctl glass)")
	cmd.Flags().StringVar(&p.Oven, "oven", glass.OvenTop, "oven type: t (top-heated) or s (side-heated)")
	cmd.Flags().IntVar(&p.Radius, "radius", 10, "radius of the piece in cm")
	cmd.Flags().IntVar(&p.Layers, "layers", 2, "number of glass layers")
	cmd.Flags().IntVar(&p.HoldMinutes, "hold", 10, "minutes held at the top temperature")
	cmd.Flags().IntVar(&p.RoomTemp, "room", 20, "room temperature in °C")
	cmd.Flags().StringVar(&p.Firing, "firing", builder.FiringFull, "firing type: f (full fuse), s (slump) or t (tack fuse)")
	return cmd
}

func firingName(firing string) string {
	switch firing {
	case builder.FiringFull:
		return "full fuse"
	case builder.FiringSlump:
		return "slump"
	case builder.FiringTack:
		return "tack fuse"
	default:
		return firing
	}
}
