package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"firing_curve/internal/glass"
)

// GlassCmd returns the glass command listing known glass types.
func GlassCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "glass",
		Short: "List glass types and their firing temperatures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, _, err := g.load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			bold := color.New(color.Bold)
			bold.Fprintf(out, "Glass types (initial melt point %d °C)\n", tables.InitialMeltPoint)

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tFULL FUSE\tSLUMP\tTACK\tANNEAL\tOVENS")
			for _, t := range tables.Types() {
				ovens := make([]string, 0, 2)
				for _, o := range glass.AllowedOvens(t.Category) {
					ovens = append(ovens, glass.OvenName(o))
				}
				fmt.Fprintf(tw, "%s\t%d-%d\t%d-%d\t%d\t%d/%d\t%s\n",
					t.Name,
					t.FullFuseTop[0], t.FullFuseTop[1],
					t.SlumpTop[0], t.SlumpTop[1],
					t.TackFuseTop,
					t.UpperAnneal, t.LowerAnneal,
					strings.Join(ovens, ", "),
				)
			}
			return tw.Flush()
		},
	}
}
