// Package cli implements the kilnctl commands.
package cli

import (
	"github.com/spf13/cobra"

	"firing_curve/internal/builder"
	"firing_curve/internal/config"
	"firing_curve/internal/glass"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	tablesPath string
}

// NewRootCmd returns the kilnctl root command with its subcommands.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "kilnctl",
		Short: "Build glass-fusing kiln firing curves",
		Long: `kilnctl derives kiln firing curves from the glass reference tables and prints
them phase by phase, without running the API server.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config.yml (default: ./configs/config.yml)")
	root.PersistentFlags().StringVar(&opts.tablesPath, "tables", "", "path to the glass tables (overrides tables.path)")

	root.AddCommand(BuildCmd(opts))
	root.AddCommand(GlassCmd(opts))
	return root
}

// load reads the configuration and the glass tables it points to.
func (o *globalOptions) load() (*glass.Tables, builder.Options, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, builder.Options{}, err
	}
	path := cfg.Tables.Path
	if o.tablesPath != "" {
		path = o.tablesPath
	}
	tables, err := glass.Load(path)
	if err != nil {
		return nil, builder.Options{}, err
	}
	return tables, builder.Options{
		MaxHeatingVelocity:   cfg.Builder.MaxHeatingVelocity,
		FinalCoolingVelocity: cfg.Builder.FinalCoolingVelocity,
	}, nil
}
