package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmesh/pkg/layout"
	"github.com/matzehuels/mindmesh/pkg/storage"
)

func newRepackCmd(configFile *string) *cobra.Command {
	var opts layout.Options

	cmd := &cobra.Command{
		Use:   "repack <map-id>",
		Short: "Reseat a map's nodes on a tidy grid",
		Long: `Repack lays the visible content nodes out on a regular grid and moves
every waypoint to the midpoint of its neighbours. Hidden nodes keep
their positions. Useful for imported maps without usable coordinates.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mapID := args[0]

			return withStore(ctx, *configFile, func(store storage.Store) error {
				st, err := loadMap(ctx, store, mapID)
				if err != nil {
					return err
				}
				if err := layout.Repack(st, opts); err != nil {
					return err
				}
				if err := saveMap(ctx, store, mapID, st); err != nil {
					return err
				}
				printSuccess("Repacked map %s", StyleValue.Render(mapID))
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&opts.CellW, "cell-width", 0, "horizontal grid spacing (default 220)")
	cmd.Flags().Float64Var(&opts.CellH, "cell-height", 0, "vertical grid spacing (default 120)")
	cmd.Flags().IntVar(&opts.Cols, "cols", 0, "grid columns (default 5)")
	return cmd
}
