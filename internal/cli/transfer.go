package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmesh/pkg/errors"
	"github.com/matzehuels/mindmesh/pkg/snapshot"
	"github.com/matzehuels/mindmesh/pkg/storage"
)

func newExportCmd(configFile *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <map-id>",
		Short: "Export a map as a JSON snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mapID := args[0]

			return withStore(ctx, *configFile, func(store storage.Store) error {
				st, err := loadMap(ctx, store, mapID)
				if err != nil {
					return err
				}
				out := output
				if out == "" {
					out = mapID + ".json"
				}
				if err := snapshot.WriteFile(out, st); err != nil {
					return err
				}
				printSuccess("Exported map %s", StyleValue.Render(mapID))
				printFile(out)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <map-id>.json)")
	return cmd
}

func newImportCmd(configFile *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import <map-id> <file>",
		Short: "Import a JSON snapshot file as a map",
		Long: `Import parses and validates the snapshot before anything is stored:
a malformed file fails with FORMAT_ERROR and never replaces an existing map.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mapID, file := args[0], args[1]
			if err := errors.ValidateMapID(mapID); err != nil {
				return err
			}

			st, err := snapshot.ReadFile(file)
			if err != nil {
				return err
			}

			return withStore(ctx, *configFile, func(store storage.Store) error {
				if !force {
					if _, err := store.Load(ctx, mapID); err == nil {
						return errors.New(errors.ErrCodeInvalidInput, "map %q already exists (use --force to overwrite)", mapID)
					} else if !errors.Is(err, errors.ErrCodeMapNotFound) {
						return err
					}
				}
				if err := saveMap(ctx, store, mapID, st); err != nil {
					return err
				}
				printSuccess("Imported map %s", StyleValue.Render(mapID))
				printStats(st.NodeCount(), st.EdgeCount(), len(st.Collapsed()))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing map")
	return cmd
}
