package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmesh/pkg/storage"
)

func newEditCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <map-id>",
		Short: "Edit a map interactively in the terminal",
		Long: `Edit opens a terminal editor for the map. Navigate the outline with
the arrow keys, create and connect topics with the currently selected
tool, collapse branches, and bend connections through waypoints.

Keys:
  ↑/↓        move cursor
  a          add a child topic under the cursor
  c          mark cursor as connect source, c again to connect to cursor
  t          cycle the connect tool
  r          rename the node under the cursor
  space      collapse/expand the branch under the cursor
  d          delete the node under the cursor
  s          save and quit
  q          quit without saving`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mapID := args[0]

			return withStore(ctx, *configFile, func(store storage.Store) error {
				st, err := loadMap(ctx, store, mapID)
				if err != nil {
					return err
				}

				model := newEditModel(mapID, st)
				final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
				if err != nil {
					return err
				}

				m, ok := final.(editModel)
				if !ok || !m.save {
					printInfo("Discarded changes to %s", mapID)
					return nil
				}
				if err := saveMap(ctx, store, mapID, m.session.Store()); err != nil {
					return err
				}
				printSuccess("Saved map %s", StyleValue.Render(mapID))
				return nil
			})
		},
	}
}
