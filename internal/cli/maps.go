package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmesh/pkg/errors"
	"github.com/matzehuels/mindmesh/pkg/mindmap"
	"github.com/matzehuels/mindmesh/pkg/snapshot"
	"github.com/matzehuels/mindmesh/pkg/storage"
)

// withStore loads the config, opens the selected storage backend, runs
// fn, and closes the backend again. All map commands go through this.
func withStore(ctx context.Context, configFile string, fn func(storage.Store) error) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(ctx)
	return fn(store)
}

// loadMap fetches and rehydrates a stored map.
func loadMap(ctx context.Context, store storage.Store, mapID string) (*mindmap.Store, error) {
	if err := errors.ValidateMapID(mapID); err != nil {
		return nil, err
	}
	snap, err := store.Load(ctx, mapID)
	if err != nil {
		return nil, err
	}
	return snapshot.ToStore(snap)
}

// saveMap snapshots and persists a map.
func saveMap(ctx context.Context, store storage.Store, mapID string, st *mindmap.Store) error {
	return store.Save(ctx, mapID, snapshot.FromStore(st))
}

func newNewCmd(configFile *string) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "new <map-id>",
		Short: "Create an empty map with a root node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mapID := args[0]
			if err := errors.ValidateMapID(mapID); err != nil {
				return err
			}
			return withStore(ctx, *configFile, func(store storage.Store) error {
				if _, err := store.Load(ctx, mapID); err == nil {
					return errors.New(errors.ErrCodeInvalidInput, "map %q already exists", mapID)
				} else if !errors.Is(err, errors.ErrCodeMapNotFound) {
					return err
				}

				st := mindmap.New()
				if label != "" {
					if err := st.UpdateNode(mindmap.RootNodeID, mindmap.NodePatch{Label: &label}); err != nil {
						return err
					}
				}
				if err := saveMap(ctx, store, mapID, st); err != nil {
					return err
				}
				printSuccess("Created map %s", StyleValue.Render(mapID))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "label for the root node")
	return cmd
}

func newListCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored maps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, *configFile, func(store storage.Store) error {
				ids, err := store.List(ctx)
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					printInfo("No maps yet. Create one with %s", StyleValue.Render("mindmesh new <map-id>"))
					return nil
				}
				for _, id := range ids {
					fmt.Println(id)
				}
				return nil
			})
		},
	}
}

func newShowCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <map-id>",
		Short: "Show a map's structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, *configFile, func(store storage.Store) error {
				st, err := loadMap(ctx, store, args[0])
				if err != nil {
					return err
				}
				printMap(st, args[0])
				return nil
			})
		},
	}
}

// printMap prints a textual outline of the visible graph.
func printMap(st *mindmap.Store, mapID string) {
	fmt.Println(StyleTitle.Render(mapID))
	printStats(st.NodeCount(), st.EdgeCount(), len(st.Collapsed()))

	var nodes []mindmap.Node
	for _, n := range st.VisibleNodes() {
		if !n.IsWaypoint() {
			nodes = append(nodes, n)
		}
	}
	sortOutline(nodes)
	outbound := visibleOutbound(st)

	for _, n := range nodes {
		marker := "•"
		if st.IsCollapsed(n.ID) {
			marker = "+"
		}
		fmt.Printf("  %s %s %s\n", StyleDim.Render(marker), StyleValue.Render(n.DisplayLabel()), StyleDim.Render("("+n.ID+")"))
		for _, e := range outbound[n.ID] {
			target, ok := st.Node(e.Target)
			if !ok || target.IsWaypoint() {
				continue
			}
			line := fmt.Sprintf("%s %s", iconArrow, target.DisplayLabel())
			if e.Label != "" {
				line += " [" + e.Label + "]"
			}
			fmt.Println("      " + StyleDim.Render(line))
		}
	}
}

// visibleOutbound groups the visible edges by source node, so outlines
// show the same connections a render of the map draws: collapsed
// branches contribute no lines.
func visibleOutbound(st *mindmap.Store) map[string][]mindmap.Edge {
	out := make(map[string][]mindmap.Edge)
	for _, e := range st.VisibleEdges() {
		out[e.Source] = append(out[e.Source], e)
	}
	return out
}

func newDeleteCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <map-id>",
		Short: "Delete a stored map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mapID := args[0]
			if err := errors.ValidateMapID(mapID); err != nil {
				return err
			}
			return withStore(ctx, *configFile, func(store storage.Store) error {
				if err := store.Delete(ctx, mapID); err != nil {
					return err
				}
				printSuccess("Deleted map %s", StyleValue.Render(mapID))
				return nil
			})
		},
	}
}
