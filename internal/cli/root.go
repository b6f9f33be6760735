package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with values
// injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the mindmesh CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree.
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configFile string
	)

	root := &cobra.Command{
		Use:          "mindmesh",
		Short:        "MindMesh edits and renders mind map diagrams",
		Long:         `MindMesh is a CLI tool for building mind maps as directed graphs: connect topics with six different tools, bend connections through waypoints, collapse branches, and render the result as a diagram.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("mindmesh %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ~/.config/mindmesh/config.toml)")

	root.AddCommand(newNewCmd(&configFile))
	root.AddCommand(newListCmd(&configFile))
	root.AddCommand(newShowCmd(&configFile))
	root.AddCommand(newDeleteCmd(&configFile))
	root.AddCommand(newEditCmd(&configFile))
	root.AddCommand(newRenderCmd(&configFile))
	root.AddCommand(newExportCmd(&configFile))
	root.AddCommand(newImportCmd(&configFile))
	root.AddCommand(newRepackCmd(&configFile))
	root.AddCommand(newServeCmd(&configFile))

	return root.ExecuteContext(ctx)
}
