// Package commands implements the CLI commands for the maze-repair server.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/mazerepair/internal/app"
	"go.trai.ch/mazerepair/internal/build"
)

// Application is what the commands drive.
type Application interface {
	Serve(ctx context.Context, opts ...app.Option) error
	Check(ctx context.Context, opts ...app.Option) app.Report
	EffectiveConfig(ctx context.Context, opts ...app.Option) ([]byte, error)
}

// CLI represents the command line interface for mazerepair.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "mazerepair",
		Short:         "Serve the maze-repair tile-rotation game",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringSliceP("profile", "p", nil, "Active configuration profiles, lowest precedence first")
	rootCmd.PersistentFlags().String("config-dir", "", "Directory with application*.yaml files overriding the embedded ones")
	rootCmd.PersistentFlags().StringArray("set", nil, "Override a configuration key (key=value), may be repeated")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newConfigCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the standard and error output of the root command.
func (c *CLI) SetOutput(out, errOut io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(errOut)
}

// options turns the persistent flags into bootstrap options.
func options(cmd *cobra.Command) ([]app.Option, error) {
	var opts []app.Option

	if profiles, _ := cmd.Flags().GetStringSlice("profile"); len(profiles) > 0 {
		opts = append(opts, app.WithProfiles(profiles...))
	}
	if dir, _ := cmd.Flags().GetString("config-dir"); dir != "" {
		opts = append(opts, app.WithConfigDir(dir))
	}

	pairs, _ := cmd.Flags().GetStringArray("set")
	overrides, err := app.WithOverrides(pairs...)
	if err != nil {
		return nil, err
	}
	return append(opts, overrides), nil
}
