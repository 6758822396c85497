package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/mazerepair/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the server and block until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := options(cmd)
			if err != nil {
				return err
			}
			opts = append(opts, app.WithLogOutput(cmd.ErrOrStderr()))
			return c.app.Serve(cmd.Context(), opts...)
		},
	}
}
