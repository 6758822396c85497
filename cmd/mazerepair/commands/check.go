package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.trai.ch/mazerepair/internal/app"
	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/mazerepair/internal/ui/output"
	"go.trai.ch/mazerepair/internal/ui/style"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Start the application context on ephemeral ports and shut it down again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := options(cmd)
			if err != nil {
				return err
			}

			logs := cmd.ErrOrStderr()
			if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
				logs = io.Discard
			}
			opts = append(opts, app.WithLogOutput(logs))

			report := c.app.Check(cmd.Context(), opts...)
			printReport(cmd.OutOrStdout(), report)
			if !report.Passed {
				return domain.ErrCheckFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolP("quiet", "q", false, "Discard application logs and print only the result")
	return cmd
}

func printReport(w io.Writer, report app.Report) {
	out := output.New(w)

	if report.Passed {
		mark := out.String(style.Check).Foreground(termenv.RGBColor(string(style.Green)))
		_, _ = fmt.Fprintf(out, "%s %s (%s)\n", mark, report.Name, report.Duration.Round(time.Millisecond))
		return
	}

	mark := out.String(style.Cross).Foreground(termenv.RGBColor(string(style.Red)))
	_, _ = fmt.Fprintf(out, "%s %s\n", mark, report.Name)
	for line := range strings.SplitSeq(report.Cause(), "\n") {
		if line == "" {
			_, _ = fmt.Fprintln(out)
			continue
		}
		_, _ = fmt.Fprintf(out, "    %s\n", line)
	}
}
