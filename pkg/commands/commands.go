package commands

import (
	"errors"
	"strings"

	"github.com/fatih/color"
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/riverline/pkg/app"
	"tableflip.dev/riverline/pkg/commands/options"
)

var (
	oo      = &options.OutputOptions{}
	globals = &options.GlobalOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "riverline",
		Short: base.Wrap80("River boat schedules and arrivals for the Amazon, on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddGlobalArgs(cmd, globals)
	options.AddOutputArg(cmd, oo)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addBoats(topLevel)
	addSchedules(topLevel)
	addStops(topLevel)
	addRoutes(topLevel)
	addLogs(topLevel)
	addDashboard(topLevel)
	addReport(topLevel)
	addMap(topLevel)
	addAsk(topLevel)
	addServe(topLevel)
	addMCP(topLevel)
	addWatch(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// handle turns a declined confirmation into a quiet no-op and renders other
// errors through the output options.
func handle(cmd *cobra.Command, err error) error {
	if errors.Is(err, app.ErrDeclined) {
		if oo.JSON {
			return oo.Print(map[string]bool{"cancelled": true})
		}
		_, _ = color.New(color.Faint).Fprintln(cmd.OutOrStdout(), "Cancelado.")
		return nil
	}
	if err != nil {
		cmd.SilenceUsage = true
	}
	return oo.HandleError(err)
}

func done(cmd *cobra.Command, format string, args ...any) {
	_, _ = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}

// blank names are ignored without touching the store, the way an empty form
// field is.
func blank(name string) bool {
	return strings.TrimSpace(name) == ""
}
