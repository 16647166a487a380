package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/riverline/pkg/printers"
)

func addDashboard(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"inicio"},
		Short:   "Totals and the next departures.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				d, err := e.app.Dashboard(cmd.Context())
				if err != nil {
					return err
				}
				if oo.JSON {
					return oo.Print(d)
				}
				pp := printers.PrettyPrint{}
				pp.Dashboard(d)
				return nil
			}))
		},
	}
	topLevel.AddCommand(cmd)
}
