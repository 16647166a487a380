package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/riverline/pkg/commands/options"
	"tableflip.dev/riverline/pkg/printers"
	"tableflip.dev/riverline/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}
	out := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Arrivals grouped by boat within a time window.",
		Long: `Report lists observed arrivals grouped by boat within the specified time window.

Examples:
  riverline report
  riverline report --window 3d
  riverline report --window 1w2d`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			duration, label, err := timeutil.ParseWindow(wo.Window)
			if err != nil {
				return handle(cmd, err)
			}
			until := time.Now()
			since := until.Add(-duration)

			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				result, err := e.app.ArrivalReport(cmd.Context(), since, until)
				if err != nil {
					return err
				}
				if oo.JSON {
					return oo.Print(result)
				}
				pp := printers.PrettyPrint{ShowID: out.ShowID}
				pp.Report(result, label)
				return nil
			}))
		},
	}

	options.AddWindowArgs(cmd, wo)
	options.AddShowIDArgs(cmd, out)
	topLevel.AddCommand(cmd)
}
