package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/riverline/pkg/commands/options"
	"tableflip.dev/riverline/pkg/model"
	"tableflip.dev/riverline/pkg/printers"
	"tableflip.dev/riverline/pkg/runner/log"
)

func addLogs(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "logs",
		Aliases: []string{"log", "chegadas"},
		Short:   "Record and review observed arrivals.",
	}

	addLogsList(cmd)
	addLogsAdd(cmd)
	addLogsRemove(cmd)
	addLogsClear(cmd)

	topLevel.AddCommand(cmd)
}

func addLogsList(topLevel *cobra.Command) {
	bo := &options.BoatOptions{}
	out := &options.OutputOptions{}
	var limit int
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List arrivals, most recent first.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				ctx := cmd.Context()
				var (
					logs []model.ArrivalLog
					err  error
				)
				if bo.BoatID != "" {
					logs, err = e.app.BoatLogs(ctx, bo.BoatID)
				} else {
					logs, err = e.app.Logs(ctx)
				}
				if err != nil {
					return err
				}
				if limit > 0 && len(logs) > limit {
					logs = logs[:limit]
				}
				if oo.JSON {
					return oo.Print(logs)
				}
				snap, err := e.app.Snapshot(ctx)
				if err != nil {
					return err
				}
				pp := printers.PrettyPrint{ShowID: out.ShowID}
				pp.Logs(logs, snap.Boats, snap.Stops)
				return nil
			}))
		},
	}
	options.AddBoatArgs(cmd, bo)
	options.AddShowIDArgs(cmd, out)
	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many.")
	topLevel.AddCommand(cmd)
}

func addLogsAdd(topLevel *cobra.Command) {
	bo := &options.BoatOptions{}
	ao := &options.ArrivalOptions{}
	io := &options.InteractiveOptions{}
	var newStop string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record that a boat arrived at a stop.",
		Example: `
riverline logs add --boat b1 --stop 3 --time 07:40 --notes "atrasou por causa da chuva"
riverline logs add -i
riverline logs add --boat b2 --new-stop "Vila Nova"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				l := log.Log{
					App:          e.app,
					BoatID:       bo.BoatID,
					StopID:       ao.StopID,
					NewStop:      newStop,
					Direction:    ao.Direction,
					ReportedTime: ao.Time,
					Notes:        ao.Notes,
				}
				if io.Interactive {
					l.PickBoat = func() (string, error) { return pickBoat(cmd.Context(), e) }
					l.PickStop = func() (string, error) { return pickStop(cmd.Context(), e) }
				}
				entry, err := l.Do(cmd.Context())
				if err != nil {
					return err
				}
				if oo.JSON {
					return oo.Print(entry)
				}
				done(cmd, "Chegada registrada: %s.", entry.Notes)
				return nil
			}))
		},
	}
	options.AddBoatArgs(cmd, bo)
	options.AddArrivalArgs(cmd, ao)
	options.InteractiveArgs(cmd, io)
	cmd.Flags().StringVar(&newStop, "new-stop", "", "Create this stop on the main route and log the arrival there.")
	topLevel.AddCommand(cmd)
}

func addLogsRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete one arrival record.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				if err := e.app.DeleteLog(cmd.Context(), args[0]); err != nil {
					return err
				}
				if oo.JSON {
					return oo.Print(map[string]string{"deleted": args[0]})
				}
				done(cmd, "Registro apagado.")
				return nil
			}))
		},
	}
	topLevel.AddCommand(cmd)
}

func addLogsClear(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the whole arrival history.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				n, err := e.app.ClearLogs(cmd.Context())
				if err != nil {
					return err
				}
				if oo.JSON {
					return oo.Print(map[string]int{"removed": n})
				}
				done(cmd, "%d registros apagados.", n)
				return nil
			}))
		},
	}
	topLevel.AddCommand(cmd)
}
