package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/riverline/pkg/app"
	"tableflip.dev/riverline/pkg/commands/options"
	"tableflip.dev/riverline/pkg/model"
	"tableflip.dev/riverline/pkg/printers"
)

func addSchedules(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "schedules",
		Aliases: []string{"schedule", "horarios"},
		Short:   "Manage the weekly itineraries.",
	}

	addSchedulesList(cmd)
	addSchedulesSet(cmd)
	addSchedulesRemove(cmd)
	addSchedulesWeek(cmd)

	topLevel.AddCommand(cmd)
}

func addSchedulesList(topLevel *cobra.Command) {
	bo := &options.BoatOptions{}
	fo := &options.FilterOptions{}
	io := &options.InteractiveOptions{}
	out := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List schedules ordered by day and time.",
		Example: `
riverline schedules list
riverline schedules list --boat b1 --filter tefé
riverline schedules list -i
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				ctx := cmd.Context()
				if bo.BoatID == "" && io.Interactive {
					id, err := pickBoat(ctx, e)
					if err != nil {
						return err
					}
					bo.BoatID = id
				}
				schedules, err := e.app.FilterSchedules(ctx, bo.BoatID, fo.Query)
				if err != nil {
					return err
				}
				if oo.JSON {
					return oo.Print(schedules)
				}
				snap, err := e.app.Snapshot(ctx)
				if err != nil {
					return err
				}
				title := "Itinerário"
				if bo.BoatID != "" {
					title = model.BoatName(snap.Boats, bo.BoatID)
				}
				pp := printers.PrettyPrint{ShowID: out.ShowID}
				pp.Schedules(title, schedules, snap.Boats, snap.Stops)
				return nil
			}))
		},
	}

	options.AddBoatArgs(cmd, bo)
	options.AddFilterArgs(cmd, fo)
	options.InteractiveArgs(cmd, io)
	options.AddShowIDArgs(cmd, out)
	topLevel.AddCommand(cmd)
}

func addSchedulesSet(topLevel *cobra.Command) {
	bo := &options.BoatOptions{}
	so := &options.ScheduleOptions{}
	io := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "set",
		Aliases: []string{"add", "edit"},
		Short:   "Create a schedule, or edit one with --id.",
		Example: `
riverline schedules set --boat b1 --stop 4 --time 06:30 --day sexta --direction down
riverline schedules set --id 5d7c --boat b1 --stop 4 --time 07:00
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				ctx := cmd.Context()
				if io.Interactive {
					var err error
					if bo.BoatID == "" {
						if bo.BoatID, err = pickBoat(ctx, e); err != nil {
							return err
						}
					}
					if so.StopID == "" {
						if so.StopID, err = pickStop(ctx, e); err != nil {
							return err
						}
					}
				}
				sc, err := e.app.UpsertSchedule(ctx, app.ScheduleInput{
					BoatID:        bo.BoatID,
					StopID:        so.StopID,
					Direction:     so.Direction,
					DayOfWeek:     so.Day,
					ExpectedTime:  so.Time,
					DeparturePort: so.Port,
				}, so.ID)
				if err != nil {
					return err
				}
				if oo.JSON {
					return oo.Print(sc)
				}
				done(cmd, "Horário salvo: %s %s (%s).", sc.DayOfWeek, sc.ExpectedTime, sc.ID)
				return nil
			}))
		},
	}

	options.AddBoatArgs(cmd, bo)
	options.AddScheduleArgs(cmd, so)
	options.InteractiveArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

func addSchedulesRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a schedule.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				if err := e.app.DeleteSchedule(cmd.Context(), args[0]); err != nil {
					return err
				}
				if oo.JSON {
					return oo.Print(map[string]string{"deleted": args[0]})
				}
				done(cmd, "Horário removido.")
				return nil
			}))
		},
	}
	topLevel.AddCommand(cmd)
}

func addSchedulesWeek(topLevel *cobra.Command) {
	bo := &options.BoatOptions{}
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Departures per boat and day, or one boat's week with --boat.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				ctx := cmd.Context()
				if bo.BoatID != "" {
					return printWeek(ctx, e, bo.BoatID)
				}
				snap, err := e.app.Snapshot(ctx)
				if err != nil {
					return err
				}
				if oo.JSON {
					return oo.Print(snap.Schedules)
				}
				pp := printers.PrettyPrint{}
				pp.Summary(snap.Boats, snap.Schedules)
				return nil
			}))
		},
	}
	options.AddBoatArgs(cmd, bo)
	topLevel.AddCommand(cmd)
}
