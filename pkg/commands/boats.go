package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/riverline/pkg/app"
	"tableflip.dev/riverline/pkg/commands/options"
	"tableflip.dev/riverline/pkg/printers"
)

func addBoats(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "boats",
		Aliases: []string{"boat", "lanchas"},
		Short:   "Manage the fleet of boats.",
	}

	addBoatsList(cmd)
	addBoatsAdd(cmd)
	addBoatsRename(cmd)
	addBoatsDetails(cmd)
	addBoatsDuplicate(cmd)
	addBoatsRemove(cmd)
	addBoatsRestore(cmd)
	addBoatsWeek(cmd)

	topLevel.AddCommand(cmd)
}

func addBoatsList(topLevel *cobra.Command) {
	out := &options.OutputOptions{}
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every boat.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				boats, err := e.app.Boats(cmd.Context())
				if err != nil {
					return err
				}
				if oo.JSON {
					return oo.Print(boats)
				}
				pp := printers.PrettyPrint{ShowID: out.ShowID}
				pp.Boats(boats)
				return nil
			}))
		},
	}
	options.AddShowIDArgs(cmd, out)
	topLevel.AddCommand(cmd)
}

func addBoatsAdd(topLevel *cobra.Command) {
	do := &options.DetailsOptions{}
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a boat.",
		Example: `
riverline boats add "Lancha Nova Aliança"
riverline boats add "Ajato 2001" --capacity 90 --contact 92988887777
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if blank(args[0]) {
				return nil
			}
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				ctx := cmd.Context()
				boat, err := e.app.CreateBoat(ctx, args[0])
				if err != nil {
					return err
				}
				if d, ok := details(cmd, do); ok {
					if boat, err = e.app.UpdateBoatDetails(ctx, boat.ID, d); err != nil {
						return err
					}
				}
				if oo.JSON {
					return oo.Print(boat)
				}
				done(cmd, "Lancha %s cadastrada (%s).", boat.Name, boat.ID)
				return nil
			}))
		},
	}
	options.AddDetailsArgs(cmd, do)
	topLevel.AddCommand(cmd)
}

func addBoatsRename(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a boat.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if blank(args[1]) {
				return nil
			}
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				boat, err := e.app.RenameBoat(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				if oo.JSON {
					return oo.Print(boat)
				}
				done(cmd, "Lancha renomeada para %s.", boat.Name)
				return nil
			}))
		},
	}
	topLevel.AddCommand(cmd)
}

func addBoatsDetails(topLevel *cobra.Command) {
	do := &options.DetailsOptions{}
	cmd := &cobra.Command{
		Use:   "details <id>",
		Short: "Set a boat's contact and capacity.",
		Example: `
riverline boats details b1 --capacity 70
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				d, _ := details(cmd, do)
				boat, err := e.app.UpdateBoatDetails(cmd.Context(), args[0], d)
				if err != nil {
					return err
				}
				if oo.JSON {
					return oo.Print(boat)
				}
				done(cmd, "%s atualizada.", boat.Name)
				return nil
			}))
		},
	}
	options.AddDetailsArgs(cmd, do)
	topLevel.AddCommand(cmd)
}

// details returns only the fields whose flags were set.
func details(cmd *cobra.Command, do *options.DetailsOptions) (app.BoatDetails, bool) {
	var d app.BoatDetails
	if cmd.Flags().Changed("contact") {
		d.Contact = &do.Contact
	}
	if cmd.Flags().Changed("capacity") {
		d.Capacity = &do.Capacity
	}
	return d, d.Contact != nil || d.Capacity != nil
}

func addBoatsDuplicate(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "duplicate <id>",
		Short: "Copy a boat together with its schedules.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				boat, schedules, err := e.app.DuplicateBoat(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if oo.JSON {
					return oo.Print(map[string]any{"boat": boat, "schedules": schedules})
				}
				done(cmd, "Lancha %s criada com %d horários.", boat.Name, len(schedules))
				return nil
			}))
		},
	}
	topLevel.AddCommand(cmd)
}

func addBoatsRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a boat and its schedules.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				res, err := e.app.DeleteBoat(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if oo.JSON {
					return oo.Print(map[string]any{"boat": res.Boat, "removedSchedules": res.Schedules, "removedLogs": res.Logs})
				}
				done(cmd, "%s removida com %d horários.", res.Boat.Name, res.Schedules)
				return nil
			}))
		},
	}
	topLevel.AddCommand(cmd)
}

func addBoatsRestore(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "restore-defaults",
		Short: "Bring back every built-in boat that was deleted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				n, err := e.app.RestoreDefaults(cmd.Context())
				if err != nil {
					return err
				}
				if oo.JSON {
					return oo.Print(map[string]int{"restored": n})
				}
				done(cmd, "%d lanchas restauradas.", n)
				return nil
			}))
		},
	}
	topLevel.AddCommand(cmd)
}

func addBoatsWeek(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "week <id>",
		Short: "Show a boat's itinerary as a week.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				return printWeek(cmd.Context(), e, args[0])
			}))
		},
	}
	topLevel.AddCommand(cmd)
}

func printWeek(ctx context.Context, e *env, boatID string) error {
	boat, err := e.app.Boat(ctx, boatID)
	if err != nil {
		return err
	}
	schedules, err := e.app.BoatSchedules(ctx, boatID)
	if err != nil {
		return err
	}
	if oo.JSON {
		return oo.Print(map[string]any{"boat": boat, "schedules": schedules})
	}
	stops, err := e.app.Stops(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.Week(boat, schedules, stops, time.Now().Weekday())
	return nil
}
