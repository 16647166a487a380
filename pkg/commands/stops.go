package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/riverline/pkg/commands/options"
	"tableflip.dev/riverline/pkg/printers"
)

func addStops(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "stops",
		Aliases: []string{"stop", "localidades"},
		Short:   "List and add the places boats call at.",
	}

	addStopsList(cmd)
	addStopsAdd(cmd)

	topLevel.AddCommand(cmd)
}

func addStopsList(topLevel *cobra.Command) {
	var route string
	out := &options.OutputOptions{}
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stops, optionally one route's in river order.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				ctx := cmd.Context()
				stops, err := e.app.StopsForRoute(ctx, route)
				if err != nil {
					return err
				}
				if oo.JSON {
					return oo.Print(stops)
				}
				routes, err := e.app.Routes(ctx)
				if err != nil {
					return err
				}
				pp := printers.PrettyPrint{ShowID: out.ShowID}
				pp.Stops(stops, routes)
				return nil
			}))
		},
	}
	cmd.Flags().StringVarP(&route, "route", "r", "", "Only stops on this route.")
	options.AddShowIDArgs(cmd, out)
	topLevel.AddCommand(cmd)
}

func addStopsAdd(topLevel *cobra.Command) {
	var route string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a stop to a route. Defaults to the main route.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				stop, err := e.app.AddStop(cmd.Context(), args[0], route)
				if err != nil {
					return err
				}
				if oo.JSON {
					return oo.Print(stop)
				}
				done(cmd, "Localidade %s adicionada (%s).", stop.Name, stop.ID)
				return nil
			}))
		},
	}
	cmd.Flags().StringVarP(&route, "route", "r", "", "Route id.")
	topLevel.AddCommand(cmd)
}

func addRoutes(topLevel *cobra.Command) {
	out := &options.OutputOptions{}
	cmd := &cobra.Command{
		Use:     "routes",
		Aliases: []string{"rotas"},
		Short:   "List the river routes.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				snap, err := e.app.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				if oo.JSON {
					return oo.Print(snap.Routes)
				}
				pp := printers.PrettyPrint{ShowID: out.ShowID}
				pp.Routes(snap.Routes, snap.Stops)
				return nil
			}))
		},
	}
	options.AddShowIDArgs(cmd, out)
	topLevel.AddCommand(cmd)
}
