package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/riverline/pkg/schematic"
)

func addMap(topLevel *cobra.Command) {
	var file string
	cmd := &cobra.Command{
		Use:     "map",
		Aliases: []string{"mapa"},
		Short:   "Render the schematic route map as SVG.",
		Example: `
riverline map --out rotas.svg
riverline map > rotas.svg
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				snap, err := e.app.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				if oo.JSON {
					return oo.Print(schematic.RoutePaths(snap.Routes, snap.Stops))
				}

				var w io.Writer = cmd.OutOrStdout()
				if file != "" && file != "-" {
					f, err := os.Create(file)
					if err != nil {
						return err
					}
					defer func() { _ = f.Close() }()
					w = f
				}
				if err := schematic.Render(w, snap.Routes, snap.Stops); err != nil {
					return err
				}
				if file != "" && file != "-" {
					done(cmd, "Mapa salvo em %s.", file)
				}
				return nil
			}))
		},
	}
	cmd.Flags().StringVarP(&file, "out", "o", "", "Write the SVG to this file instead of stdout.")
	topLevel.AddCommand(cmd)
}
