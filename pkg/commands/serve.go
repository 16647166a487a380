package commands

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/riverline/pkg/api"
	"tableflip.dev/riverline/pkg/app"
)

func addServe(topLevel *cobra.Command) {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API, the SVG map and Prometheus metrics over HTTP.",
		Long: `Serve exposes boats, schedules, stops, arrivals, the route map and the
assistant over HTTP. Destructive requests must carry ?confirm=true.`,
		Example: `
riverline serve
riverline serve --addr :8081
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				e.app.Confirm = app.ContextConfirmer

				a, err := e.newAssistant(cmd.Context(), "")
				if err != nil {
					return err
				}
				if addr == "" {
					addr = viper.GetString("serve.addr")
				}
				srv := &api.Server{
					App:            e.app,
					Assistant:      a,
					Metrics:        e.metrics,
					Logger:         e.logger,
					Addr:           addr,
					AllowedOrigins: viper.GetStringSlice("serve.allowed_origins"),
					OnListening: func(a net.Addr) {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "riverline API listening on http://%s\n", a)
					},
				}
				return srv.Serve(cmd.Context())
			}))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", fmt.Sprintf("listen address (default serve.addr or %s)", api.DefaultAddr))
	topLevel.AddCommand(cmd)
}
