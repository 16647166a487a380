package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/riverline/pkg/runner/watch"
	"tableflip.dev/riverline/pkg/store"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow changes made by other riverline processes.",
		Long: `Watch reloads the data whenever another process writes to the diskv store
and prints the new totals. Other drivers are not watched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				d, ok := e.kv.(*store.Diskv)
				if !ok {
					return errors.New("watch needs the diskv store (store.driver: diskv)")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Observando %s\n", d.BasePath())
				w := watch.Watch{App: e.app, BasePath: d.BasePath(), Logger: e.logger}
				return w.Do(cmd.Context())
			}))
		},
	}
	topLevel.AddCommand(cmd)
}
