package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/riverline/pkg/timeutil"
)

// WindowOptions select a time window ending now.
type WindowOptions struct {
	Window string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVar(&o.Window, "window", timeutil.DefaultWindow,
		"Time window to include, for example 3d, 1w or 1w2d.")
}
