// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// GlobalOptions are the persistent flags of the root command.
type GlobalOptions struct {
	Yes       bool
	Config    string
	Ephemeral bool
	LogLevel  string
}

func AddGlobalArgs(cmd *cobra.Command, o *GlobalOptions) {
	cmd.PersistentFlags().BoolVarP(&o.Yes, "yes", "y", false,
		"Answer yes to every confirmation.")
	cmd.PersistentFlags().StringVar(&o.Config, "config", "",
		"Config file, instead of ./.riverline.yaml.")
	cmd.PersistentFlags().BoolVar(&o.Ephemeral, "ephemeral", false,
		"Keep data in memory only; nothing is written.")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "",
		"One of debug, info, warn, error. Overrides log.level.")
}
