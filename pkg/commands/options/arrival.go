package options

import (
	"github.com/spf13/cobra"
)

// ArrivalOptions are the fields of the arrival logger form.
type ArrivalOptions struct {
	StopID    string
	Direction string
	Time      string
	Notes     string
}

func AddArrivalArgs(cmd *cobra.Command, o *ArrivalOptions) {
	cmd.Flags().StringVarP(&o.StopID, "stop", "s", "",
		"Stop id.")
	cmd.Flags().StringVar(&o.Direction, "direction", "",
		"up (Subindo) or down (Descendo). Defaults to up.")
	cmd.Flags().StringVarP(&o.Time, "time", "t", "",
		"Observed time, HH:MM. Defaults to now.")
	cmd.Flags().StringVarP(&o.Notes, "notes", "n", "",
		"Observations.")
}
