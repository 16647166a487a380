package options

import (
	"github.com/spf13/cobra"
)

// ScheduleOptions are the fields of a schedule form.
type ScheduleOptions struct {
	ID        string
	StopID    string
	Time      string
	Day       string
	Direction string
	Port      string
}

func AddScheduleArgs(cmd *cobra.Command, o *ScheduleOptions) {
	cmd.Flags().StringVar(&o.ID, "id", "",
		"Edit the schedule with this id instead of creating one.")
	cmd.Flags().StringVarP(&o.StopID, "stop", "s", "",
		"Stop id.")
	cmd.Flags().StringVarP(&o.Time, "time", "t", "",
		"Expected time, HH:MM.")
	cmd.Flags().StringVarP(&o.Day, "day", "d", "",
		"Day of week, e.g. Segunda or mon. Defaults to Segunda.")
	cmd.Flags().StringVar(&o.Direction, "direction", "",
		"up (Subindo) or down (Descendo). Defaults to up.")
	cmd.Flags().StringVar(&o.Port, "port", "",
		"Departure port in Manaus.")
}

// FilterOptions narrows a listing.
type FilterOptions struct {
	Query string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Query, "filter", "f", "",
		"Only rows whose stop, day or port contains this text.")
}
