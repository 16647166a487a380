package options

import (
	"github.com/spf13/cobra"
)

// BoatOptions selects a boat.
type BoatOptions struct {
	BoatID string
}

func AddBoatArgs(cmd *cobra.Command, o *BoatOptions) {
	cmd.Flags().StringVarP(&o.BoatID, "boat", "b", "",
		"Boat id.")
}

// DetailsOptions carries the optional boat fields.
type DetailsOptions struct {
	Contact  string
	Capacity int
}

func AddDetailsArgs(cmd *cobra.Command, o *DetailsOptions) {
	cmd.Flags().StringVar(&o.Contact, "contact", "",
		"Contact phone.")
	cmd.Flags().IntVar(&o.Capacity, "capacity", 0,
		"Passenger capacity.")
}
