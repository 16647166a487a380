package options

import (
	"github.com/spf13/cobra"
)

// AskOptions configure an assistant question.
type AskOptions struct {
	Mode     string
	Image    string
	Audio    string
	Location string
	Width    int
}

func AddAskArgs(cmd *cobra.Command, o *AskOptions) {
	cmd.Flags().StringVarP(&o.Mode, "mode", "m", "fast",
		"fast, maps or thinking.")
	cmd.Flags().StringVar(&o.Image, "image", "",
		"Photo of a timetable to extract schedules from.")
	cmd.Flags().StringVar(&o.Audio, "audio", "",
		"Recorded question to transcribe.")
	cmd.Flags().StringVar(&o.Location, "location", "",
		"lat,lng used by maps mode. Overrides assistant.location.")
	cmd.Flags().IntVarP(&o.Width, "width", "w", 80,
		"Wrap answers at this width; 0 disables wrapping.")
}
