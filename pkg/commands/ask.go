package commands

import (
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/riverline/pkg/assistant"
	"tableflip.dev/riverline/pkg/commands/options"
	"tableflip.dev/riverline/pkg/runner/ask"
)

func addAsk(topLevel *cobra.Command) {
	ao := &options.AskOptions{}

	cmd := &cobra.Command{
		Use:     "ask [question]",
		Aliases: []string{"perguntar"},
		Short:   "Ask the schedule assistant.",
		Long: `Ask sends a question, together with the current boats, schedules and recent
arrivals, to the assistant.

Modes:
  fast      quick answers
  maps      answers grounded on Google Maps near assistant.location
  thinking  slower reasoning for complex questions

--image extracts schedules from a photo of a timetable and --audio transcribes
a recorded question; both ignore --mode.`,
		Example: `
riverline ask "Qual lancha sai para Tefé na sexta?"
riverline ask --mode maps "Onde fica o porto de Coari?"
riverline ask --image quadro.jpg
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			mode, err := askMode(ao, prompt)
			if err != nil {
				return handle(cmd, err)
			}
			return handle(cmd, withEnv(cmd.Context(), func(e *env) error {
				a, err := e.newAssistant(cmd.Context(), ao.Location)
				if err != nil {
					return err
				}
				r := ask.Ask{Assistant: a, Mode: mode, Prompt: prompt, Width: ao.Width}
				if oo.JSON {
					r.Out = io.Discard
				}
				msg, err := r.Do(cmd.Context())
				if err != nil {
					return err
				}
				if oo.JSON {
					return oo.Print(msg)
				}
				return nil
			}))
		},
	}

	options.AddAskArgs(cmd, ao)
	_ = cmd.RegisterFlagCompletionFunc("mode", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return assistant.TextModes(), cobra.ShellCompDirectiveNoFileComp
	})
	topLevel.AddCommand(cmd)
}

func askMode(ao *options.AskOptions, prompt string) (assistant.Mode, error) {
	switch {
	case ao.Image != "":
		data, mimeType, err := readMedia(ao.Image)
		if err != nil {
			return nil, err
		}
		return assistant.ImageAnalysis{Image: data, MIMEType: mimeType, Prompt: prompt, Filename: filepath.Base(ao.Image)}, nil
	case ao.Audio != "":
		data, mimeType, err := readMedia(ao.Audio)
		if err != nil {
			return nil, err
		}
		return assistant.AudioTranscription{Audio: data, MIMEType: mimeType}, nil
	default:
		return assistant.ParseMode(ao.Mode)
	}
}

// readMedia loads a file and guesses its MIME type from the extension, then
// from its content.
func readMedia(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return data, mimeType, nil
}
