// Package ask sends one question to the schedule assistant and prints the
// answer.
package ask

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/riverline/pkg/assistant"
)

type Ask struct {
	Assistant *assistant.Assistant
	Mode      assistant.Mode
	Prompt    string
	// Width wraps the answer; 0 leaves it as is.
	Width int
	// Out defaults to color.Output.
	Out io.Writer
}

func (a *Ask) out() io.Writer {
	if a.Out == nil {
		return color.Output
	}
	return a.Out
}

func (a *Ask) Do(ctx context.Context) (assistant.Message, error) {
	if a.Assistant == nil {
		return assistant.Message{}, errors.New("can not ask, no assistant")
	}
	msg, err := a.Assistant.Send(ctx, a.Mode, a.Prompt)
	if err != nil {
		return assistant.Message{}, err
	}
	a.print(msg)
	return msg, nil
}

func (a *Ask) print(msg assistant.Message) {
	text := msg.Text
	if a.Width > 0 {
		text = wordwrap.String(text, a.Width)
	}
	_, _ = fmt.Fprintln(a.out(), text)

	if len(msg.Sources) == 0 {
		return
	}
	_, _ = fmt.Fprintln(a.out())
	faint := color.New(color.Faint)
	link := color.New(color.FgCyan, color.Underline)
	_, _ = faint.Fprintln(a.out(), "Fontes:")
	for _, s := range msg.Sources {
		_, _ = faint.Fprintf(a.out(), "  %s ", s.Title)
		_, _ = link.Fprintln(a.out(), s.URI)
	}
}
