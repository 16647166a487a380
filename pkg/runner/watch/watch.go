// Package watch follows the diskv tree and reloads state when another process
// writes to it.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/riverline/pkg/app"
	"tableflip.dev/riverline/pkg/store"
)

// Watch reloads App whenever the files under BasePath change and prints one
// line per reload.
type Watch struct {
	App      *app.Service
	BasePath string
	Logger   *slog.Logger
	// Out defaults to color.Output.
	Out io.Writer
	// OnReload is called after each successful reload.
	OnReload func()
}

func (w *Watch) out() io.Writer {
	if w.Out == nil {
		return color.Output
	}
	return w.Out
}

func (w *Watch) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return w.Logger
}

func (w *Watch) Do(ctx context.Context) error {
	if w.App == nil {
		return errors.New("can not watch, no service")
	}
	events, err := store.Watch(ctx, w.BasePath)
	if err != nil {
		return err
	}

	stamp := color.New(color.Faint)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			what := "tudo"
			if ev.Type == store.EventKeyChanged {
				what = ev.Key
			}
			if err := w.App.Reload(ctx); err != nil {
				w.logger().Warn("reload failed", "key", what, "err", err)
				continue
			}
			d, err := w.App.Dashboard(ctx)
			if err != nil {
				return err
			}
			_, _ = stamp.Fprint(w.out(), time.Now().Format("15:04:05")+" ")
			_, _ = fmt.Fprintf(w.out(), "%s alterado: %d lanchas, %d horários, %d registros\n", what, d.Boats, d.Schedules, d.Logs)
			if w.OnReload != nil {
				w.OnReload()
			}
		}
	}
}
