package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"tableflip.dev/riverline/pkg/snake"
)

func pickBoat(ctx context.Context, e *env) (string, error) {
	boats, err := e.app.Boats(ctx)
	if err != nil {
		return "", err
	}
	choices := make([]snake.Choice, 0, len(boats))
	for _, b := range boats {
		hint := ""
		if b.Capacity > 0 {
			hint = strconv.Itoa(b.Capacity) + " lugares"
		}
		choices = append(choices, snake.Choice{ID: b.ID, Label: b.Name, Hint: hint})
	}
	return snake.Select("Lancha", choices, os.Stdin, snake.NopCloser(os.Stdout))
}

func pickStop(ctx context.Context, e *env) (string, error) {
	stops, err := e.app.Stops(ctx)
	if err != nil {
		return "", err
	}
	choices := make([]snake.Choice, 0, len(stops))
	for _, s := range stops {
		choices = append(choices, snake.Choice{ID: s.ID, Label: s.Name, Hint: fmt.Sprintf("%.0f km", s.DistanceKm)})
	}
	return snake.Select("Localidade", choices, os.Stdin, snake.NopCloser(os.Stdout))
}
