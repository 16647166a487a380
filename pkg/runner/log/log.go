// Package log records observed boat arrivals from the command line.
package log

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/riverline/pkg/app"
	"tableflip.dev/riverline/pkg/model"
)

// Log fills in the arrival logger form and submits it.
type Log struct {
	App *app.Service

	BoatID string
	StopID string
	// NewStop creates a stop on the primary route and logs the arrival there.
	NewStop      string
	Direction    string
	ReportedTime string
	Notes        string

	// PickBoat and PickStop are asked for missing selections when set.
	PickBoat func() (string, error)
	PickStop func() (string, error)
}

func (n *Log) Do(ctx context.Context) (model.ArrivalLog, error) {
	if n.App == nil {
		return model.ArrivalLog{}, errors.New("can not log, no service")
	}

	var err error
	if n.BoatID == "" && n.PickBoat != nil {
		if n.BoatID, err = n.PickBoat(); err != nil {
			return model.ArrivalLog{}, err
		}
	}

	if name := strings.TrimSpace(n.NewStop); name != "" {
		stop, err := n.App.AddLogStop(ctx, name)
		if err != nil {
			return model.ArrivalLog{}, err
		}
		n.StopID = stop.ID
	} else if n.StopID == "" && n.PickStop != nil {
		if n.StopID, err = n.PickStop(); err != nil {
			return model.ArrivalLog{}, err
		}
	}

	return n.App.LogArrival(ctx, app.LogInput{
		BoatID:       n.BoatID,
		StopID:       n.StopID,
		Direction:    n.Direction,
		ReportedTime: n.ReportedTime,
		Notes:        n.Notes,
	})
}
