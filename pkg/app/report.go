package app

import (
	"context"
	"sort"
	"time"

	"tableflip.dev/riverline/pkg/model"
)

// ReportItem is one arrival inside the report window, with its names resolved.
type ReportItem struct {
	Log      model.ArrivalLog
	StopName string
	At       time.Time
}

// ReportSection groups the arrivals of one boat.
type ReportSection struct {
	BoatID   string
	BoatName string
	Arrivals []ReportItem
}

// ReportResult encapsulates an arrivals report for a time window.
type ReportResult struct {
	Since    time.Time
	Until    time.Time
	Sections []ReportSection
	Total    int
}

// ArrivalReport returns the arrivals logged between the provided bounds
// grouped by boat. Sections are ordered by boat name and arrivals newest first.
func (s *Service) ArrivalReport(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if since.After(until) {
		since, until = until, since
	}
	snap, err := s.snapshot()
	if err != nil {
		return ReportResult{}, err
	}
	model.SortLogsNewestFirst(snap.Logs)

	grouped := make(map[string]*ReportSection)
	total := 0
	for _, l := range snap.Logs {
		at := time.UnixMilli(l.Timestamp)
		if at.Before(since) || at.After(until) {
			continue
		}
		sec, ok := grouped[l.BoatID]
		if !ok {
			sec = &ReportSection{
				BoatID:   l.BoatID,
				BoatName: model.BoatName(snap.Boats, l.BoatID),
			}
			grouped[l.BoatID] = sec
		}
		sec.Arrivals = append(sec.Arrivals, ReportItem{
			Log:      l,
			StopName: model.StopName(snap.Stops, l.StopID),
			At:       at,
		})
		total++
	}

	sections := make([]ReportSection, 0, len(grouped))
	for _, sec := range grouped {
		sections = append(sections, *sec)
	}
	sort.Slice(sections, func(i, j int) bool {
		if sections[i].BoatName != sections[j].BoatName {
			return sections[i].BoatName < sections[j].BoatName
		}
		return sections[i].BoatID < sections[j].BoatID
	})

	return ReportResult{
		Since:    since,
		Until:    until,
		Sections: sections,
		Total:    total,
	}, nil
}
