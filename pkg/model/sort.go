package model

import "sort"

// SortSchedules orders schedules by weekday (Monday first) and then by the
// HH:MM expected time. Zero-padded clock strings sort correctly as text.
func SortSchedules(schedules []Schedule) {
	sort.SliceStable(schedules, func(i, j int) bool {
		a, b := schedules[i], schedules[j]
		if oa, ob := a.DayOfWeek.Ordinal(), b.DayOfWeek.Ordinal(); oa != ob {
			return oa < ob
		}
		return a.ExpectedTime < b.ExpectedTime
	})
}

// SortLogsNewestFirst orders arrival logs by timestamp, most recent first.
func SortLogsNewestFirst(logs []ArrivalLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Timestamp > logs[j].Timestamp
	})
}
