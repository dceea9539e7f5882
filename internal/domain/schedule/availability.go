package schedule

import (
	"sort"
	"time"
)

// Interval is a [Start, End] stretch of time the user is already committed.
type Interval struct {
	Start time.Time
	End   time.Time
}

// MergeIntervals folds a user's booked intervals into the minimal set of
// maximal non-overlapping intervals. Sorting is by start time; an interval
// whose start falls within [accumulated start, accumulated end] (end
// inclusive, so adjacent intervals merge) extends the accumulated end to the
// later of the two. The input must be non-empty; callers skip the merge when
// the user has no bookings.
func MergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.Before(last.Start) && !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
		} else {
			merged = append(merged, iv)
		}
	}
	return merged
}

// FilterAvailable removes candidate slots the user cannot attend because
// their start time falls inside one of the user's merged busy intervals.
// The busy interval is half-open at the end: a slot starting exactly when a
// busy interval finishes is kept.
//
// With no booked intervals every candidate is returned unchanged.
func FilterAvailable(candidates []Slot, booked []Interval) []Slot {
	if len(booked) == 0 {
		return candidates
	}

	busy := MergeIntervals(booked)

	available := make([]Slot, 0, len(candidates))
	for _, slot := range candidates {
		if !startsWithin(slot.Start, busy) {
			available = append(available, slot)
		}
	}
	return available
}

func startsWithin(start time.Time, busy []Interval) bool {
	for _, iv := range busy {
		if !start.Before(iv.Start) && start.Before(iv.End) {
			return true
		}
	}
	return false
}
