//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"leisure-booking/internal/domain/schedule"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 1, 1, hour, min, 0, 0, time.UTC)
}

func TestMergeIntervals(t *testing.T) {
	t.Run("overlapping and disjoint intervals", func(t *testing.T) {
		merged := schedule.MergeIntervals([]schedule.Interval{
			{Start: at(10, 0), End: at(11, 0)},
			{Start: at(10, 30), End: at(11, 30)},
			{Start: at(14, 0), End: at(15, 0)},
		})

		want := []schedule.Interval{
			{Start: at(10, 0), End: at(11, 30)},
			{Start: at(14, 0), End: at(15, 0)},
		}
		if diff := cmp.Diff(want, merged); diff != "" {
			t.Errorf("merged intervals mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("adjacent intervals merge", func(t *testing.T) {
		merged := schedule.MergeIntervals([]schedule.Interval{
			{Start: at(9, 0), End: at(10, 0)},
			{Start: at(10, 0), End: at(11, 0)},
		})

		require.Len(t, merged, 1)
		assert.Equal(t, at(9, 0), merged[0].Start)
		assert.Equal(t, at(11, 0), merged[0].End)
	})

	t.Run("unsorted input is handled", func(t *testing.T) {
		merged := schedule.MergeIntervals([]schedule.Interval{
			{Start: at(14, 0), End: at(15, 0)},
			{Start: at(9, 0), End: at(10, 0)},
			{Start: at(9, 30), End: at(10, 30)},
		})

		require.Len(t, merged, 2)
		assert.Equal(t, at(9, 0), merged[0].Start)
		assert.Equal(t, at(10, 30), merged[0].End)
	})

	t.Run("contained interval does not shrink the end", func(t *testing.T) {
		merged := schedule.MergeIntervals([]schedule.Interval{
			{Start: at(9, 0), End: at(12, 0)},
			{Start: at(10, 0), End: at(11, 0)},
		})

		require.Len(t, merged, 1)
		assert.Equal(t, at(12, 0), merged[0].End)
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		assert.Nil(t, schedule.MergeIntervals(nil))
	})
}

func TestFilterAvailable(t *testing.T) {
	candidates := []schedule.Slot{
		{Activity: schedule.ActivityGeneral, Facility: schedule.FacilityPool, Start: at(10, 0), End: at(11, 0)},
		{Activity: schedule.ActivityGeneral, Facility: schedule.FacilityPool, Start: at(11, 0), End: at(12, 0)},
		{Activity: schedule.ActivityGeneral, Facility: schedule.FacilityPool, Start: at(12, 0), End: at(13, 0)},
	}

	t.Run("slot starting inside busy interval is removed", func(t *testing.T) {
		busy := []schedule.Interval{{Start: at(10, 0), End: at(12, 0)}}

		available := schedule.FilterAvailable(candidates, busy)

		require.Len(t, available, 1)
		assert.Equal(t, at(12, 0), available[0].Start)
	})

	t.Run("slot starting exactly at busy end is kept", func(t *testing.T) {
		busy := []schedule.Interval{{Start: at(10, 0), End: at(12, 0)}}

		available := schedule.FilterAvailable(candidates, busy)

		for _, slot := range available {
			assert.False(t, slot.Start.Before(at(12, 0)))
		}
	})

	t.Run("no booked intervals returns candidates unchanged", func(t *testing.T) {
		available := schedule.FilterAvailable(candidates, nil)

		assert.Equal(t, candidates, available)
	})

	t.Run("busy intervals are merged before filtering", func(t *testing.T) {
		// Two touching intervals cover 10:00-12:00 once merged.
		busy := []schedule.Interval{
			{Start: at(10, 0), End: at(11, 0)},
			{Start: at(11, 0), End: at(12, 0)},
		}

		available := schedule.FilterAvailable(candidates, busy)

		require.Len(t, available, 1)
		assert.Equal(t, at(12, 0), available[0].Start)
	})
}
