//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"leisure-booking/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-01 is a Monday.
var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func mustEntry(t *testing.T, activity schedule.ActivityType, facility schedule.FacilityID, weekday schedule.Weekday, open, close int) *schedule.TimetableEntry {
	t.Helper()
	entry, err := schedule.NewTimetableEntry(activity, facility, weekday, open, close)
	require.NoError(t, err)
	return entry
}

func TestGenerateSlots(t *testing.T) {
	t.Run("full day of one hour slots", func(t *testing.T) {
		entry := mustEntry(t, schedule.ActivityGeneral, schedule.FacilityPool, schedule.Monday, 8, 20)

		slots := schedule.GenerateSlots(entry, monday)

		require.Len(t, slots, 12)
		for i, slot := range slots {
			assert.Equal(t, monday.Add(time.Duration(8+i)*time.Hour), slot.Start)
			assert.Equal(t, time.Hour, slot.End.Sub(slot.Start))
		}
		// No gaps, no overlaps
		for i := 1; i < len(slots); i++ {
			assert.Equal(t, slots[i-1].End, slots[i].Start)
		}
	})

	t.Run("team activity uses two hour slots", func(t *testing.T) {
		entry := mustEntry(t, schedule.ActivityTeam, schedule.FacilityHall, schedule.Monday, 8, 10)

		slots := schedule.GenerateSlots(entry, monday)

		require.Len(t, slots, 1)
		assert.Equal(t, 2*time.Hour, slots[0].End.Sub(slots[0].Start))
	})

	t.Run("single hour window yields one slot", func(t *testing.T) {
		entry := mustEntry(t, schedule.ActivityLaneSwim, schedule.FacilityPool, schedule.Monday, 8, 9)

		slots := schedule.GenerateSlots(entry, monday)

		require.Len(t, slots, 1)
		assert.Equal(t, time.Hour, slots[0].End.Sub(slots[0].Start))
	})

	t.Run("partial trailing interval is dropped", func(t *testing.T) {
		// Team slots step by two hours over three available hours.
		entry := mustEntry(t, schedule.ActivityTeam, schedule.FacilityHall, schedule.Monday, 8, 11)

		slots := schedule.GenerateSlots(entry, monday)

		require.Len(t, slots, 1)
		assert.Equal(t, monday.Add(8*time.Hour), slots[0].Start)
		assert.Equal(t, monday.Add(10*time.Hour), slots[0].End)
	})

	t.Run("weekday mismatch yields nothing", func(t *testing.T) {
		entry := mustEntry(t, schedule.ActivityGeneral, schedule.FacilityPool, schedule.Tuesday, 8, 20)

		assert.Empty(t, schedule.GenerateSlots(entry, monday))
	})

	t.Run("generation is pure", func(t *testing.T) {
		entry := mustEntry(t, schedule.ActivityYoga, schedule.FacilityStudio, schedule.Monday, 9, 12)

		first := schedule.GenerateSlots(entry, monday)
		second := schedule.GenerateSlots(entry, monday)

		assert.Equal(t, first, second)
	})

	t.Run("class flag follows activity type", func(t *testing.T) {
		entry := mustEntry(t, schedule.ActivityPilates, schedule.FacilityStudio, schedule.Monday, 9, 10)

		slots := schedule.GenerateSlots(entry, monday)

		require.Len(t, slots, 1)
		assert.True(t, slots[0].IsClass)
	})
}

func TestNewTimetableEntry(t *testing.T) {
	cases := []struct {
		name  string
		open  int
		close int
		errIs error
	}{
		{name: "valid range", open: 8, close: 20},
		{name: "open equals close", open: 10, close: 10, errIs: schedule.ErrInvalidHourRange},
		{name: "open after close", open: 12, close: 9, errIs: schedule.ErrInvalidHourRange},
		{name: "negative open", open: -1, close: 9, errIs: schedule.ErrInvalidHourRange},
		{name: "close past midnight", open: 8, close: 25, errIs: schedule.ErrInvalidHourRange},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			entry, err := schedule.NewTimetableEntry(schedule.ActivityGeneral, schedule.FacilityPool, schedule.Monday, c.open, c.close)

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, entry)
			} else {
				require.ErrorIs(t, err, c.errIs)
				assert.Nil(t, entry)
			}
		})
	}
}

func TestEntryCovers(t *testing.T) {
	entry := mustEntry(t, schedule.ActivityGeneral, schedule.FacilityPool, schedule.Monday, 8, 20)

	slots := schedule.GenerateSlots(entry, monday)
	require.NotEmpty(t, slots)

	t.Run("generated slots are covered", func(t *testing.T) {
		for _, slot := range slots {
			assert.True(t, entry.Covers(slot))
		}
	})

	t.Run("different facility is not covered", func(t *testing.T) {
		slot := slots[0]
		slot.Facility = schedule.FacilityStudio
		assert.False(t, entry.Covers(slot))
	})

	t.Run("slot outside hours is not covered", func(t *testing.T) {
		slot := slots[0]
		slot.Start = monday.Add(6 * time.Hour)
		slot.End = monday.Add(7 * time.Hour)
		assert.False(t, entry.Covers(slot))
	})

	t.Run("wrong weekday is not covered", func(t *testing.T) {
		slot := slots[0]
		slot.Start = slot.Start.Add(24 * time.Hour)
		slot.End = slot.End.Add(24 * time.Hour)
		assert.False(t, entry.Covers(slot))
	})
}
