//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"leisure-booking/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotCodeRoundTrip(t *testing.T) {
	entries := []struct {
		name     string
		activity schedule.ActivityType
		facility schedule.FacilityID
		open     int
		close    int
	}{
		{name: "general pool hour", activity: schedule.ActivityGeneral, facility: schedule.FacilityPool, open: 8, close: 9},
		{name: "team two hour block", activity: schedule.ActivityTeam, facility: schedule.FacilityHall, open: 18, close: 20},
		{name: "class in studio", activity: schedule.ActivityYoga, facility: schedule.FacilityStudio, open: 9, close: 10},
		{name: "late lane swim", activity: schedule.ActivityLaneSwim, facility: schedule.FacilityPool, open: 21, close: 22},
	}

	for _, e := range entries {
		t.Run(e.name, func(t *testing.T) {
			entry := mustEntry(t, e.activity, e.facility, schedule.Monday, e.open, e.close)
			slots := schedule.GenerateSlots(entry, monday)
			require.NotEmpty(t, slots)

			for _, slot := range slots {
				decoded, err := schedule.SlotFromCode(slot.Code())
				require.NoError(t, err)
				assert.True(t, decoded.Key().Equal(slot.Key()), "code %q did not round-trip", slot.Code())
				assert.Equal(t, slot.IsClass, decoded.IsClass)
			}
		})
	}
}

func TestSlotCodeFormat(t *testing.T) {
	slot := schedule.Slot{
		Activity: schedule.ActivityLaneSwim,
		Facility: schedule.FacilityPool,
		Start:    time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, "1-0-04/03/24-9-10", slot.Code())
}

func TestSlotFromCodeRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		code string
	}{
		{name: "empty", code: ""},
		{name: "too few fields", code: "1-0-04/03/24-9"},
		{name: "too many fields", code: "1-0-04/03/24-9-10-11"},
		{name: "non integer activity", code: "x-0-04/03/24-9-10"},
		{name: "non integer facility", code: "1-x-04/03/24-9-10"},
		{name: "unknown activity", code: "99-0-04/03/24-9-10"},
		{name: "unknown facility", code: "1-42-04/03/24-9-10"},
		{name: "bad date", code: "1-0-99/99/24-9-10"},
		{name: "non integer hour", code: "1-0-04/03/24-a-10"},
		{name: "start after end", code: "1-0-04/03/24-10-9"},
		{name: "start equals end", code: "1-0-04/03/24-9-9"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := schedule.SlotFromCode(c.code)
			require.ErrorIs(t, err, schedule.ErrMalformedSlotCode)
		})
	}
}
