package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var day = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func clock(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func TestComputeSlots_HourlyStepMarksBusyStaff(t *testing.T) {
	in := Input{
		Hours:             domain.FallbackHours(1),
		Date:              day,
		DurationMinutes:   45,
		CandidateStaffIDs: []int64{10},
		Busy: map[int64][]domain.Interval{
			10: {{Start: clock(10, 0), End: clock(10, 45)}},
		},
	}

	slots := ComputeSlots(in, Options{Policy: PolicyHourly})

	require.Len(t, slots, 9) // 09:00 .. 17:00
	assert.Equal(t, clock(9, 0), slots[0].Start)
	assert.Equal(t, []int64{10}, slots[0].FreeStaffIDs)

	assert.Equal(t, clock(10, 0), slots[1].Start)
	assert.Empty(t, slots[1].FreeStaffIDs)

	assert.Equal(t, clock(11, 0), slots[2].Start)
	assert.Equal(t, []int64{10}, slots[2].FreeStaffIDs)

	last := slots[len(slots)-1]
	assert.Equal(t, clock(17, 0), last.Start)
	assert.Equal(t, clock(17, 45), last.End)
}

func TestComputeSlots_MarginStep(t *testing.T) {
	in := Input{
		Hours:             domain.FallbackHours(1),
		Date:              day,
		DurationMinutes:   30,
		CandidateStaffIDs: []int64{1, 2},
		Busy: map[int64][]domain.Interval{
			1: {{Start: clock(9, 0), End: clock(12, 0)}},
		},
	}

	slots := ComputeSlots(in, Options{Policy: PolicyMargin, MarginMinutes: 15})

	require.NotEmpty(t, slots)
	assert.Equal(t, clock(9, 0), slots[0].Start)
	assert.Equal(t, clock(9, 30), slots[0].End)
	assert.Equal(t, []int64{2}, slots[0].FreeStaffIDs)
	assert.Equal(t, clock(9, 45), slots[1].Start)

	for i := 1; i < len(slots); i++ {
		assert.False(t, slots[i].Start.Before(slots[i-1].End.Add(15*time.Minute)))
	}
}

func TestComputeSlots_Properties(t *testing.T) {
	busy := map[int64][]domain.Interval{
		1: {{Start: clock(9, 20), End: clock(9, 50)}, {Start: clock(14, 0), End: clock(15, 30)}},
		2: {{Start: clock(12, 0), End: clock(13, 0)}},
	}
	rule := domain.OperatingHoursRule{Open: "08:30", Close: "19:15"}

	for _, opts := range []Options{
		{Policy: PolicyHourly},
		{Policy: PolicyMargin},
		{Policy: PolicyMargin, MarginMinutes: 10},
	} {
		for _, duration := range []int{15, 40, 90} {
			in := Input{Hours: rule, Date: day, DurationMinutes: duration, CandidateStaffIDs: []int64{1, 2, 3}, Busy: busy}
			slots := ComputeSlots(in, opts)

			for i, s := range slots {
				assert.Equal(t, time.Duration(duration)*time.Minute, s.End.Sub(s.Start))
				assert.False(t, s.Start.Before(clock(8, 30)))
				assert.False(t, s.End.After(clock(19, 15)))
				if i > 0 {
					assert.True(t, s.Start.After(slots[i-1].Start))
				}
				for _, staffID := range s.FreeStaffIDs {
					for _, b := range busy[staffID] {
						assert.False(t, s.Interval().Overlaps(b))
					}
				}
			}

			assert.Equal(t, slots, ComputeSlots(in, opts))
		}
	}
}

func TestComputeSlots_TouchingBusyIntervalIsFree(t *testing.T) {
	in := Input{
		Hours:             domain.OperatingHoursRule{Open: "09:00", Close: "11:00"},
		Date:              day,
		DurationMinutes:   60,
		CandidateStaffIDs: []int64{1},
		Busy:              map[int64][]domain.Interval{1: {{Start: clock(9, 0), End: clock(10, 0)}}},
	}

	slots := ComputeSlots(in, Options{Policy: PolicyMargin})
	require.Len(t, slots, 2)
	assert.Empty(t, slots[0].FreeStaffIDs)
	assert.Equal(t, []int64{1}, slots[1].FreeStaffIDs)
}

func TestComputeSlots_EdgeCases(t *testing.T) {
	base := Input{Hours: domain.FallbackHours(1), Date: day, DurationMinutes: 30, CandidateStaffIDs: []int64{1}}

	t.Run("no candidates gives empty free sets", func(t *testing.T) {
		in := base
		in.CandidateStaffIDs = nil
		slots := ComputeSlots(in, Options{Policy: PolicyMargin})
		require.NotEmpty(t, slots)
		for _, s := range slots {
			assert.Empty(t, s.FreeStaffIDs)
		}
	})

	t.Run("non-positive duration", func(t *testing.T) {
		in := base
		in.DurationMinutes = 0
		assert.Empty(t, ComputeSlots(in, Options{Policy: PolicyMargin}))
	})

	t.Run("open not before close", func(t *testing.T) {
		in := base
		in.Hours = domain.OperatingHoursRule{Open: "18:00", Close: "09:00"}
		assert.Empty(t, ComputeSlots(in, Options{Policy: PolicyHourly}))
	})

	t.Run("duration longer than the day", func(t *testing.T) {
		in := base
		in.Hours = domain.OperatingHoursRule{Open: "09:00", Close: "09:20"}
		assert.Empty(t, ComputeSlots(in, Options{Policy: PolicyMargin}))
	})

	t.Run("omit unavailable", func(t *testing.T) {
		in := base
		in.Busy = map[int64][]domain.Interval{1: {{Start: clock(9, 0), End: clock(17, 0)}}}
		slots := ComputeSlots(in, Options{Policy: PolicyMargin, OmitUnavailable: true})
		require.Len(t, slots, 2)
		assert.Equal(t, clock(17, 0), slots[0].Start)
		assert.Equal(t, clock(17, 30), slots[1].Start)
	})

	t.Run("duplicate candidates collapse", func(t *testing.T) {
		in := base
		in.CandidateStaffIDs = []int64{1, 1, 2}
		slots := ComputeSlots(in, Options{Policy: PolicyHourly})
		assert.Equal(t, []int64{1, 2}, slots[0].FreeStaffIDs)
	})
}

func TestParseStepPolicy(t *testing.T) {
	p, err := ParseStepPolicy("", PolicyMargin)
	require.NoError(t, err)
	assert.Equal(t, PolicyMargin, p)

	p, err = ParseStepPolicy("hourly", PolicyMargin)
	require.NoError(t, err)
	assert.Equal(t, PolicyHourly, p)

	_, err = ParseStepPolicy("random", PolicyMargin)
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}
