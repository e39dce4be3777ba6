package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h, m int) time.Time {
	return time.Date(2025, 6, 10, h, m, 0, 0, time.UTC)
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"touching end to start", Interval{at(9, 0), at(10, 0)}, Interval{at(10, 0), at(11, 0)}, false},
		{"touching start to end", Interval{at(10, 0), at(11, 0)}, Interval{at(9, 0), at(10, 0)}, false},
		{"partial", Interval{at(11, 30), at(12, 0)}, Interval{at(11, 20), at(11, 40)}, true},
		{"nested", Interval{at(9, 0), at(12, 0)}, Interval{at(10, 0), at(10, 30)}, true},
		{"equal", Interval{at(9, 0), at(9, 30)}, Interval{at(9, 0), at(9, 30)}, true},
		{"disjoint", Interval{at(9, 0), at(9, 30)}, Interval{at(13, 0), at(14, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestNewInterval_RejectsEmpty(t *testing.T) {
	_, err := NewInterval(at(10, 0), at(10, 0))
	assert.ErrorIs(t, err, ErrValidation)

	i, err := NewInterval(at(10, 0), at(10, 45))
	require.NoError(t, err)
	assert.Equal(t, 45, i.Minutes())
}

func TestInterval_Contains(t *testing.T) {
	day := Interval{at(9, 0), at(18, 0)}
	assert.True(t, day.Contains(Interval{at(9, 0), at(18, 0)}))
	assert.True(t, day.Contains(Interval{at(17, 15), at(18, 0)}))
	assert.False(t, day.Contains(Interval{at(17, 30), at(18, 15)}))
}

func TestGroupBusyByStaff(t *testing.T) {
	busy := []BusyInterval{
		{StaffID: 1, Interval: Interval{at(9, 0), at(10, 0)}},
		{StaffID: 2, Interval: Interval{at(9, 0), at(9, 30)}},
		{StaffID: 1, Interval: Interval{at(12, 0), at(13, 0)}},
	}
	grouped := GroupBusyByStaff(busy)
	assert.Len(t, grouped[1], 2)
	assert.Len(t, grouped[2], 1)
	assert.Empty(t, grouped[3])
}
