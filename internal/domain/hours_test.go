package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/pkg/ptr"
)

func TestResolveHours(t *testing.T) {
	rules := []OperatingHoursRule{
		{BranchID: 7, Open: "10:00", Close: "20:00"},
		{BranchID: 7, Weekday: ptr.Ptr(int(time.Saturday)), Open: "11:00", Close: "16:00"},
	}

	sat := ResolveHours(7, rules, time.Saturday)
	assert.Equal(t, "11:00", sat.Open.String())

	mon := ResolveHours(7, rules, time.Monday)
	assert.Equal(t, "10:00", mon.Open.String())
	assert.True(t, mon.IsDefault())

	none := ResolveHours(7, nil, time.Monday)
	assert.Equal(t, FallbackOpenTime, none.Open)
	assert.Equal(t, FallbackCloseTime, none.Close)
	assert.Equal(t, int64(7), none.BranchID)
}

func TestOperatingHoursRule_Validate(t *testing.T) {
	ok := OperatingHoursRule{Open: "09:00", Close: "18:00"}
	require.NoError(t, ok.Validate())

	inverted := OperatingHoursRule{Open: "18:00", Close: "09:00"}
	assert.ErrorIs(t, inverted.Validate(), ErrValidation)

	badDay := OperatingHoursRule{Weekday: ptr.Ptr(7), Open: "09:00", Close: "18:00"}
	assert.ErrorIs(t, badDay.Validate(), ErrValidation)

	untilMidnight := OperatingHoursRule{Open: "10:00", Close: "24:00"}
	require.NoError(t, untilMidnight.Validate())

	openAtMidnight := OperatingHoursRule{Open: "24:00", Close: "24:00"}
	assert.ErrorIs(t, openAtMidnight.Validate(), ErrValidation)
}

func TestOperatingHoursRule_Window(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	rule := FallbackHours(1)
	w, err := rule.Window(time.Date(2025, 6, 10, 15, 42, 0, 0, loc))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 9, 0, 0, 0, loc), w.Start)
	assert.Equal(t, time.Date(2025, 6, 10, 18, 0, 0, 0, loc), w.End)
}

func TestOperatingHoursRule_WindowUntilMidnight(t *testing.T) {
	rule := OperatingHoursRule{Open: "20:00", Close: "24:00"}
	w, err := rule.Window(time.Date(2025, 6, 10, 15, 42, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), w.End)
}
