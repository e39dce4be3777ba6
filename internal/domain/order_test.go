package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/pkg/ptr"
)

func TestNewLineItem(t *testing.T) {
	item, err := NewLineItem(ItemKindProduct, 3, 4, 250)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), item.SubtotalMinor)

	_, err = NewLineItem(ItemKindProduct, 3, 0, 250)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewLineItem(ItemKindService, 3, 1, -1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrder_Transitions(t *testing.T) {
	o := &Order{Status: StatusPending}
	assert.True(t, o.CanBeConfirmed())
	assert.True(t, o.CanBeCancelled())
	assert.False(t, o.CanBeCompleted())
	assert.False(t, o.IsTerminal())

	o.Status = StatusConfirmed
	assert.False(t, o.CanBeConfirmed())
	assert.True(t, o.CanBeCompleted())

	o.Status = StatusCompleted
	assert.True(t, o.IsTerminal())
	assert.False(t, o.IsSettled())
	o.CompletedAt = ptr.Ptr(time.Now())
	assert.True(t, o.IsSettled())
	assert.False(t, o.CanBeCancelled())

	o.Status = StatusCancelled
	assert.True(t, o.IsTerminal())
	assert.False(t, o.CanBeCompleted())
}

func TestOrder_Window(t *testing.T) {
	productOnly := &Order{}
	_, ok := productOnly.Window()
	assert.False(t, ok)

	start := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)
	booked := &Order{StaffID: ptr.Ptr(int64(2)), StartAt: &start, EndAt: &end}
	w, ok := booked.Window()
	require.True(t, ok)
	assert.Equal(t, 45, w.Minutes())
}

func TestParseOrderStatus(t *testing.T) {
	s, err := ParseOrderStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseOrderStatus("in_progress")
	assert.ErrorIs(t, err, ErrValidation)
}
