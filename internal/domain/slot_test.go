package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from SlotState
		to   SlotState
		want bool
	}{
		{StateOpen, StateWithdrawn, true},
		{StateOpen, StateBooked, true},
		{StateWithdrawn, StateOpen, true},
		{StateWithdrawn, StateBooked, false},
		{StateBooked, StateOpen, false},
		{StateBooked, StateWithdrawn, false},
		{StateOpen, StateOpen, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSlot_ToggledState(t *testing.T) {
	slot := &Slot{State: StateOpen}

	next, ok := slot.ToggledState()
	require.True(t, ok)
	assert.Equal(t, StateWithdrawn, next)

	slot.State = StateWithdrawn
	next, ok = slot.ToggledState()
	require.True(t, ok)
	assert.Equal(t, StateOpen, next)

	// для booked переключения нет
	slot.State = StateBooked
	next, ok = slot.ToggledState()
	assert.False(t, ok)
	assert.Equal(t, StateBooked, next)
}

func TestSlot_Predicates(t *testing.T) {
	slot := &Slot{State: StateOpen}
	assert.True(t, slot.IsOpen())
	assert.False(t, slot.IsBooked())
	assert.True(t, slot.CanBeToggled())

	slot.State = StateBooked
	assert.False(t, slot.IsOpen())
	assert.True(t, slot.IsBooked())
	assert.False(t, slot.CanBeToggled())
}

func TestSlotKey_String(t *testing.T) {
	key := SlotKey{
		AdvisorID: 10,
		Date:      time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "10:30",
	}

	assert.Equal(t, "2026-09-03,10:00", key.String())
}

func TestSlot_Key(t *testing.T) {
	slot := &Slot{
		ID:        1,
		AdvisorID: 10,
		Date:      time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "10:30",
		State:     StateOpen,
	}

	key := slot.Key()
	assert.Equal(t, int64(10), key.AdvisorID)
	assert.Equal(t, "2026-09-03,10:00", key.String())
}
