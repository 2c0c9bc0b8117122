package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/LL-SlotBookingService/pkg/types"
)

// SlotState represents the lifecycle state of an availability slot
type SlotState string

const (
	// StateOpen slot is published by the advisor and can be claimed
	StateOpen SlotState = "open"
	// StateWithdrawn slot is hidden by the advisor, not bookable, reversible
	StateWithdrawn SlotState = "withdrawn"
	// StateBooked slot is claimed by exactly one student; terminal for this engine
	StateBooked SlotState = "booked"
)

// CanTransitionTo reports whether the state machine allows s -> next.
// Allowed: open <-> withdrawn (advisor toggle) and open -> booked (student claim).
// Nothing leaves booked; cancellation is an external flow.
func (s SlotState) CanTransitionTo(next SlotState) bool {
	switch s {
	case StateOpen:
		return next == StateWithdrawn || next == StateBooked
	case StateWithdrawn:
		return next == StateOpen
	default:
		return false
	}
}

// SlotKey natural composite identity of a slot
type SlotKey struct {
	AdvisorID int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// String возвращает ключ в формате "YYYY-MM-DD,HH:MM" (дата и время начала)
// Именно в этом виде ключи отдаются в availability_dict и snapshot
func (k SlotKey) String() string {
	return fmt.Sprintf("%s,%s", k.Date.Format(DateFormat), k.StartTime)
}

// Slot represents a single bookable (advisor, date, start, end) time unit
type Slot struct {
	ID        int64
	AdvisorID int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	State     SlotState

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key возвращает составной ключ слота
func (s *Slot) Key() SlotKey {
	return SlotKey{
		AdvisorID: s.AdvisorID,
		Date:      s.Date,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
	}
}

// IsOpen returns true if the slot can currently be claimed by a student
func (s *Slot) IsOpen() bool {
	return s.State == StateOpen
}

// IsBooked returns true if the slot has been claimed
func (s *Slot) IsBooked() bool {
	return s.State == StateBooked
}

// CanBeToggled returns true if the advisor may still flip the slot
func (s *Slot) CanBeToggled() bool {
	return s.State != StateBooked
}

// ToggledState возвращает состояние после переключения open <-> withdrawn
// Для booked слота переключения не существует
func (s *Slot) ToggledState() (SlotState, bool) {
	switch s.State {
	case StateOpen:
		return StateWithdrawn, true
	case StateWithdrawn:
		return StateOpen, true
	default:
		return s.State, false
	}
}
