package domain

import (
	"time"

	"github.com/m04kA/LL-SlotBookingService/pkg/types"
)

// Booking represents a confirmed claim of a slot by a student.
// Created exactly once per slot transition into booked; immutable afterwards
// (cancellation is handled by an external flow, not this engine).
type Booking struct {
	ID        int64
	Reference string // публичный UUID брони для подтверждений и ссылок
	SlotID    int64
	StudentID int64

	// Denormalized slot data for history lists
	AdvisorID int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString

	Message *string // сообщение студента, <=300 символов, экранировано до записи

	CreatedAt time.Time
}

// IsUpcoming returns true if the booked slot date is today or later
func (b *Booking) IsUpcoming(today time.Time) bool {
	return !dateOnly(b.Date).Before(dateOnly(today))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
