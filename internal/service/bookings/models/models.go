package models

import (
	"time"

	"github.com/m04kA/LL-SlotBookingService/internal/domain"
)

// Scope допустимые значения фильтра списков бронирований
const (
	ScopeUpcoming = "upcoming"
	ScopePast     = "past"
)

// Request модели

// GetStudentBookingsRequest запрос списка бронирований студента
type GetStudentBookingsRequest struct {
	StudentID int64
	Scope     string // upcoming | past
}

// GetAdvisorBookingsRequest запрос списка бронирований советника
type GetAdvisorBookingsRequest struct {
	AdvisorID int64
	Scope     string // upcoming | past
}

// Response модели

// BookingItem один элемент списка бронирований
type BookingItem struct {
	ID        int64   `json:"id"`
	Reference string  `json:"reference"`
	Date      string  `json:"date"`       // "2026-09-03"
	StartTime string  `json:"start_time"` // "10:00"
	EndTime   string  `json:"end_time"`
	AdvisorID int64   `json:"advisor_id"`
	StudentID int64   `json:"student_id"`
	Message   *string `json:"message,omitempty"`

	// Данные советника из ProfileService, пустые при его недоступности
	AdvisorName      string  `json:"advisor_name,omitempty"`
	AdvisorEmail     string  `json:"advisor_email,omitempty"`
	AdvisorAvatarURL *string `json:"advisor_avatar_url,omitempty"`
}

// BookingListResponse список бронирований со счетчиками
type BookingListResponse struct {
	Bookings      []BookingItem `json:"bookings"`
	UpcomingCount int           `json:"upcoming_count"`
	PastCount     int           `json:"past_count"`
}

// FromDomainBooking конвертирует доменное бронирование в элемент списка
func FromDomainBooking(b *domain.Booking) BookingItem {
	return BookingItem{
		ID:        b.ID,
		Reference: b.Reference,
		Date:      b.Date.Format(domain.DateFormat),
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		AdvisorID: b.AdvisorID,
		StudentID: b.StudentID,
		Message:   b.Message,
	}
}

// ValidScope проверяет значение фильтра
func ValidScope(scope string) bool {
	return scope == ScopeUpcoming || scope == ScopePast
}

// Today обрезает время до даты
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
