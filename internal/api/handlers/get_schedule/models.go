package get_schedule

import (
	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	getSchedule "github.com/m04kA/LL-SlotBookingService/internal/usecase/get_schedule"
)

// BookingView детали бронирования в ячейке, присутствуют только если видны запрашивающему
type BookingView struct {
	Reference string  `json:"reference"`
	StudentID int64   `json:"student_id"`
	Message   *string `json:"message,omitempty"`
}

// SlotView состояние одной ячейки расписания
type SlotView struct {
	State   string       `json:"state"`
	Booking *BookingView `json:"booking,omitempty"`
}

// ScheduleResponse HTTP response model: ключи снимка "YYYY-MM-DD,HH:MM"
type ScheduleResponse struct {
	Success   bool                `json:"success"`
	AdvisorID int64               `json:"advisor_id"`
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Schedule  map[string]SlotView `json:"schedule"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSchedule.Response) *ScheduleResponse {
	schedule := make(map[string]SlotView, len(resp.Snapshot))
	for key, view := range resp.Snapshot {
		cell := SlotView{State: view.State}
		if view.Booking != nil {
			cell.Booking = &BookingView{
				Reference: view.Booking.Reference,
				StudentID: view.Booking.StudentID,
				Message:   view.Booking.Message,
			}
		}
		schedule[key] = cell
	}

	return &ScheduleResponse{
		Success:   true,
		AdvisorID: resp.AdvisorID,
		StartDate: resp.StartDate.Format(domain.DateFormat),
		EndDate:   resp.EndDate.Format(domain.DateFormat),
		Schedule:  schedule,
	}
}
