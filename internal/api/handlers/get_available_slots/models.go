package get_available_slots

import (
	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/LL-SlotBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Success bool                `json:"success"`
	Date    string              `json:"date"`
	Slots   map[string][]string `json:"slots"` // "HH:MM" -> email'ы советников
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		Success: true,
		Date:    resp.Date.Format(domain.DateFormat),
		Slots:   resp.Slots,
	}
}
