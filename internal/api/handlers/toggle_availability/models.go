package toggle_availability

import (
	"time"

	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	toggleAvailability "github.com/m04kA/LL-SlotBookingService/internal/usecase/toggle_availability"
	"github.com/m04kA/LL-SlotBookingService/pkg/types"
)

// ToggleRequest HTTP request model
type ToggleRequest struct {
	Date      string `json:"date"`       // "2026-09-03"
	StartTime string `json:"start_time"` // "10:00"
	EndTime   string `json:"end_time"`   // "10:30"
}

// ToggleResponse HTTP response model
type ToggleResponse struct {
	Success          bool            `json:"success"`
	IsAvailable      bool            `json:"is_available"`
	Date             string          `json:"date"`
	StartTime        string          `json:"start_time"`
	EndTime          string          `json:"end_time"`
	AvailabilityDict map[string]bool `json:"availability_dict"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ToggleRequest) ToUseCaseRequest(advisorID int64) (*toggleAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	var endTime types.TimeString
	if r.EndTime != "" {
		endTime, err = types.NewTimeStringFromString(r.EndTime)
		if err != nil {
			return nil, err
		}
	}

	return &toggleAvailability.Request{
		AdvisorID: advisorID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *toggleAvailability.Response) *ToggleResponse {
	return &ToggleResponse{
		Success:          true,
		IsAvailable:      resp.State == string(domain.StateOpen),
		Date:             resp.Date.Format(domain.DateFormat),
		StartTime:        resp.StartTime.String(),
		EndTime:          resp.EndTime.String(),
		AvailabilityDict: resp.AvailabilityDict,
	}
}
