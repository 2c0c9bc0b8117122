package create_booking

import (
	"time"

	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	createBooking "github.com/m04kA/LL-SlotBookingService/internal/usecase/create_booking"
	"github.com/m04kA/LL-SlotBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Teacher   int64   `json:"teacher"`    // ID советника
	Date      string  `json:"date"`       // "2026-09-03"
	StartTime string  `json:"start_time"` // "10:00"
	EndTime   string  `json:"end_time"`   // "10:30"
	Message   *string `json:"message,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Success        bool    `json:"success"`
	BookingID      int64   `json:"booking_id"`
	Reference      string  `json:"reference"`
	AdvisorID      int64   `json:"advisor_id"`
	Date           string  `json:"date"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	TeacherName    string  `json:"teacher_name"`
	TeacherEmail   string  `json:"teacher_email"`
	TeacherAvatar  *string `json:"teacher_avatar,omitempty"`
	StudentMessage *string `json:"student_message,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(studentID int64) (*createBooking.Request, error) {
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

	return &createBooking.Request{
		StudentID: studentID,
		AdvisorID: r.Teacher,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Message:   r.Message,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		Success:        true,
		BookingID:      resp.ID,
		Reference:      resp.Reference,
		AdvisorID:      resp.AdvisorID,
		Date:           resp.Date.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		TeacherName:    resp.AdvisorName,
		TeacherEmail:   resp.AdvisorEmail,
		TeacherAvatar:  resp.AdvisorAvatarURL,
		StudentMessage: resp.Message,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
	}
}
