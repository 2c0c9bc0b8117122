package get_advisor_bookings

import (
	"context"

	"github.com/m04kA/LL-SlotBookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetAdvisorBookings(ctx context.Context, req *models.GetAdvisorBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
