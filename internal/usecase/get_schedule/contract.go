package get_schedule

import (
	"context"
	"time"

	"github.com/m04kA/LL-SlotBookingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByAdvisorAndDateRange(ctx context.Context, advisorID int64, from, to time.Time) ([]*domain.Slot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByAdvisorAndDateRange(ctx context.Context, advisorID int64, from, to time.Time) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
