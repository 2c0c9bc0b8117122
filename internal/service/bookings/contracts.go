package bookings

import (
	"context"
	"time"

	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	"github.com/m04kA/LL-SlotBookingService/internal/integrations/profileservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByStudentID(ctx context.Context, studentID int64, today time.Time, upcoming bool) ([]*domain.Booking, error)
	GetByAdvisorID(ctx context.Context, advisorID int64, today time.Time, upcoming bool) ([]*domain.Booking, error)
	CountByStudent(ctx context.Context, studentID int64, today time.Time) (upcoming int, past int, err error)
	CountByAdvisor(ctx context.Context, advisorID int64, today time.Time) (upcoming int, past int, err error)
}

// ProfileServiceClient интерфейс клиента ProfileService
type ProfileServiceClient interface {
	GetAdvisorsByIDsWithGracefulDegradation(ctx context.Context, advisorIDs []int64) (map[int64]*profileservice.Advisor, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
