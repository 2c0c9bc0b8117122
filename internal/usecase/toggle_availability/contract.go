package toggle_availability

import (
	"context"
	"time"

	"github.com/m04kA/LL-SlotBookingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByKey(ctx context.Context, key domain.SlotKey) (*domain.Slot, error)
	Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	CompareAndSetState(ctx context.Context, key domain.SlotKey, expected, next domain.SlotState) (*domain.Slot, error)
	GetByAdvisorAndMonth(ctx context.Context, advisorID int64, year int, month time.Month) ([]*domain.Slot, error)
}

// Metrics интерфейс доменных метрик переключений
type Metrics interface {
	IncToggle(result string)
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
