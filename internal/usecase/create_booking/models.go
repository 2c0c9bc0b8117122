package create_booking

import (
	"time"

	"github.com/m04kA/LL-SlotBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	StudentID int64            // ID студента
	AdvisorID int64            // ID советника
	Date      time.Time        // Дата слота (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
	EndTime   types.TimeString // Время конца слота (опционально, должно быть start + 30 минут)
	Message   *string          // Сообщение советнику (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	Reference string // публичный UUID брони
	StudentID int64
	AdvisorID int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Message   *string
	CreatedAt time.Time

	// Данные советника из ProfileService (могут быть пустыми при degradation)
	AdvisorName      string
	AdvisorEmail     string
	AdvisorAvatarURL *string
}
