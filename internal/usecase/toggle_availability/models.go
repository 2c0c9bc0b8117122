package toggle_availability

import (
	"time"

	"github.com/m04kA/LL-SlotBookingService/pkg/types"
)

// Request модель запроса на переключение доступности слота
type Request struct {
	AdvisorID int64            // ID советника (владельца расписания)
	Date      time.Time        // Дата слота (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
	EndTime   types.TimeString // Время конца слота (опционально, должно быть start + 30 минут)
}

// Response модель ответа с новым состоянием слота и картой доступности месяца
type Response struct {
	AdvisorID int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	State     string // итоговое состояние слота после переключения

	// AvailabilityDict карта доступности месяца слота:
	// ключ "YYYY-MM-DD,HH:MM", значение true для открытых слотов
	AvailabilityDict map[string]bool
}
