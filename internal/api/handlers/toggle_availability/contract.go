package toggle_availability

import (
	"context"

	toggleAvailability "github.com/m04kA/LL-SlotBookingService/internal/usecase/toggle_availability"
)

type ToggleAvailabilityUseCase interface {
	Execute(ctx context.Context, req *toggleAvailability.Request) (*toggleAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
