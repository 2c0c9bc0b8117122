package toggle_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/LL-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/LL-SlotBookingService/internal/api/middleware"
	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	toggleAvailability "github.com/m04kA/LL-SlotBookingService/internal/usecase/toggle_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgTeacherOnly        = "переключать доступность может только советник"
	msgPastDate           = "нельзя изменить слот на прошедшую дату"
	msgTooSoon            = "до начала слота осталось слишком мало времени"
	msgSlotLocked         = "слот забронирован и не может быть изменен"
	msgBusy               = "слот изменяется конкурентным запросом, повторите попытку"
)

type Handler struct {
	useCase ToggleAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ToggleAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/toggle-availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok || user.Role != domain.RoleTeacher {
		h.logger.Warn("POST /toggle-availability - Forbidden: user=%d role=%s", user.ID, user.Role)
		handlers.RespondForbidden(w, handlers.CodeForbidden, msgTeacherOnly)
		return
	}

	var req ToggleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /toggle-availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(user.ID)
	if err != nil {
		h.logger.Warn("POST /toggle-availability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, toggleAvailability.ErrInvalidInput):
			h.logger.Warn("POST /toggle-availability - Invalid input: advisor=%d: %v", user.ID, err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)

		case errors.Is(err, toggleAvailability.ErrPastDate):
			h.logger.Warn("POST /toggle-availability - Past date: advisor=%d", user.ID)
			handlers.RespondBadRequest(w, handlers.CodePastDate, msgPastDate)

		case errors.Is(err, toggleAvailability.ErrTooSoon):
			h.logger.Warn("POST /toggle-availability - Too soon: advisor=%d", user.ID)
			handlers.RespondBadRequest(w, handlers.CodeTooSoon, msgTooSoon)

		case errors.Is(err, toggleAvailability.ErrSlotLocked):
			h.logger.Warn("POST /toggle-availability - Slot locked: advisor=%d", user.ID)
			handlers.RespondConflict(w, handlers.CodeSlotLocked, msgSlotLocked)

		case errors.Is(err, toggleAvailability.ErrBusy):
			h.logger.Warn("POST /toggle-availability - Slot busy: advisor=%d", user.ID)
			handlers.RespondConflict(w, handlers.CodeBusy, msgBusy)

		default:
			h.logger.Error("POST /toggle-availability - Failed: advisor=%d, error=%v", user.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /toggle-availability - Toggled: advisor=%d, date=%s, time=%s, state=%s",
		user.ID, req.Date, req.StartTime, result.State)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
