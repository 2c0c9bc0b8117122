package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/LL-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/LL-SlotBookingService/internal/api/middleware"
	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	createBooking "github.com/m04kA/LL-SlotBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateTime       = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgStudentOnly           = "бронировать слоты может только студент"
	msgSlotNotFound          = "слот не найден"
	msgSlotUnavailable       = "слот недоступен для бронирования"
	msgPastDate              = "нельзя забронировать слот на прошедшую дату"
	msgTooSoon               = "до начала слота осталось слишком мало времени"
	msgDailyLimit            = "на эту дату у вас уже есть бронирование"
	msgAdvisorNotFound       = "советник не найден"
	msgAdvisorUnavailable    = "советник не принимает бронирования"
	msgStudentNotFound       = "профиль студента не найден"
	msgQuestionnaireRequired = "для бронирования необходимо заполнить анкету"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/create
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok || user.Role != domain.RoleStudent {
		h.logger.Warn("POST /bookings/create - Forbidden: user=%d role=%s", user.ID, user.Role)
		handlers.RespondForbidden(w, handlers.CodeForbidden, msgStudentOnly)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/create - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(user.ID)
	if err != nil {
		h.logger.Warn("POST /bookings/create - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/create - Invalid input: student=%d: %v", user.ID, err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings/create - Slot not found: student=%d, advisor=%d", user.ID, req.Teacher)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings/create - Slot unavailable: student=%d, advisor=%d", user.ID, req.Teacher)
			handlers.RespondConflict(w, handlers.CodeSlotUnavailable, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrPastDate):
			h.logger.Warn("POST /bookings/create - Past date: student=%d", user.ID)
			handlers.RespondBadRequest(w, handlers.CodePastDate, msgPastDate)

		case errors.Is(err, createBooking.ErrTooSoon):
			h.logger.Warn("POST /bookings/create - Too soon: student=%d", user.ID)
			handlers.RespondBadRequest(w, handlers.CodeTooSoon, msgTooSoon)

		case errors.Is(err, createBooking.ErrDailyLimit):
			h.logger.Warn("POST /bookings/create - Daily limit: student=%d, date=%s", user.ID, req.Date)
			handlers.RespondConflict(w, handlers.CodeDailyLimit, msgDailyLimit)

		case errors.Is(err, createBooking.ErrAdvisorNotFound):
			h.logger.Warn("POST /bookings/create - Advisor not found: advisor=%d", req.Teacher)
			handlers.RespondNotFound(w, msgAdvisorNotFound)

		case errors.Is(err, createBooking.ErrAdvisorUnavailable):
			h.logger.Warn("POST /bookings/create - Advisor unavailable: advisor=%d", req.Teacher)
			handlers.RespondConflict(w, handlers.CodeAdvisorUnavailable, msgAdvisorUnavailable)

		case errors.Is(err, createBooking.ErrStudentNotFound):
			h.logger.Warn("POST /bookings/create - Student not found: student=%d", user.ID)
			handlers.RespondNotFound(w, msgStudentNotFound)

		case errors.Is(err, createBooking.ErrQuestionnaireRequired):
			h.logger.Warn("POST /bookings/create - Questionnaire required: student=%d", user.ID)
			handlers.RespondForbidden(w, handlers.CodeQuestionnaireRequired, msgQuestionnaireRequired)

		default:
			h.logger.Error("POST /bookings/create - Failed: student=%d, advisor=%d, error=%v",
				user.ID, req.Teacher, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/create - Booking created: booking_id=%d, student=%d, advisor=%d",
		result.ID, user.ID, req.Teacher)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
