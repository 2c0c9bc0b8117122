package get_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/LL-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/LL-SlotBookingService/internal/api/middleware"
	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	getSchedule "github.com/m04kA/LL-SlotBookingService/internal/usecase/get_schedule"
)

const (
	msgInvalidAdvisorID = "некорректный ID советника"
	msgInvalidDates     = "некорректные даты периода, ожидается YYYY-MM-DD"
	msgInvalidRequest   = "некорректные параметры запроса"
	msgRangeTooWide     = "запрошенный период слишком широкий"
	msgForeignSchedule  = "советник может просматривать только свое расписание"
)

type Handler struct {
	useCase GetScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/advisors/{advisorId}/schedule?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, handlers.CodeForbidden, msgInvalidRequest)
		return
	}

	vars := mux.Vars(r)
	advisorID, err := strconv.ParseInt(vars["advisorId"], 10, 64)
	if err != nil || advisorID <= 0 {
		h.logger.Warn("GET /advisors/{id}/schedule - Invalid advisor ID: %q", vars["advisorId"])
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidAdvisorID)
		return
	}

	// Советник видит только собственное расписание
	if user.Role == domain.RoleTeacher && user.ID != advisorID {
		h.logger.Warn("GET /advisors/{id}/schedule - Forbidden: user=%d requested advisor=%d", user.ID, advisorID)
		handlers.RespondForbidden(w, handlers.CodeForbidden, msgForeignSchedule)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, r.URL.Query().Get("start_date"))
	if err != nil {
		h.logger.Warn("GET /advisors/{id}/schedule - Invalid start_date: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidDates)
		return
	}
	endDate, err := time.Parse(domain.DateFormat, r.URL.Query().Get("end_date"))
	if err != nil {
		h.logger.Warn("GET /advisors/{id}/schedule - Invalid end_date: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSchedule.Request{
		AdvisorID:  advisorID,
		StartDate:  startDate,
		EndDate:    endDate,
		ViewerID:   user.ID,
		ViewerRole: user.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSchedule.ErrInvalidInput):
			h.logger.Warn("GET /advisors/{id}/schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequest)

		case errors.Is(err, getSchedule.ErrRangeTooWide):
			h.logger.Warn("GET /advisors/{id}/schedule - Range too wide: advisor=%d", advisorID)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgRangeTooWide)

		default:
			h.logger.Error("GET /advisors/{id}/schedule - Failed: advisor=%d, error=%v", advisorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /advisors/{id}/schedule - OK: advisor=%d, cells=%d", advisorID, len(result.Snapshot))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
