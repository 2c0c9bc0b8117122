package get_student_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/LL-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/LL-SlotBookingService/internal/api/middleware"
	"github.com/m04kA/LL-SlotBookingService/internal/service/bookings"
	"github.com/m04kA/LL-SlotBookingService/internal/service/bookings/models"
)

const (
	msgInvalidStudentID = "некорректный ID студента"
	msgInvalidScope     = "некорректный фильтр, ожидается upcoming или past"
	msgForeignBookings  = "студент может просматривать только свои бронирования"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/students/{studentId}/bookings?scope=upcoming|past
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, handlers.CodeForbidden, msgForeignBookings)
		return
	}

	vars := mux.Vars(r)
	studentID, err := strconv.ParseInt(vars["studentId"], 10, 64)
	if err != nil || studentID <= 0 {
		h.logger.Warn("GET /students/{id}/bookings - Invalid student ID: %q", vars["studentId"])
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidStudentID)
		return
	}

	// Чужие списки видит только администратор
	if !user.IsAdmin() && user.ID != studentID {
		h.logger.Warn("GET /students/{id}/bookings - Forbidden: user=%d requested student=%d", user.ID, studentID)
		handlers.RespondForbidden(w, handlers.CodeForbidden, msgForeignBookings)
		return
	}

	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = models.ScopeUpcoming
	}

	result, err := h.service.GetStudentBookings(r.Context(), &models.GetStudentBookingsRequest{
		StudentID: studentID,
		Scope:     scope,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /students/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidScope)
		default:
			h.logger.Error("GET /students/{id}/bookings - Failed: student=%d, error=%v", studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /students/{id}/bookings - OK: student=%d, scope=%s, count=%d",
		studentID, scope, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
