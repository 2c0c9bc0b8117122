package get_advisor_bookings

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
	msgInvalidAdvisorID = "некорректный ID советника"
	msgInvalidScope     = "некорректный фильтр, ожидается upcoming или past"
	msgForeignBookings  = "советник может просматривать только свои бронирования"
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

// Handle GET /api/v1/advisors/{advisorId}/bookings?scope=upcoming|past
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, handlers.CodeForbidden, msgForeignBookings)
		return
	}

	vars := mux.Vars(r)
	advisorID, err := strconv.ParseInt(vars["advisorId"], 10, 64)
	if err != nil || advisorID <= 0 {
		h.logger.Warn("GET /advisors/{id}/bookings - Invalid advisor ID: %q", vars["advisorId"])
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidAdvisorID)
		return
	}

	// Чужие списки видит только администратор
	if !user.IsAdmin() && user.ID != advisorID {
		h.logger.Warn("GET /advisors/{id}/bookings - Forbidden: user=%d requested advisor=%d", user.ID, advisorID)
		handlers.RespondForbidden(w, handlers.CodeForbidden, msgForeignBookings)
		return
	}

	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = models.ScopeUpcoming
	}

	result, err := h.service.GetAdvisorBookings(r.Context(), &models.GetAdvisorBookingsRequest{
		AdvisorID: advisorID,
		Scope:     scope,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /advisors/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidScope)
		default:
			h.logger.Error("GET /advisors/{id}/bookings - Failed: advisor=%d, error=%v", advisorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /advisors/{id}/bookings - OK: advisor=%d, scope=%s, count=%d",
		advisorID, scope, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
