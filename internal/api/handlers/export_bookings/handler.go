package export_bookings

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/LL-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/LL-SlotBookingService/internal/api/middleware"
	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	"github.com/m04kA/LL-SlotBookingService/internal/service/export"
)

const (
	msgAdminOnly    = "экспорт доступен только администратору"
	msgInvalidDates = "некорректные даты периода, ожидается YYYY-MM-DD"
	msgInvalidRange = "некорректный период экспорта"
)

type Handler struct {
	service ExportService
	logger  Logger
}

func NewHandler(service ExportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings/export?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok || !user.IsAdmin() {
		h.logger.Warn("GET /admin/bookings/export - Forbidden: user=%d role=%s", user.ID, user.Role)
		handlers.RespondForbidden(w, handlers.CodeForbidden, msgAdminOnly)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, r.URL.Query().Get("start_date"))
	if err != nil {
		h.logger.Warn("GET /admin/bookings/export - Invalid start_date: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidDates)
		return
	}
	endDate, err := time.Parse(domain.DateFormat, r.URL.Query().Get("end_date"))
	if err != nil {
		h.logger.Warn("GET /admin/bookings/export - Invalid end_date: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidDates)
		return
	}

	buf, fileName, err := h.service.Export(r.Context(), &export.Request{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, export.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings/export - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRange)
		default:
			h.logger.Error("GET /admin/bookings/export - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/bookings/export - OK: file=%s, size=%d", fileName, buf.Len())

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
