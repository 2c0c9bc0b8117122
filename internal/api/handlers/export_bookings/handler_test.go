package export_bookings

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LL-SlotBookingService/internal/api/middleware"
	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	"github.com/m04kA/LL-SlotBookingService/internal/service/export"
)

type fakeExportService struct {
	lastReq  *export.Request
	buf      *bytes.Buffer
	fileName string
	err      error
}

func (f *fakeExportService) Export(_ context.Context, req *export.Request) (*bytes.Buffer, string, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, "", f.err
	}
	return f.buf, f.fileName, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doExport(h *Handler, userID, role, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/export?"+query, nil)
	req.Header.Set(middleware.HeaderUserID, userID)
	req.Header.Set(middleware.HeaderUserRole, role)
	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestExportHandler_Admin(t *testing.T) {
	service := &fakeExportService{
		buf:      bytes.NewBufferString("xlsx-bytes"),
		fileName: "bookings_2026-09-01_to_2026-09-30.xlsx",
	}
	h := NewHandler(service, nopLogger{})

	rec := doExport(h, "1", domain.RoleAdmin, "start_date=2026-09-01&end_date=2026-09-30")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="bookings_2026-09-01_to_2026-09-30.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "xlsx-bytes", rec.Body.String())

	require.NotNil(t, service.lastReq)
	assert.Equal(t, "2026-09-01", service.lastReq.StartDate.Format(domain.DateFormat))
	assert.Equal(t, "2026-09-30", service.lastReq.EndDate.Format(domain.DateFormat))
}

func TestExportHandler_NonAdminForbidden(t *testing.T) {
	for _, role := range []string{domain.RoleTeacher, domain.RoleStudent} {
		t.Run(role, func(t *testing.T) {
			service := &fakeExportService{}
			h := NewHandler(service, nopLogger{})

			rec := doExport(h, "10", role, "start_date=2026-09-01&end_date=2026-09-30")

			require.Equal(t, http.StatusForbidden, rec.Code)
			assert.Nil(t, service.lastReq)
		})
	}
}

func TestExportHandler_InvalidDates(t *testing.T) {
	h := NewHandler(&fakeExportService{}, nopLogger{})

	rec := doExport(h, "1", domain.RoleAdmin, "start_date=2026-09-01")

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportHandler_InvalidRange(t *testing.T) {
	h := NewHandler(&fakeExportService{err: export.ErrInvalidInput}, nopLogger{})

	rec := doExport(h, "1", domain.RoleAdmin, "start_date=2026-09-30&end_date=2026-09-01")

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
