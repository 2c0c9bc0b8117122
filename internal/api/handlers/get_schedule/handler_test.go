package get_schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LL-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/LL-SlotBookingService/internal/api/middleware"
	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	getSchedule "github.com/m04kA/LL-SlotBookingService/internal/usecase/get_schedule"
)

type fakeScheduleUseCase struct {
	lastReq *getSchedule.Request
	resp    *getSchedule.Response
	err     error
}

func (f *fakeScheduleUseCase) Execute(_ context.Context, req *getSchedule.Request) (*getSchedule.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doGetSchedule(h *Handler, userID, role string, advisorID int64, query string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Handle("/api/v1/advisors/{advisorId}/schedule", middleware.Auth(http.HandlerFunc(h.Handle)))

	url := fmt.Sprintf("/api/v1/advisors/%d/schedule?%s", advisorID, query)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.Header.Set(middleware.HeaderUserID, userID)
	req.Header.Set(middleware.HeaderUserRole, role)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func scheduleResponse(advisorID int64) *getSchedule.Response {
	return &getSchedule.Response{
		AdvisorID: advisorID,
		StartDate: time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC),
		Snapshot: map[string]getSchedule.SlotView{
			"2026-09-03,10:00": {
				State: string(domain.StateBooked),
				Booking: &getSchedule.BookingView{
					Reference: "ref-1",
					StudentID: 20,
				},
			},
			"2026-09-03,10:30": {State: string(domain.StateOpen)},
		},
	}
}

func TestScheduleHandler_OwnerAdvisor(t *testing.T) {
	useCase := &fakeScheduleUseCase{resp: scheduleResponse(10)}
	h := NewHandler(useCase, nopLogger{})

	rec := doGetSchedule(h, "10", domain.RoleTeacher, 10, "start_date=2026-09-03&end_date=2026-09-03")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ScheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(10), resp.AdvisorID)
	assert.Equal(t, "2026-09-03", resp.StartDate)
	assert.Len(t, resp.Schedule, 2)

	booked := resp.Schedule["2026-09-03,10:00"]
	assert.Equal(t, string(domain.StateBooked), booked.State)
	require.NotNil(t, booked.Booking)
	assert.Equal(t, "ref-1", booked.Booking.Reference)

	open := resp.Schedule["2026-09-03,10:30"]
	assert.Equal(t, string(domain.StateOpen), open.State)
	assert.Nil(t, open.Booking)

	require.NotNil(t, useCase.lastReq)
	assert.Equal(t, int64(10), useCase.lastReq.ViewerID)
	assert.Equal(t, domain.RoleTeacher, useCase.lastReq.ViewerRole)
}

func TestScheduleHandler_ForeignAdvisorForbidden(t *testing.T) {
	useCase := &fakeScheduleUseCase{resp: scheduleResponse(10)}
	h := NewHandler(useCase, nopLogger{})

	rec := doGetSchedule(h, "11", domain.RoleTeacher, 10, "start_date=2026-09-03&end_date=2026-09-03")

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, useCase.lastReq)
}

func TestScheduleHandler_StudentCanViewAnyAdvisor(t *testing.T) {
	useCase := &fakeScheduleUseCase{resp: scheduleResponse(10)}
	h := NewHandler(useCase, nopLogger{})

	rec := doGetSchedule(h, "20", domain.RoleStudent, 10, "start_date=2026-09-03&end_date=2026-09-03")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, useCase.lastReq)
	assert.Equal(t, domain.RoleStudent, useCase.lastReq.ViewerRole)
}

func TestScheduleHandler_InvalidDates(t *testing.T) {
	h := NewHandler(&fakeScheduleUseCase{}, nopLogger{})

	rec := doGetSchedule(h, "10", domain.RoleTeacher, 10, "start_date=bad&end_date=2026-09-03")

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, handlers.CodeInvalidRequest, resp.Error)
}

func TestScheduleHandler_RangeTooWide(t *testing.T) {
	h := NewHandler(&fakeScheduleUseCase{err: getSchedule.ErrRangeTooWide}, nopLogger{})

	rec := doGetSchedule(h, "10", domain.RoleTeacher, 10, "start_date=2026-01-01&end_date=2026-12-31")

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
