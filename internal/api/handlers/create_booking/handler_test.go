package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LL-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/LL-SlotBookingService/internal/api/middleware"
	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	createBooking "github.com/m04kA/LL-SlotBookingService/internal/usecase/create_booking"
	"github.com/m04kA/LL-SlotBookingService/pkg/ptr"
	"github.com/m04kA/LL-SlotBookingService/pkg/types"
)

type fakeCreateBookingUseCase struct {
	lastReq *createBooking.Request
	resp    *createBooking.Response
	err     error
}

func (f *fakeCreateBookingUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
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

func doCreate(h *Handler, userID, role, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/create", bytes.NewBufferString(body))
	req.Header.Set(middleware.HeaderUserID, userID)
	req.Header.Set(middleware.HeaderUserRole, role)
	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestCreateBookingHandler_Success(t *testing.T) {
	startTime, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)
	endTime, err := types.NewTimeStringFromString("10:30")
	require.NoError(t, err)

	useCase := &fakeCreateBookingUseCase{
		resp: &createBooking.Response{
			ID:           1,
			Reference:    "3e5a0f1c-9f0f-4c2d-8a69-0f6f4a2b1c3d",
			StudentID:    20,
			AdvisorID:    10,
			Date:         time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC),
			StartTime:    startTime,
			EndTime:      endTime,
			Message:      ptr.Ptr("hello"),
			CreatedAt:    time.Date(2026, time.September, 2, 10, 0, 0, 0, time.UTC),
			AdvisorName:  "Anna Larsen",
			AdvisorEmail: "anna@example.com",
		},
	}
	h := NewHandler(useCase, nopLogger{})

	body := `{"teacher":10,"date":"2026-09-03","start_time":"10:00","end_time":"10:30","message":"hello"}`
	rec := doCreate(h, "20", domain.RoleStudent, body)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(1), resp.BookingID)
	assert.Equal(t, "3e5a0f1c-9f0f-4c2d-8a69-0f6f4a2b1c3d", resp.Reference)
	assert.Equal(t, int64(10), resp.AdvisorID)
	assert.Equal(t, "2026-09-03", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "Anna Larsen", resp.TeacherName)
	assert.Equal(t, "anna@example.com", resp.TeacherEmail)
	require.NotNil(t, resp.StudentMessage)
	assert.Equal(t, "hello", *resp.StudentMessage)

	require.NotNil(t, useCase.lastReq)
	assert.Equal(t, int64(20), useCase.lastReq.StudentID)
	assert.Equal(t, int64(10), useCase.lastReq.AdvisorID)
}

func TestCreateBookingHandler_TeacherForbidden(t *testing.T) {
	useCase := &fakeCreateBookingUseCase{}
	h := NewHandler(useCase, nopLogger{})

	rec := doCreate(h, "10", domain.RoleTeacher, `{"teacher":10,"date":"2026-09-03","start_time":"10:00"}`)

	require.Equal(t, http.StatusForbidden, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, handlers.CodeForbidden, resp.Error)
	assert.Nil(t, useCase.lastReq)
}

func TestCreateBookingHandler_InvalidBody(t *testing.T) {
	h := NewHandler(&fakeCreateBookingUseCase{}, nopLogger{})

	rec := doCreate(h, "20", domain.RoleStudent, `{"teacher":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"slot not found", createBooking.ErrSlotNotFound, http.StatusNotFound, handlers.CodeNotFound},
		{"slot unavailable", createBooking.ErrSlotUnavailable, http.StatusConflict, handlers.CodeSlotUnavailable},
		{"past date", createBooking.ErrPastDate, http.StatusBadRequest, handlers.CodePastDate},
		{"too soon", createBooking.ErrTooSoon, http.StatusBadRequest, handlers.CodeTooSoon},
		{"daily limit", createBooking.ErrDailyLimit, http.StatusConflict, handlers.CodeDailyLimit},
		{"advisor not found", createBooking.ErrAdvisorNotFound, http.StatusNotFound, handlers.CodeNotFound},
		{"advisor unavailable", createBooking.ErrAdvisorUnavailable, http.StatusConflict, handlers.CodeAdvisorUnavailable},
		{"student not found", createBooking.ErrStudentNotFound, http.StatusNotFound, handlers.CodeNotFound},
		{"questionnaire required", createBooking.ErrQuestionnaireRequired, http.StatusForbidden, handlers.CodeQuestionnaireRequired},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError, handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeCreateBookingUseCase{err: tt.err}, nopLogger{})

			rec := doCreate(h, "20", domain.RoleStudent, `{"teacher":10,"date":"2026-09-03","start_time":"10:00"}`)

			require.Equal(t, tt.wantStatus, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Error)
		})
	}
}
