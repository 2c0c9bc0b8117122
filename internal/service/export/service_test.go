package export

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	"github.com/m04kA/LL-SlotBookingService/internal/integrations/profileservice"
	"github.com/m04kA/LL-SlotBookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubBookingRepo struct {
	bookings []*domain.Booking
}

func (s *stubBookingRepo) GetByDateRange(_ context.Context, from, to time.Time) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if !b.Date.Before(from) && !b.Date.After(to) {
			result = append(result, b)
		}
	}
	return result, nil
}

type stubProfileClient struct {
	advisors map[int64]*profileservice.Advisor
	degraded bool
}

func (s *stubProfileClient) GetAdvisorsByIDsWithGracefulDegradation(_ context.Context, ids []int64) (map[int64]*profileservice.Advisor, error) {
	if s.degraded {
		return nil, profileservice.ErrServiceDegraded
	}
	return s.advisors, nil
}

func dateAt(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestExport_ProducesWorkbook(t *testing.T) {
	bookings := []*domain.Booking{
		{ID: 1, Reference: "ref-1", StudentID: 20, AdvisorID: 10,
			Date: dateAt(2026, time.September, 3), StartTime: "10:00", EndTime: "10:30",
			Message:   ptr.Ptr("hello"),
			CreatedAt: time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)},
	}
	profiles := &stubProfileClient{advisors: map[int64]*profileservice.Advisor{
		10: {ID: 10, Email: "anna@example.com", FirstName: "Anna", LastName: "Larsen"},
	}}
	svc := NewService(&stubBookingRepo{bookings: bookings}, profiles, nopLogger{})

	buf, fileName, err := svc.Export(context.Background(), &Request{
		StartDate: dateAt(2026, time.September, 1),
		EndDate:   dateAt(2026, time.September, 30),
	})

	require.NoError(t, err)
	assert.Equal(t, "bookings_2026-09-01_to_2026-09-30.xlsx", fileName)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Reference", rows[0][0])
	assert.Equal(t, "ref-1", rows[1][0])
	assert.Equal(t, "2026-09-03", rows[1][1])
	assert.Equal(t, "Anna Larsen", rows[1][5])
	assert.Equal(t, "anna@example.com", rows[1][6])
}

func TestExport_ProfileDegradation(t *testing.T) {
	bookings := []*domain.Booking{
		{ID: 1, Reference: "ref-1", StudentID: 20, AdvisorID: 10,
			Date: dateAt(2026, time.September, 3), StartTime: "10:00", EndTime: "10:30"},
	}
	svc := NewService(&stubBookingRepo{bookings: bookings}, &stubProfileClient{degraded: true}, nopLogger{})

	buf, _, err := svc.Export(context.Background(), &Request{
		StartDate: dateAt(2026, time.September, 1),
		EndDate:   dateAt(2026, time.September, 30),
	})

	// Экспорт отдается без имен советников
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ref-1", rows[1][0])
}

func TestExport_ValidationErrors(t *testing.T) {
	svc := NewService(&stubBookingRepo{}, &stubProfileClient{}, nopLogger{})
	ctx := context.Background()

	_, _, err := svc.Export(ctx, &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = svc.Export(ctx, &Request{
		StartDate: dateAt(2026, time.September, 30),
		EndDate:   dateAt(2026, time.September, 1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
