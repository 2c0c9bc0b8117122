package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	"github.com/m04kA/LL-SlotBookingService/internal/integrations/profileservice"
)

const sheetName = "Bookings"

// maxRangeDays предельная ширина периода экспорта
const maxRangeDays = 366

// Request параметры экспорта бронирований
type Request struct {
	StartDate time.Time
	EndDate   time.Time
}

// Service сервис админского экспорта бронирований в xlsx
type Service struct {
	bookingRepo   BookingRepository
	profileClient ProfileServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса экспорта
func NewService(bookingRepo BookingRepository, profileClient ProfileServiceClient, logger Logger) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		profileClient: profileClient,
		logger:        logger,
	}
}

// Export собирает книгу xlsx с бронированиями за период.
// Возвращает содержимое файла и имя вложения
func (s *Service) Export(ctx context.Context, req *Request) (*bytes.Buffer, string, error) {
	if err := validateRequest(req); err != nil {
		s.logger.Warn("Export: validation failed: %v", err)
		return nil, "", err
	}

	s.logger.Info("Export: from=%s, to=%s",
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	bookings, err := s.bookingRepo.GetByDateRange(ctx, req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Error("Export: failed to load bookings: %v", err)
		return nil, "", fmt.Errorf("%w: Export - repository error: %v", ErrInternal, err)
	}

	advisors := s.loadAdvisors(ctx, bookings)

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("%w: Export - create sheet: %v", ErrInternal, err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"Reference", "Date", "Start", "End",
		"Advisor ID", "Advisor", "Advisor Email",
		"Student ID", "Message", "Created At",
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, b := range bookings {
		row := i + 2
		advisorName, advisorEmail := "", ""
		if advisor, ok := advisors[b.AdvisorID]; ok {
			advisorName = advisor.DisplayName()
			advisorEmail = advisor.Email
		}
		message := ""
		if b.Message != nil {
			message = *b.Message
		}

		values := []interface{}{
			b.Reference,
			b.Date.Format(domain.DateFormat),
			b.StartTime.String(),
			b.EndTime.String(),
			b.AdvisorID,
			advisorName,
			advisorEmail,
			b.StudentID,
			message,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 38)
	_ = f.SetColWidth(sheetName, "B", "D", 12)
	_ = f.SetColWidth(sheetName, "E", "H", 14)
	_ = f.SetColWidth(sheetName, "I", "I", 40)
	_ = f.SetColWidth(sheetName, "J", "J", 20)

	_ = f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("%w: Export - write workbook: %v", ErrInternal, err)
	}

	fileName := fmt.Sprintf("bookings_%s_to_%s.xlsx",
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	s.logger.Info("Export: %d bookings exported to %s", len(bookings), fileName)
	return buf, fileName, nil
}

// loadAdvisors подтягивает профили советников с graceful degradation:
// при недоступности ProfileService экспорт идет без имен
func (s *Service) loadAdvisors(ctx context.Context, bookings []*domain.Booking) map[int64]*profileservice.Advisor {
	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for _, b := range bookings {
		if _, ok := seen[b.AdvisorID]; ok {
			continue
		}
		seen[b.AdvisorID] = struct{}{}
		ids = append(ids, b.AdvisorID)
	}

	if len(ids) == 0 {
		return map[int64]*profileservice.Advisor{}
	}

	advisors, err := s.profileClient.GetAdvisorsByIDsWithGracefulDegradation(ctx, ids)
	if err != nil {
		s.logger.Warn("Export: advisor profiles unavailable, exporting without names: %v", err)
		return map[int64]*profileservice.Advisor{}
	}
	return advisors
}

func validateRequest(req *Request) error {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}
	if req.EndDate.Sub(req.StartDate) > maxRangeDays*24*time.Hour {
		return fmt.Errorf("%w: at most %d days per export", ErrInvalidInput, maxRangeDays)
	}
	return nil
}
