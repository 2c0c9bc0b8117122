package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	"github.com/m04kA/LL-SlotBookingService/internal/integrations/profileservice"
	"github.com/m04kA/LL-SlotBookingService/internal/service/bookings/models"
)

// Service сервис списков бронирований студентов и советников
type Service struct {
	bookingRepo   BookingRepository
	profileClient ProfileServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, profileClient ProfileServiceClient, logger Logger) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		profileClient: profileClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// GetStudentBookings получает список бронирований студента со счетчиками.
// Список обогащается данными советников; при недоступности ProfileService
// отдается без имен и аватаров
func (s *Service) GetStudentBookings(ctx context.Context, req *models.GetStudentBookingsRequest) (*models.BookingListResponse, error) {
	if req.StudentID <= 0 {
		return nil, fmt.Errorf("%w: studentID must be positive", ErrInvalidInput)
	}
	if !models.ValidScope(req.Scope) {
		return nil, fmt.Errorf("%w: scope must be %q or %q", ErrInvalidInput, models.ScopeUpcoming, models.ScopePast)
	}

	s.logger.Info("GetStudentBookings: student=%d, scope=%s", req.StudentID, req.Scope)

	today := models.Today(s.timeProvider.Now())
	upcoming := req.Scope == models.ScopeUpcoming

	list, err := s.bookingRepo.GetByStudentID(ctx, req.StudentID, today, upcoming)
	if err != nil {
		s.logger.Error("GetStudentBookings: repository error for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: GetStudentBookings - repository error: %v", ErrInternal, err)
	}

	upcomingCount, pastCount, err := s.bookingRepo.CountByStudent(ctx, req.StudentID, today)
	if err != nil {
		s.logger.Error("GetStudentBookings: count error for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: GetStudentBookings - count error: %v", ErrInternal, err)
	}

	items := s.enrich(ctx, list)

	return &models.BookingListResponse{
		Bookings:      items,
		UpcomingCount: upcomingCount,
		PastCount:     pastCount,
	}, nil
}

// GetAdvisorBookings получает список бронирований советника со счетчиками
func (s *Service) GetAdvisorBookings(ctx context.Context, req *models.GetAdvisorBookingsRequest) (*models.BookingListResponse, error) {
	if req.AdvisorID <= 0 {
		return nil, fmt.Errorf("%w: advisorID must be positive", ErrInvalidInput)
	}
	if !models.ValidScope(req.Scope) {
		return nil, fmt.Errorf("%w: scope must be %q or %q", ErrInvalidInput, models.ScopeUpcoming, models.ScopePast)
	}

	s.logger.Info("GetAdvisorBookings: advisor=%d, scope=%s", req.AdvisorID, req.Scope)

	today := models.Today(s.timeProvider.Now())
	upcoming := req.Scope == models.ScopeUpcoming

	list, err := s.bookingRepo.GetByAdvisorID(ctx, req.AdvisorID, today, upcoming)
	if err != nil {
		s.logger.Error("GetAdvisorBookings: repository error for advisor=%d: %v", req.AdvisorID, err)
		return nil, fmt.Errorf("%w: GetAdvisorBookings - repository error: %v", ErrInternal, err)
	}

	upcomingCount, pastCount, err := s.bookingRepo.CountByAdvisor(ctx, req.AdvisorID, today)
	if err != nil {
		s.logger.Error("GetAdvisorBookings: count error for advisor=%d: %v", req.AdvisorID, err)
		return nil, fmt.Errorf("%w: GetAdvisorBookings - count error: %v", ErrInternal, err)
	}

	// Советник и так знает себя, профили не запрашиваем
	items := make([]models.BookingItem, 0, len(list))
	for _, b := range list {
		items = append(items, models.FromDomainBooking(b))
	}

	return &models.BookingListResponse{
		Bookings:      items,
		UpcomingCount: upcomingCount,
		PastCount:     pastCount,
	}, nil
}

// enrich дополняет элементы списка данными советников с graceful degradation
func (s *Service) enrich(ctx context.Context, list []*domain.Booking) []models.BookingItem {
	items := make([]models.BookingItem, 0, len(list))
	for _, b := range list {
		items = append(items, models.FromDomainBooking(b))
	}

	if len(items) == 0 {
		return items
	}

	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for _, b := range list {
		if _, ok := seen[b.AdvisorID]; ok {
			continue
		}
		seen[b.AdvisorID] = struct{}{}
		ids = append(ids, b.AdvisorID)
	}

	advisors, err := s.profileClient.GetAdvisorsByIDsWithGracefulDegradation(ctx, ids)
	if err != nil {
		if errors.Is(err, profileservice.ErrServiceDegraded) {
			s.logger.Warn("enrich: profile service degraded, returning list without advisor profiles")
			return items
		}
		s.logger.Error("enrich: failed to load advisor profiles: %v", err)
		return items
	}

	for i := range items {
		if advisor, ok := advisors[items[i].AdvisorID]; ok {
			items[i].AdvisorName = advisor.DisplayName()
			items[i].AdvisorEmail = advisor.Email
			items[i].AdvisorAvatarURL = advisor.AvatarURL
		}
	}

	return items
}
