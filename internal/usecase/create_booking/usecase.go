package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	bookingRepo "github.com/m04kA/LL-SlotBookingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/LL-SlotBookingService/internal/infra/storage/slot"
	profileClient "github.com/m04kA/LL-SlotBookingService/internal/integrations/profileservice"
)

// Метки результата для метрик бронирований
const (
	resultCreated  = "created"
	resultRejected = "rejected"
	resultConflict = "conflict"

	conflictSlotTaken  = "slot_taken"
	conflictDailyLimit = "daily_limit"
)

// UseCase use case создания бронирования студентом
type UseCase struct {
	slotRepo      SlotRepository
	bookingRepo   BookingRepository
	profileClient ProfileServiceClient
	txManager     TransactionManager
	metrics       Metrics
	leadMinutes   int
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	profileClient ProfileServiceClient,
	txManager TransactionManager,
	metrics Metrics,
	leadMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:      slotRepo,
		bookingRepo:   bookingRepo,
		profileClient: profileClient,
		txManager:     txManager,
		metrics:       metrics,
		leadMinutes:   leadMinutes,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
// Захват слота идет в сериализуемой транзакции через условное обновление
// open -> booked: при проигрыше гонки запрос получает ErrSlotUnavailable
// без повторных попыток, слот достается ровно одному студенту.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: student=%d, advisor=%d, date=%s, time=%s",
		req.StudentID, req.AdvisorID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.IncBookingCreated(resultRejected)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Прошедшие даты и слоты внутри lead окна бронировать нельзя
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		uc.metrics.IncBookingCreated(resultRejected)
		return nil, ErrPastDate
	}

	if err := validateLeadWindow(req.Date, req.StartTime, now, uc.leadMinutes); err != nil {
		uc.logger.Warn("CreateBooking: lead window check failed: %v", err)
		uc.metrics.IncBookingCreated(resultRejected)
		return nil, err
	}

	// 4. Проверяем студента: профиль существует, анкета заполнена
	student, err := uc.profileClient.GetStudent(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, profileClient.ErrStudentNotFound) {
			uc.logger.Warn("CreateBooking: student id=%d not found", req.StudentID)
			uc.metrics.IncBookingCreated(resultRejected)
			return nil, ErrStudentNotFound
		}
		uc.logger.Error("CreateBooking: failed to get student id=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
	}

	if !student.QuestionnaireCompleted {
		uc.logger.Warn("CreateBooking: student id=%d has not completed questionnaire", req.StudentID)
		uc.metrics.IncBookingCreated(resultRejected)
		return nil, ErrQuestionnaireRequired
	}

	// 5. Проверяем советника: профиль существует и принимает бронирования
	advisor, err := uc.profileClient.GetAdvisor(ctx, req.AdvisorID)
	if err != nil {
		if errors.Is(err, profileClient.ErrAdvisorNotFound) {
			uc.logger.Warn("CreateBooking: advisor id=%d not found", req.AdvisorID)
			uc.metrics.IncBookingCreated(resultRejected)
			return nil, ErrAdvisorNotFound
		}
		uc.logger.Error("CreateBooking: failed to get advisor id=%d: %v", req.AdvisorID, err)
		return nil, fmt.Errorf("%w: failed to get advisor: %v", ErrInternal, err)
	}

	if !advisor.AcceptsBookings() {
		uc.logger.Warn("CreateBooking: advisor id=%d does not accept bookings", req.AdvisorID)
		uc.metrics.IncBookingCreated(resultRejected)
		return nil, ErrAdvisorUnavailable
	}

	endTime, err := req.StartTime.AddMinutes(domain.SlotDurationMinutes)
	if err != nil {
		uc.metrics.IncBookingCreated(resultRejected)
		return nil, fmt.Errorf("%w: failed to compute slot end: %v", ErrInternal, err)
	}

	key := domain.SlotKey{
		AdvisorID: req.AdvisorID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   endTime,
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Захват слота и создание брони в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Слот должен быть материализован и открыт
		slot, err := uc.slotRepo.GetByKey(txCtx, key)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to read slot %s: %v", key.String(), err)
			return fmt.Errorf("%w: failed to read slot: %v", ErrInternal, err)
		}

		if !slot.IsOpen() {
			uc.logger.Warn("CreateBooking: slot %s is %s", key.String(), slot.State)
			return ErrSlotUnavailable
		}

		// 6.2. Одно бронирование студента в день
		count, err := uc.bookingRepo.CountByStudentAndDate(txCtx, req.StudentID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count student bookings: %v", err)
			return fmt.Errorf("%w: failed to count student bookings: %v", ErrInternal, err)
		}
		if count > 0 {
			uc.logger.Warn("CreateBooking: student id=%d already has a booking on %s",
				req.StudentID, req.Date.Format(domain.DateFormat))
			return ErrDailyLimit
		}

		// 6.3. Захватываем слот условным обновлением open -> booked
		// Без повторных попыток: проигравший гонку получает отказ
		booked, err := uc.slotRepo.CompareAndSetState(txCtx, key, domain.StateOpen, domain.StateBooked)
		if err != nil {
			if errors.Is(err, slotRepo.ErrStateConflict) {
				uc.logger.Warn("CreateBooking: lost the race for slot %s", key.String())
				uc.metrics.IncBookingConflict(conflictSlotTaken)
				return ErrSlotUnavailable
			}
			uc.logger.Error("CreateBooking: failed to claim slot %s: %v", key.String(), err)
			return fmt.Errorf("%w: failed to claim slot: %v", ErrInternal, err)
		}

		// 6.4. Создаем бронирование с денормализацией данных слота
		booking := &domain.Booking{
			Reference: uuid.NewString(),
			SlotID:    booked.ID,
			StudentID: req.StudentID,
			AdvisorID: booked.AdvisorID,
			Date:      booked.Date,
			StartTime: booked.StartTime,
			EndTime:   booked.EndTime,
			Message:   sanitizeMessage(req.Message),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Уникальные ограничения БД как последний рубеж
			switch {
			case errors.Is(err, bookingRepo.ErrSlotAlreadyBooked):
				uc.metrics.IncBookingConflict(conflictSlotTaken)
				return ErrSlotUnavailable
			case errors.Is(err, bookingRepo.ErrStudentDailyLimit):
				uc.metrics.IncBookingConflict(conflictDailyLimit)
				return ErrDailyLimit
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotUnavailable), errors.Is(err, ErrDailyLimit):
			uc.metrics.IncBookingCreated(resultConflict)
		case errors.Is(err, ErrInternal):
			// внутренние ошибки в бизнес-метрику не попадают
		default:
			uc.metrics.IncBookingCreated(resultRejected)
		}
		return nil, err
	}

	uc.metrics.IncBookingCreated(resultCreated)
	uc.logger.Info("CreateBooking: created booking id=%d reference=%s for slot %s",
		result.ID, result.Reference, key.String())

	return &Response{
		ID:               result.ID,
		Reference:        result.Reference,
		StudentID:        result.StudentID,
		AdvisorID:        result.AdvisorID,
		Date:             result.Date,
		StartTime:        result.StartTime,
		EndTime:          result.EndTime,
		Message:          result.Message,
		CreatedAt:        result.CreatedAt,
		AdvisorName:      advisor.DisplayName(),
		AdvisorEmail:     advisor.Email,
		AdvisorAvatarURL: advisor.AvatarURL,
	}, nil
}
