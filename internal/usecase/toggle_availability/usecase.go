package toggle_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	slotRepo "github.com/m04kA/LL-SlotBookingService/internal/infra/storage/slot"
)

// Метки результата для метрики переключений
const (
	resultOpened    = "opened"
	resultWithdrawn = "withdrawn"
	resultRejected  = "rejected"
	resultBusy      = "busy"
)

// UseCase use case переключения доступности слота советником
type UseCase struct {
	slotRepo     SlotRepository
	metrics      Metrics
	leadMinutes  int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, metrics Metrics, leadMinutes int, logger Logger) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		metrics:      metrics,
		leadMinutes:  leadMinutes,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переключает слот советника между open и withdrawn.
// Слот материализуется при первом обращении сразу в состоянии open.
// Все изменения состояния идут через условное обновление: при конкурентном
// изменении делается ровно одно повторное чтение, после второго конфликта
// возвращается ErrBusy без каких-либо частичных эффектов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ToggleAvailability: advisor=%d, date=%s, time=%s",
		req.AdvisorID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ToggleAvailability: validation failed: %v", err)
		uc.metrics.IncToggle(resultRejected)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Прошедшие даты переключать нельзя
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("ToggleAvailability: date %s is in the past", req.Date.Format(domain.DateFormat))
		uc.metrics.IncToggle(resultRejected)
		return nil, ErrPastDate
	}

	endTime, err := req.StartTime.AddMinutes(domain.SlotDurationMinutes)
	if err != nil {
		uc.metrics.IncToggle(resultRejected)
		return nil, fmt.Errorf("%w: failed to compute slot end: %v", ErrInternal, err)
	}

	key := domain.SlotKey{
		AdvisorID: req.AdvisorID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   endTime,
	}

	// 4. Переключаем с одним повторным чтением при конкурентном конфликте
	slot, err := uc.toggle(ctx, key)
	if err != nil {
		switch {
		case errors.Is(err, ErrBusy):
			uc.metrics.IncToggle(resultBusy)
		default:
			uc.metrics.IncToggle(resultRejected)
		}
		return nil, err
	}

	if slot.IsOpen() {
		uc.metrics.IncToggle(resultOpened)
	} else {
		uc.metrics.IncToggle(resultWithdrawn)
	}

	uc.logger.Info("ToggleAvailability: advisor=%d slot %s -> %s",
		req.AdvisorID, key.String(), slot.State)

	// 5. Собираем карту доступности месяца слота
	dict, err := uc.buildAvailabilityDict(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Response{
		AdvisorID:        slot.AdvisorID,
		Date:             slot.Date,
		StartTime:        slot.StartTime,
		EndTime:          slot.EndTime,
		State:            string(slot.State),
		AvailabilityDict: dict,
	}, nil
}

// toggle выполняет одну попытку переключения плюс ровно один retry при конфликте
func (uc *UseCase) toggle(ctx context.Context, key domain.SlotKey) (*domain.Slot, error) {
	const maxAttempts = 2

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		slot, err := uc.attemptToggle(ctx, key)
		if err == nil {
			return slot, nil
		}

		// Конфликт CAS или гонка материализации: перечитываем и пробуем еще раз
		if errors.Is(err, slotRepo.ErrStateConflict) || errors.Is(err, slotRepo.ErrSlotAlreadyExists) {
			uc.logger.Warn("ToggleAvailability: concurrent modification of %s, attempt %d/%d",
				key.String(), attempt, maxAttempts)
			continue
		}

		return nil, err
	}

	uc.logger.Warn("ToggleAvailability: slot %s still contended after retry", key.String())
	return nil, ErrBusy
}

// attemptToggle одна попытка: чтение, выбор целевого состояния, условное обновление
func (uc *UseCase) attemptToggle(ctx context.Context, key domain.SlotKey) (*domain.Slot, error) {
	now := uc.timeProvider.Now()

	current, err := uc.slotRepo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			// Первое касание: слот еще не материализован, создаем его открытым
			if err := validateLeadWindow(key.Date, key.StartTime, now, uc.leadMinutes); err != nil {
				return nil, err
			}
			return uc.slotRepo.Create(ctx, &domain.Slot{
				AdvisorID: key.AdvisorID,
				Date:      key.Date,
				StartTime: key.StartTime,
				EndTime:   key.EndTime,
				State:     domain.StateOpen,
			})
		}
		uc.logger.Error("ToggleAvailability: failed to read slot %s: %v", key.String(), err)
		return nil, fmt.Errorf("%w: failed to read slot: %v", ErrInternal, err)
	}

	next, ok := current.ToggledState()
	if !ok {
		return nil, ErrSlotLocked
	}

	if next == domain.StateOpen {
		if err := validateLeadWindow(key.Date, key.StartTime, now, uc.leadMinutes); err != nil {
			return nil, err
		}
	}

	return uc.slotRepo.CompareAndSetState(ctx, key, current.State, next)
}

// buildAvailabilityDict собирает карту доступности месяца слота:
// ключ "YYYY-MM-DD,HH:MM", значение true только для открытых слотов
func (uc *UseCase) buildAvailabilityDict(ctx context.Context, req *Request) (map[string]bool, error) {
	slots, err := uc.slotRepo.GetByAdvisorAndMonth(ctx, req.AdvisorID, req.Date.Year(), req.Date.Month())
	if err != nil {
		uc.logger.Error("ToggleAvailability: failed to load month slots for advisor=%d: %v", req.AdvisorID, err)
		return nil, fmt.Errorf("%w: failed to load month slots: %v", ErrInternal, err)
	}

	dict := make(map[string]bool, len(slots))
	for _, s := range slots {
		dict[s.Key().String()] = s.IsOpen()
	}

	return dict, nil
}
