package slot

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	"github.com/m04kA/LL-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/LL-SlotBookingService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"advisor_id",
	"slot_date",
	"start_time",
	"end_time",
	"state",
	"created_at",
	"updated_at",
}

// Repository репозиторий слотов доступности
// Единственный мутирующий примитив после материализации — CompareAndSetState
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByKey получает слот по составному ключу (advisor, date, start, end)
func (r *Repository) GetByKey(ctx context.Context, key domain.SlotKey) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{
			"advisor_id": key.AdvisorID,
			"slot_date":  key.Date,
			"start_time": key.StartTime,
			"end_time":   key.EndTime,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// Create материализует слот при первом обращении (first-touch)
// При гонке двух одновременных материализаций вставка с ON CONFLICT DO NOTHING
// не возвращает строку — в этом случае возвращается ErrSlotAlreadyExists,
// и вызывающая сторона перечитывает слот
func (r *Repository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns(
			"advisor_id",
			"slot_date",
			"start_time",
			"end_time",
			"state",
		).
		Values(
			slot.AdvisorID,
			slot.Date,
			slot.StartTime,
			slot.EndTime,
			slot.State,
		).
		Suffix("ON CONFLICT (advisor_id, slot_date, start_time) DO NOTHING RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlotAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// CompareAndSetState атомарно переводит слот из expected в next.
// Реализован одним условным UPDATE: строка обновляется только если её
// текущее состояние равно expected. Если строка не обновилась (состояние
// уже изменено конкурентным запросом или слот удален), возвращается
// ErrStateConflict без каких-либо побочных эффектов.
func (r *Repository) CompareAndSetState(ctx context.Context, key domain.SlotKey, expected, next domain.SlotState) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("state", next).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"advisor_id": key.AdvisorID,
			"slot_date":  key.Date,
			"start_time": key.StartTime,
			"end_time":   key.EndTime,
			"state":      expected,
		}).
		Suffix("RETURNING " + strings.Join(slotColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CompareAndSetState - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrStateConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CompareAndSetState - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// GetByAdvisorAndDateRange получает слоты советника за период [from, to]
// Используется view projector'ом; читает только зафиксированное состояние
func (r *Repository) GetByAdvisorAndDateRange(ctx context.Context, advisorID int64, from, to time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"advisor_id": advisorID}).
		Where(squirrel.GtOrEq{"slot_date": from}).
		Where(squirrel.LtOrEq{"slot_date": to}).
		OrderBy("slot_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAdvisorAndDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAdvisorAndDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// GetByAdvisorAndMonth получает все слоты советника за месяц
// Используется для сборки availability_dict после переключения
func (r *Repository) GetByAdvisorAndMonth(ctx context.Context, advisorID int64, year int, month time.Month) ([]*domain.Slot, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return r.GetByAdvisorAndDateRange(ctx, advisorID, from, to)
}

// GetOpenByDate получает все открытые слоты всех советников на дату
func (r *Repository) GetOpenByDate(ctx context.Context, date time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{
			"slot_date": date,
			"state":     domain.StateOpen,
		}).
		OrderBy("start_time ASC, advisor_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSlot сканирует одну строку в слот
func (r *Repository) scanSlot(row rowScanner) (*domain.Slot, error) {
	var slot domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.AdvisorID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.State,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		slot, err := r.scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
