package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	"github.com/m04kA/LL-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/LL-SlotBookingService/pkg/psqlbuilder"
)

// Имена unique constraint'ов из миграции 20250301000002_create_bookings.sql
const (
	constraintSlotUnique        = "bookings_slot_id_key"
	constraintStudentDateUnique = "bookings_student_date_key"
)

var bookingColumns = []string{
	"id",
	"reference",
	"slot_id",
	"student_id",
	"advisor_id",
	"slot_date",
	"start_time",
	"end_time",
	"message",
	"created_at",
}

// Repository репозиторий бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование. Выполняется внутри транзакции бронирования
// (транзакция прокидывается через контекст). Уникальные ограничения БД —
// последний рубеж защиты от двойной брони и второй брони студента за день;
// их нарушения транслируются в сентинельные ошибки
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"slot_id",
			"student_id",
			"advisor_id",
			"slot_date",
			"start_time",
			"end_time",
			"message",
		).
		Values(
			b.Reference,
			b.SlotID,
			b.StudentID,
			b.AdvisorID,
			b.Date,
			b.StartTime,
			b.EndTime,
			b.Message,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			switch pqErr.Constraint {
			case constraintSlotUnique:
				return nil, ErrSlotAlreadyBooked
			case constraintStudentDateUnique:
				return nil, ErrStudentDailyLimit
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time

	return b, nil
}

// CountByStudentAndDate возвращает число бронирований студента на дату
// Используется в транзакции бронирования для правила "одна встреча в день"
func (r *Repository) CountByStudentAndDate(ctx context.Context, studentID int64, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"student_id": studentID,
			"slot_date":  date,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByStudentAndDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByStudentAndDate - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetByStudentID получает бронирования студента
// upcoming=true: от сегодняшней даты и позже, по возрастанию
// upcoming=false: строго раньше сегодняшней даты, по убыванию
func (r *Repository) GetByStudentID(ctx context.Context, studentID int64, today time.Time, upcoming bool) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"student_id": studentID})

	if upcoming {
		selectBuilder = selectBuilder.
			Where(squirrel.GtOrEq{"slot_date": today}).
			OrderBy("slot_date ASC, start_time ASC")
	} else {
		selectBuilder = selectBuilder.
			Where(squirrel.Lt{"slot_date": today}).
			OrderBy("slot_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudentID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudentID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByAdvisorID получает бронирования советника (см. GetByStudentID)
func (r *Repository) GetByAdvisorID(ctx context.Context, advisorID int64, today time.Time, upcoming bool) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"advisor_id": advisorID})

	if upcoming {
		selectBuilder = selectBuilder.
			Where(squirrel.GtOrEq{"slot_date": today}).
			OrderBy("slot_date ASC, start_time ASC")
	} else {
		selectBuilder = selectBuilder.
			Where(squirrel.Lt{"slot_date": today}).
			OrderBy("slot_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAdvisorID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAdvisorID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByAdvisorAndDateRange получает бронирования советника за период
// Используется view projector'ом для деталей занятых слотов
func (r *Repository) GetByAdvisorAndDateRange(ctx context.Context, advisorID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
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

	return r.scanBookings(rows)
}

// GetByDateRange получает все бронирования за период (для админского экспорта)
func (r *Repository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.GtOrEq{"slot_date": from}).
		Where(squirrel.LtOrEq{"slot_date": to}).
		OrderBy("slot_date ASC, start_time ASC, advisor_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountByStudent возвращает число предстоящих и прошедших бронирований студента
func (r *Repository) CountByStudent(ctx context.Context, studentID int64, today time.Time) (upcoming int, past int, err error) {
	return r.countSplit(ctx, squirrel.Eq{"student_id": studentID}, today)
}

// CountByAdvisor возвращает число предстоящих и прошедших бронирований советника
func (r *Repository) CountByAdvisor(ctx context.Context, advisorID int64, today time.Time) (upcoming int, past int, err error) {
	return r.countSplit(ctx, squirrel.Eq{"advisor_id": advisorID}, today)
}

func (r *Repository) countSplit(ctx context.Context, owner squirrel.Eq, today time.Time) (int, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*) FILTER (WHERE slot_date >= ?)",
		"COUNT(*) FILTER (WHERE slot_date < ?)",
	).
		From("bookings").
		Where(owner).
		ToSql()

	if err != nil {
		return 0, 0, fmt.Errorf("%w: countSplit - build select query: %v", ErrBuildQuery, err)
	}

	// FILTER-аргументы идут перед аргументами WHERE
	args = append([]interface{}{today, today}, args...)

	var upcoming, past int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&upcoming, &past); err != nil {
		return 0, 0, fmt.Errorf("%w: countSplit - scan counts: %v", ErrScanRow, err)
	}

	return upcoming, past, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в бронирование
func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.SlotID,
		&b.StudentID,
		&b.AdvisorID,
		&b.Date,
		&b.StartTime,
		&b.EndTime,
		&b.Message,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
