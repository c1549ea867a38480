package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// CreateGuarded inserts a booking after re-validating the paid-conflict
	// and pending-hold limits inside the same transaction, under an advisory
	// lock keyed by (resort, check-in date). Two racing inserts for the last
	// pending slot therefore serialize: one commits, the other gets
	// ErrPendingLimitHit (or ErrPaidConflict).
	CreateGuarded(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id int64) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status PaymentStatus) error

	// CountOverlapping counts bookings for the resort whose stay covers the
	// given check-in timestamp (check_in <= t AND check_out > t). paid=true
	// counts captured payments, paid=false counts everything else.
	CountOverlapping(ctx context.Context, resortID int64, checkIn time.Time, paid bool) (int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
	loc  *time.Location
}

// NewPgxRepository creates a booking repository. The location must be the same
// one the pricing resolver uses, so the guarded insert serializes on the same
// calendar date the availability check evaluated. A nil location falls back to
// UTC.
func NewPgxRepository(pool *pgxpool.Pool, loc *time.Location) Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &pgxRepository{pool: pool, loc: loc}
}

// lockKey names the advisory lock serializing creates for one resort and one
// check-in calendar date, rendered in the given location.
func lockKey(resortID int64, checkIn time.Time, loc *time.Location) string {
	return fmt.Sprintf("booking:%d:%s", resortID, checkIn.In(loc).Format("2006-01-02"))
}

// rowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, so overlap counts
// run identically inside and outside the guarded transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func countOverlapping(ctx context.Context, q rowQuerier, resortID int64, checkIn time.Time, paid bool) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("count(*)").
		From("public.bookings").
		Where(squirrel.Eq{"resort_id": resortID}).
		Where(squirrel.LtOrEq{"check_in": checkIn}).
		Where(squirrel.Gt{"check_out": checkIn})

	if paid {
		query = query.Where(squirrel.Eq{"payment_status": PaymentPaid})
	} else {
		query = query.Where(squirrel.NotEq{"payment_status": PaymentPaid})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build overlap count query failed: %w", err)
	}

	var count int
	if err := q.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count overlapping bookings failed: %w", err)
	}
	return count, nil
}

func (r *pgxRepository) CountOverlapping(ctx context.Context, resortID int64, checkIn time.Time, paid bool) (int, error) {
	return countOverlapping(ctx, r.pool, resortID, checkIn, paid)
}

func (r *pgxRepository) CreateGuarded(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking transaction failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize concurrent creates for the same resort and check-in date.
	// The lock is transaction-scoped and released on commit or rollback.
	key := lockKey(b.ResortID, b.CheckIn, r.loc)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("acquire booking lock failed: %w", err)
	}

	// Re-validate both caps now that we hold the lock.
	paid, err := countOverlapping(ctx, tx, b.ResortID, b.CheckIn, true)
	if err != nil {
		return err
	}
	if paid > 0 {
		return ErrPaidConflict
	}

	pending, err := countOverlapping(ctx, tx, b.ResortID, b.CheckIn, false)
	if err != nil {
		return err
	}
	if pending >= MaxPendingHolds {
		return ErrPendingLimitHit
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"resort_id", "guest_name", "email", "phone",
			"check_in", "check_out", "guests", "total_price", "payment_status",
		).
		Values(
			b.ResortID, b.GuestName, b.Email, b.Phone,
			b.CheckIn, b.CheckOut, b.Guests, b.TotalPrice, b.PaymentStatus,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking transaction failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"b.id", "b.resort_id", "r.name",
		"b.guest_name", "b.email", "b.phone",
		"b.check_in", "b.check_out", "b.guests", "b.total_price", "b.payment_status",
		"b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.resorts r ON b.resort_id = r.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var b Booking
	if err := row.Scan(
		&b.ID, &b.ResortID, &b.ResortName,
		&b.GuestName, &b.Email, &b.Phone,
		&b.CheckIn, &b.CheckOut, &b.Guests, &b.TotalPrice, &b.PaymentStatus,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.resort_id", "r.name",
		"b.guest_name", "b.email", "b.phone",
		"b.check_in", "b.check_out", "b.guests", "b.total_price", "b.payment_status",
		"b.created_at", "b.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.resorts r ON b.resort_id = r.id")

	if filter.ResortID != 0 {
		query = query.Where(squirrel.Eq{"b.resort_id": filter.ResortID})
	}
	if filter.PaymentStatus != "" {
		query = query.Where(squirrel.Eq{"b.payment_status": filter.PaymentStatus})
	}
	if filter.CheckInFrom != nil {
		query = query.Where(squirrel.GtOrEq{"b.check_in": filter.CheckInFrom})
	}
	if filter.CheckInTo != nil {
		query = query.Where(squirrel.LtOrEq{"b.check_in": filter.CheckInTo})
	}

	// Sorting
	orderBy := "b.check_in"
	if filter.SortBy != "" {
		orderBy = "b." + filter.SortBy
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.ResortID, &b.ResortName,
			&b.GuestName, &b.Email, &b.Phone,
			&b.CheckIn, &b.CheckOut, &b.Guests, &b.TotalPrice, &b.PaymentStatus,
			&b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdatePaymentStatus(ctx context.Context, id int64, status PaymentStatus) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("payment_status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update payment status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update payment status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
