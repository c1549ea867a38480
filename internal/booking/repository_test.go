package booking

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resortwale/booking-backend/internal/db"
)

func TestLockKeyUsesConfiguredLocation(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 02:00 and 11:00 IST on 2025-11-08 straddle UTC midnight: the first is
	// still 2025-11-07 in UTC. Both must take the same lock.
	early := time.Date(2025, time.November, 8, 2, 0, 0, 0, kolkata)
	late := time.Date(2025, time.November, 8, 11, 0, 0, 0, kolkata)
	require.Equal(t, time.November, early.UTC().Month())
	require.Equal(t, 7, early.UTC().Day())

	assert.Equal(t, lockKey(1, early, kolkata), lockKey(1, late, kolkata))
	assert.Equal(t, "booking:1:2025-11-08", lockKey(1, early, kolkata))

	// Different calendar dates and different resorts take different locks.
	nextDay := time.Date(2025, time.November, 9, 2, 0, 0, 0, kolkata)
	assert.NotEqual(t, lockKey(1, early, kolkata), lockKey(1, nextDay, kolkata))
	assert.NotEqual(t, lockKey(1, early, kolkata), lockKey(2, early, kolkata))
}

// testPool connects to the database named by DB_DSN, or skips the test when
// no database is configured.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		t.Skip("DB_DSN not set, skipping database test")
	}

	pool, err := db.NewPool(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func createTestResort(t *testing.T, pool *pgxpool.Pool) int64 {
	t.Helper()
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx, `
		INSERT INTO public.resorts (name, location, description, price, available)
		VALUES ('Race Test Resort', 'Lonavala', '', 5000, true)
		RETURNING id
	`).Scan(&id)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM public.bookings WHERE resort_id = $1`, id)
		_, _ = pool.Exec(ctx, `DELETE FROM public.resorts WHERE id = $1`, id)
	})
	return id
}

func pendingBooking(resortID int64, guest string, checkIn, checkOut time.Time) *Booking {
	return &Booking{
		ResortID:      resortID,
		GuestName:     guest,
		Email:         guest + "@example.com",
		Phone:         "9876543210",
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        2,
		TotalPrice:    6090,
		PaymentStatus: PaymentPending,
	}
}

func TestCreateGuardedRaceForLastPendingSlot(t *testing.T) {
	pool := testPool(t)
	resortID := createTestResort(t, pool)

	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	repo := NewPgxRepository(pool, kolkata)

	ctx := context.Background()
	checkIn := time.Date(2025, time.November, 8, 0, 0, 0, 0, kolkata)
	checkOut := checkIn.AddDate(0, 0, 1)

	// Fill all but the last pending slot.
	for i := 0; i < MaxPendingHolds-1; i++ {
		require.NoError(t, repo.CreateGuarded(ctx, pendingBooking(resortID, "early", checkIn, checkOut)))
	}

	// Two simultaneous creates compete for the remaining slot. Exactly one
	// must commit; the other must see the winner's row in its re-count.
	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = repo.CreateGuarded(ctx, pendingBooking(resortID, "racer", checkIn, checkOut))
		}(i)
	}
	wg.Wait()

	var successes, rejections int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrPendingLimitHit):
			rejections++
		default:
			t.Fatalf("unexpected create error: %v", err)
		}
	}
	assert.Equal(t, 1, successes, "exactly one racer should take the last slot")
	assert.Equal(t, 1, rejections, "the loser should be rejected by the in-transaction re-count")

	pending, err := repo.CountOverlapping(ctx, resortID, checkIn, false)
	require.NoError(t, err)
	assert.Equal(t, MaxPendingHolds, pending)
}

func TestCreateGuardedRejectsPaidConflict(t *testing.T) {
	pool := testPool(t)
	resortID := createTestResort(t, pool)

	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	repo := NewPgxRepository(pool, kolkata)

	ctx := context.Background()
	checkIn := time.Date(2025, time.December, 20, 0, 0, 0, 0, kolkata)
	checkOut := checkIn.AddDate(0, 0, 2)

	paid := pendingBooking(resortID, "payer", checkIn, checkOut)
	require.NoError(t, repo.CreateGuarded(ctx, paid))
	require.NoError(t, repo.UpdatePaymentStatus(ctx, paid.ID, PaymentPaid))

	// A stay whose check-in falls inside the paid span is rejected, even on a
	// different calendar date.
	overlapIn := checkIn.AddDate(0, 0, 1)
	err = repo.CreateGuarded(ctx, pendingBooking(resortID, "late", overlapIn, overlapIn.AddDate(0, 0, 1)))
	assert.ErrorIs(t, err, ErrPaidConflict)
}
