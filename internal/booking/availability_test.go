package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resortwale/booking-backend/internal/block"
	"github.com/resortwale/booking-backend/internal/pricing"
	"github.com/resortwale/booking-backend/internal/resort"
)

// ==== In-memory collaborator fakes ====

type fakeResortStore struct {
	res   *resort.Resort
	err   error
	calls int
}

func (f *fakeResortStore) GetWithPricing(_ context.Context, id int64) (*resort.Resort, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.res == nil || f.res.ID != id {
		return nil, resort.ErrNotFound
	}
	return f.res, nil
}

type fakeBlockStore struct {
	blocked map[block.Source]bool
	errs    map[block.Source]error
	calls   []block.Source
}

func (f *fakeBlockStore) IsDateBlocked(_ context.Context, _ int64, _ time.Time, source block.Source) (bool, error) {
	f.calls = append(f.calls, source)
	if err := f.errs[source]; err != nil {
		return false, err
	}
	return f.blocked[source], nil
}

type fakeCounter struct {
	paid       int
	pending    int
	paidErr    error
	pendingErr error
	calls      int
}

func (f *fakeCounter) CountOverlapping(_ context.Context, _ int64, _ time.Time, paid bool) (int, error) {
	f.calls++
	if paid {
		return f.paid, f.paidErr
	}
	return f.pending, f.pendingErr
}

// ==== Fixtures ====

func intPtr(v int) *int { return &v }

func testResort() *resort.Resort {
	return &resort.Resort{
		ID:        1,
		Name:      "Lakeview Retreat",
		Price:     5000,
		Available: true,
		PriceRules: []resort.PriceRule{
			{ResortID: 1, DayType: pricing.DayTypeFriday, Price: 7000},
			{ResortID: 1, DayType: pricing.DayTypeWeekend, Price: 6000},
		},
	}
}

type checkerFixture struct {
	checker  *Checker
	resorts  *fakeResortStore
	blocks   *fakeBlockStore
	bookings *fakeCounter
}

func newCheckerFixture() *checkerFixture {
	f := &checkerFixture{
		resorts:  &fakeResortStore{res: testResort()},
		blocks:   &fakeBlockStore{blocked: map[block.Source]bool{}, errs: map[block.Source]error{}},
		bookings: &fakeCounter{},
	}
	f.checker = NewChecker(f.resorts, f.blocks, f.bookings, pricing.NewResolver(time.UTC))
	return f
}

var (
	// Saturday check-in: weekend rule 6000, one night, 1.5% fee 90, total 6090.
	saturdayIn  = time.Date(2025, time.November, 8, 0, 0, 0, 0, time.UTC)
	saturdayOut = time.Date(2025, time.November, 9, 0, 0, 0, 0, time.UTC)
)

// ==== Tests ====

func TestCheckAvailable(t *testing.T) {
	f := newCheckerFixture()

	v, err := f.checker.Check(context.Background(), 1, saturdayIn, saturdayOut, nil)
	require.NoError(t, err)

	assert.True(t, v.Available)
	assert.Empty(t, v.Reason)
	require.NotNil(t, v.Quote)
	assert.Equal(t, 6000, v.Quote.NightlyRate)
	assert.Equal(t, 1, v.Quote.Nights)
	assert.Equal(t, 90, v.Quote.PlatformFee)
	assert.Equal(t, 6090, v.Quote.TotalPrice)

	// Every gate was consulted.
	assert.Equal(t, []block.Source{block.SourceAdmin, block.SourceOwner}, f.blocks.calls)
	assert.Equal(t, 2, f.bookings.calls)
}

func TestCheckIsReadOnlyAndRepeatable(t *testing.T) {
	f := newCheckerFixture()

	first, err := f.checker.Check(context.Background(), 1, saturdayIn, saturdayOut, intPtr(6090))
	require.NoError(t, err)
	second, err := f.checker.Check(context.Background(), 1, saturdayIn, saturdayOut, intPtr(6090))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCheckResortNotFound(t *testing.T) {
	f := newCheckerFixture()

	v, err := f.checker.Check(context.Background(), 42, saturdayIn, saturdayOut, nil)
	require.NoError(t, err)

	assert.False(t, v.Available)
	assert.Equal(t, "Resort not found", v.Reason)
	// Nothing past the existence gate runs.
	assert.Empty(t, f.blocks.calls)
	assert.Zero(t, f.bookings.calls)
}

func TestCheckInvalidTimeRange(t *testing.T) {
	f := newCheckerFixture()

	_, err := f.checker.Check(context.Background(), 1, saturdayIn, saturdayIn, nil)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = f.checker.Check(context.Background(), 1, saturdayOut, saturdayIn, nil)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestCheckPriceReconciliation(t *testing.T) {
	t.Run("mismatch rejects with corrected price", func(t *testing.T) {
		f := newCheckerFixture()

		v, err := f.checker.Check(context.Background(), 1, saturdayIn, saturdayOut, intPtr(5000))
		require.NoError(t, err)

		assert.False(t, v.Available)
		assert.Equal(t, "Price mismatch. Expected: 6090, Got: 5000. Please refresh and try again.", v.Reason)
		require.NotNil(t, v.CorrectPrice)
		assert.Equal(t, 6090, *v.CorrectPrice)
		// The price gate fires before any block or booking read.
		assert.Empty(t, f.blocks.calls)
		assert.Zero(t, f.bookings.calls)
	})

	t.Run("one rupee off passes", func(t *testing.T) {
		f := newCheckerFixture()

		for _, expected := range []int{6089, 6090, 6091} {
			v, err := f.checker.Check(context.Background(), 1, saturdayIn, saturdayOut, intPtr(expected))
			require.NoError(t, err)
			assert.True(t, v.Available, "expected price %d should pass", expected)
		}
	})

	t.Run("two rupees off is rejected", func(t *testing.T) {
		f := newCheckerFixture()

		v, err := f.checker.Check(context.Background(), 1, saturdayIn, saturdayOut, intPtr(6092))
		require.NoError(t, err)
		assert.False(t, v.Available)
	})

	t.Run("no expected price skips reconciliation", func(t *testing.T) {
		f := newCheckerFixture()

		v, err := f.checker.Check(context.Background(), 1, saturdayIn, saturdayOut, nil)
		require.NoError(t, err)
		assert.True(t, v.Available)
	})
}

func TestCheckAdminBlock(t *testing.T) {
	f := newCheckerFixture()
	f.blocks.blocked[block.SourceAdmin] = true

	checkIn := time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 1)

	v, err := f.checker.Check(context.Background(), 1, checkIn, checkOut, nil)
	require.NoError(t, err)

	assert.False(t, v.Available)
	assert.Equal(t, "Resort is not available for check-in on 2025-12-25", v.Reason)
	// The owner block and booking counts are never consulted.
	assert.Equal(t, []block.Source{block.SourceAdmin}, f.blocks.calls)
	assert.Zero(t, f.bookings.calls)
}

func TestCheckOwnerBlock(t *testing.T) {
	f := newCheckerFixture()
	f.blocks.blocked[block.SourceOwner] = true

	v, err := f.checker.Check(context.Background(), 1, saturdayIn, saturdayOut, nil)
	require.NoError(t, err)

	assert.False(t, v.Available)
	assert.Equal(t, "This date is blocked by the resort owner. Please choose another date.", v.Reason)
	assert.Equal(t, []block.Source{block.SourceAdmin, block.SourceOwner}, f.blocks.calls)
	assert.Zero(t, f.bookings.calls)
}

func TestCheckAdminBlockWinsOverLaterGates(t *testing.T) {
	f := newCheckerFixture()
	f.blocks.blocked[block.SourceAdmin] = true
	f.blocks.blocked[block.SourceOwner] = true
	f.bookings.paid = 1
	f.bookings.pending = 5

	v, err := f.checker.Check(context.Background(), 1, saturdayIn, saturdayOut, nil)
	require.NoError(t, err)

	assert.False(t, v.Available)
	assert.Equal(t, "Resort is not available for check-in on 2025-11-08", v.Reason)
}

func TestCheckPaidConflict(t *testing.T) {
	f := newCheckerFixture()
	f.bookings.paid = 1

	v, err := f.checker.Check(context.Background(), 1, saturdayIn, saturdayOut, nil)
	require.NoError(t, err)

	assert.False(t, v.Available)
	assert.Equal(t, "This resort is already booked for 2025-11-08. Please choose a different date.", v.Reason)
	// The pending count is never taken once a paid conflict is found.
	assert.Equal(t, 1, f.bookings.calls)
}

func TestCheckPendingHoldCap(t *testing.T) {
	t.Run("below the cap is bookable", func(t *testing.T) {
		f := newCheckerFixture()
		f.bookings.pending = MaxPendingHolds - 1

		v, err := f.checker.Check(context.Background(), 1, saturdayIn, saturdayOut, nil)
		require.NoError(t, err)
		assert.True(t, v.Available)
	})

	t.Run("at the cap is rejected", func(t *testing.T) {
		f := newCheckerFixture()
		f.bookings.pending = MaxPendingHolds

		v, err := f.checker.Check(context.Background(), 1, saturdayIn, saturdayOut, nil)
		require.NoError(t, err)

		assert.False(t, v.Available)
		assert.Equal(t, "Maximum 2 pending bookings allowed for 2025-11-08. Please wait for verification or choose another date.", v.Reason)
	})
}

func TestCheckInfrastructureFailuresDegrade(t *testing.T) {
	infraErr := errors.New("connection refused")

	t.Run("resort read failure", func(t *testing.T) {
		f := newCheckerFixture()
		f.resorts.err = infraErr

		v, err := f.checker.Check(context.Background(), 1, saturdayIn, saturdayOut, nil)
		require.NoError(t, err)
		assert.False(t, v.Available)
		assert.Equal(t, "Failed to check availability", v.Reason)
	})

	t.Run("admin block read failure", func(t *testing.T) {
		f := newCheckerFixture()
		f.blocks.errs[block.SourceAdmin] = infraErr

		v, err := f.checker.Check(context.Background(), 1, saturdayIn, saturdayOut, nil)
		require.NoError(t, err)
		assert.False(t, v.Available)
		assert.Equal(t, "Failed to check availability", v.Reason)
	})

	t.Run("owner block read failure", func(t *testing.T) {
		f := newCheckerFixture()
		f.blocks.errs[block.SourceOwner] = infraErr

		v, err := f.checker.Check(context.Background(), 1, saturdayIn, saturdayOut, nil)
		require.NoError(t, err)
		assert.False(t, v.Available)
		assert.Equal(t, "Failed to check availability", v.Reason)
	})

	t.Run("paid count failure", func(t *testing.T) {
		f := newCheckerFixture()
		f.bookings.paidErr = infraErr

		v, err := f.checker.Check(context.Background(), 1, saturdayIn, saturdayOut, nil)
		require.NoError(t, err)
		assert.False(t, v.Available)
		assert.Equal(t, "Failed to check availability", v.Reason)
	})

	t.Run("pending count failure", func(t *testing.T) {
		f := newCheckerFixture()
		f.bookings.pendingErr = infraErr

		v, err := f.checker.Check(context.Background(), 1, saturdayIn, saturdayOut, nil)
		require.NoError(t, err)
		assert.False(t, v.Available)
		assert.Equal(t, "Failed to check availability", v.Reason)
	})
}

func TestCheckResortWithoutRulesUsesBasePrice(t *testing.T) {
	f := newCheckerFixture()
	f.resorts.res.PriceRules = nil

	v, err := f.checker.Check(context.Background(), 1, saturdayIn, saturdayOut, nil)
	require.NoError(t, err)

	assert.True(t, v.Available)
	require.NotNil(t, v.Quote)
	assert.Equal(t, 5000, v.Quote.NightlyRate)
	assert.Equal(t, 75, v.Quote.PlatformFee)
	assert.Equal(t, 5075, v.Quote.TotalPrice)
}

func TestBookingReference(t *testing.T) {
	tests := []struct {
		id   int64
		want string
	}{
		{1, "RB0001"},
		{42, "RB0042"},
		{9999, "RB9999"},
		{12345, "RB12345"},
	}

	for _, tt := range tests {
		b := &Booking{ID: tt.id}
		assert.Equal(t, tt.want, b.Reference())
	}
}
