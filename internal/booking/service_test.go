package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	createErr error
	created   *Booking
	byID      map[int64]*Booking
	statuses  map[int64]PaymentStatus
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byID:     map[int64]*Booking{},
		statuses: map[int64]PaymentStatus{},
	}
}

func (f *fakeRepository) CreateGuarded(_ context.Context, b *Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	b.ID = int64(len(f.byID) + 1)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.byID[b.ID] = b
	f.created = b
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id int64) (*Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

func (f *fakeRepository) List(_ context.Context, _ Filter) ([]*Booking, int, error) {
	return nil, 0, nil
}

func (f *fakeRepository) UpdatePaymentStatus(_ context.Context, id int64, status PaymentStatus) error {
	b, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	b.PaymentStatus = status
	return nil
}

func (f *fakeRepository) CountOverlapping(_ context.Context, _ int64, _ time.Time, _ bool) (int, error) {
	return 0, nil
}

func validCreateRequest() CreateRequest {
	return CreateRequest{
		ResortID:  1,
		GuestName: "Asha Rao",
		Email:     "asha@example.com",
		Phone:     "9876543210",
		CheckIn:   saturdayIn,
		CheckOut:  saturdayOut,
		Guests:    2,
	}
}

func TestServiceCreate(t *testing.T) {
	t.Run("success inserts a pending hold at the authoritative price", func(t *testing.T) {
		cf := newCheckerFixture()
		repo := newFakeRepository()
		svc := NewService(repo, cf.checker)

		b, err := svc.Create(context.Background(), validCreateRequest())
		require.NoError(t, err)

		assert.Equal(t, PaymentPending, b.PaymentStatus)
		assert.Equal(t, 6090, b.TotalPrice)
		assert.Equal(t, "RB0001", b.Reference())
		require.NotNil(t, repo.created)
		assert.Equal(t, b, repo.created)
	})

	t.Run("guest name is trimmed", func(t *testing.T) {
		cf := newCheckerFixture()
		repo := newFakeRepository()
		svc := NewService(repo, cf.checker)

		req := validCreateRequest()
		req.GuestName = "  Asha Rao  "

		b, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "Asha Rao", b.GuestName)
	})

	t.Run("input validation", func(t *testing.T) {
		cf := newCheckerFixture()
		svc := NewService(newFakeRepository(), cf.checker)

		req := validCreateRequest()
		req.CheckOut = req.CheckIn
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)

		req = validCreateRequest()
		req.GuestName = "   "
		_, err = svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrGuestNameRequired)

		req = validCreateRequest()
		req.Email = ""
		_, err = svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrGuestEmailRequired)

		req = validCreateRequest()
		req.Guests = 0
		_, err = svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidGuestCount)

		req = validCreateRequest()
		req.Guests = 21
		_, err = svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidGuestCount)
	})

	t.Run("unavailable verdict blocks the insert", func(t *testing.T) {
		cf := newCheckerFixture()
		cf.bookings.pending = MaxPendingHolds
		repo := newFakeRepository()
		svc := NewService(repo, cf.checker)

		_, err := svc.Create(context.Background(), validCreateRequest())

		var unavailErr *UnavailableError
		require.ErrorAs(t, err, &unavailErr)
		assert.Equal(t, "Maximum 2 pending bookings allowed for 2025-11-08. Please wait for verification or choose another date.", unavailErr.Verdict.Reason)
		assert.Nil(t, repo.created)
	})

	t.Run("price mismatch surfaces the corrected total", func(t *testing.T) {
		cf := newCheckerFixture()
		svc := NewService(newFakeRepository(), cf.checker)

		req := validCreateRequest()
		req.ExpectedPrice = intPtr(5000)

		_, err := svc.Create(context.Background(), req)

		var unavailErr *UnavailableError
		require.ErrorAs(t, err, &unavailErr)
		require.NotNil(t, unavailErr.Verdict.CorrectPrice)
		assert.Equal(t, 6090, *unavailErr.Verdict.CorrectPrice)
	})

	t.Run("losing the pending-slot race maps to the same rejection", func(t *testing.T) {
		cf := newCheckerFixture()
		repo := newFakeRepository()
		repo.createErr = ErrPendingLimitHit
		svc := NewService(repo, cf.checker)

		_, err := svc.Create(context.Background(), validCreateRequest())

		var unavailErr *UnavailableError
		require.ErrorAs(t, err, &unavailErr)
		assert.Equal(t, "Maximum 2 pending bookings allowed for 2025-11-08. Please wait for verification or choose another date.", unavailErr.Verdict.Reason)
	})

	t.Run("losing to a racing paid booking maps to the conflict rejection", func(t *testing.T) {
		cf := newCheckerFixture()
		repo := newFakeRepository()
		repo.createErr = ErrPaidConflict
		svc := NewService(repo, cf.checker)

		_, err := svc.Create(context.Background(), validCreateRequest())

		var unavailErr *UnavailableError
		require.ErrorAs(t, err, &unavailErr)
		assert.Equal(t, "This resort is already booked for 2025-11-08. Please choose a different date.", unavailErr.Verdict.Reason)
	})

	t.Run("other insert failures pass through", func(t *testing.T) {
		cf := newCheckerFixture()
		repo := newFakeRepository()
		repo.createErr = errors.New("connection reset")
		svc := NewService(repo, cf.checker)

		_, err := svc.Create(context.Background(), validCreateRequest())
		require.Error(t, err)

		var unavailErr *UnavailableError
		assert.False(t, errors.As(err, &unavailErr))
	})
}

func TestServiceSetPaymentStatus(t *testing.T) {
	cf := newCheckerFixture()
	repo := newFakeRepository()
	svc := NewService(repo, cf.checker)

	b, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	t.Run("valid transition", func(t *testing.T) {
		updated, err := svc.SetPaymentStatus(context.Background(), b.ID, PaymentPaid)
		require.NoError(t, err)
		assert.Equal(t, PaymentPaid, updated.PaymentStatus)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := svc.SetPaymentStatus(context.Background(), b.ID, PaymentStatus("refunded"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := svc.SetPaymentStatus(context.Background(), 999, PaymentPaid)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
