package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayTypeFor(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		name    string
		checkIn time.Time
		want    DayType
	}{
		{"Friday", date(2025, time.November, 7), DayTypeFriday},
		{"Saturday", date(2025, time.November, 8), DayTypeWeekend},
		{"Sunday", date(2025, time.November, 9), DayTypeWeekend},
		{"Monday", date(2025, time.November, 10), DayTypeWeekday},
		{"Thursday", date(2025, time.November, 6), DayTypeWeekday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.DayTypeFor(tt.checkIn))
		})
	}
}

func TestDayTypeForUsesConfiguredLocation(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	r := NewResolver(kolkata)

	// 2025-11-06 22:00 UTC is already Friday 2025-11-07 in Kolkata (UTC+5:30).
	checkIn := time.Date(2025, time.November, 6, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, DayTypeFriday, r.DayTypeFor(checkIn))

	// The same instant is still Thursday in UTC.
	assert.Equal(t, DayTypeWeekday, NewResolver(time.UTC).DayTypeFor(checkIn))
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
		wantErr  error
	}{
		{
			name:     "exact one night",
			checkIn:  date(2025, time.November, 8),
			checkOut: date(2025, time.November, 9),
			want:     1,
		},
		{
			name:     "exact three nights",
			checkIn:  date(2025, time.November, 8),
			checkOut: date(2025, time.November, 11),
			want:     3,
		},
		{
			name:     "partial day rounds up",
			checkIn:  time.Date(2025, time.November, 8, 14, 0, 0, 0, time.UTC),
			checkOut: time.Date(2025, time.November, 10, 11, 0, 0, 0, time.UTC),
			want:     2,
		},
		{
			name:     "under one day still charges a night",
			checkIn:  time.Date(2025, time.November, 8, 14, 0, 0, 0, time.UTC),
			checkOut: time.Date(2025, time.November, 9, 11, 0, 0, 0, time.UTC),
			want:     1,
		},
		{
			name:     "check-out equals check-in",
			checkIn:  date(2025, time.November, 8),
			checkOut: date(2025, time.November, 8),
			wantErr:  ErrInvalidStayRange,
		},
		{
			name:     "check-out before check-in",
			checkIn:  date(2025, time.November, 9),
			checkOut: date(2025, time.November, 8),
			wantErr:  ErrInvalidStayRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Nights(tt.checkIn, tt.checkOut)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePicksRateByCheckInDayType(t *testing.T) {
	r := NewResolver(nil)

	rates := Rates{
		BasePrice: 5000,
		Rules: []Rule{
			{DayType: DayTypeFriday, Price: 7000},
			{DayType: DayTypeWeekend, Price: 6000},
		},
	}

	t.Run("Friday rule applies", func(t *testing.T) {
		q, err := r.Resolve(rates, date(2025, time.November, 7), date(2025, time.November, 8))
		require.NoError(t, err)
		assert.Equal(t, 7000, q.NightlyRate)
	})

	t.Run("weekend rule applies on Saturday", func(t *testing.T) {
		q, err := r.Resolve(rates, date(2025, time.November, 8), date(2025, time.November, 9))
		require.NoError(t, err)
		assert.Equal(t, 6000, q.NightlyRate)
		assert.Equal(t, 1, q.Nights)
		assert.Equal(t, 6000, q.BaseAmount)
		assert.Equal(t, 90, q.PlatformFee)
		assert.Equal(t, 6090, q.TotalPrice)
	})

	t.Run("weekday without rule falls back to base price", func(t *testing.T) {
		q, err := r.Resolve(rates, date(2025, time.November, 6), date(2025, time.November, 7))
		require.NoError(t, err)
		assert.Equal(t, 5000, q.NightlyRate)
	})

	t.Run("check-in day type applies to the whole stay", func(t *testing.T) {
		// Friday check-in, three nights spanning the weekend: all three nights
		// are billed at the Friday rate.
		q, err := r.Resolve(rates, date(2025, time.November, 7), date(2025, time.November, 10))
		require.NoError(t, err)
		assert.Equal(t, 7000, q.NightlyRate)
		assert.Equal(t, 3, q.Nights)
		assert.Equal(t, 21000, q.BaseAmount)
	})

	t.Run("no rules at all uses base price", func(t *testing.T) {
		q, err := r.Resolve(Rates{BasePrice: 4500}, date(2025, time.November, 7), date(2025, time.November, 8))
		require.NoError(t, err)
		assert.Equal(t, 4500, q.NightlyRate)
	})

	t.Run("invalid range is rejected", func(t *testing.T) {
		_, err := r.Resolve(rates, date(2025, time.November, 8), date(2025, time.November, 8))
		assert.ErrorIs(t, err, ErrInvalidStayRange)
	})
}

func TestResolvePlatformFeeRounding(t *testing.T) {
	r := NewResolver(nil)
	friday := date(2025, time.November, 7)
	saturday := date(2025, time.November, 8)

	tests := []struct {
		name      string
		basePrice int
		wantFee   int
		wantTotal int
	}{
		// 1.5% of the base amount, rounded half away from zero.
		{"fee rounds to whole rupee", 10000, 150, 10150},
		{"fee rounds up at half", 8900, 134, 9034},      // 133.5 -> 134
		{"fee rounds down below half", 8150, 122, 8272}, // 122.25 -> 122
		{"tiny amount", 100, 2, 102}, // 1.5 -> 2
		{"zero base", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := r.Resolve(Rates{BasePrice: tt.basePrice}, friday, saturday)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFee, q.PlatformFee)
			assert.Equal(t, tt.wantTotal, q.TotalPrice)
		})
	}

	t.Run("fee computed on full base amount, not per night", func(t *testing.T) {
		// 3 nights at 1111: base 3333, 1.5% = 49.995 -> 50.
		q, err := r.Resolve(Rates{BasePrice: 1111}, saturday, date(2025, time.November, 11))
		require.NoError(t, err)
		assert.Equal(t, 3333, q.BaseAmount)
		assert.Equal(t, 50, q.PlatformFee)
		assert.Equal(t, 3383, q.TotalPrice)
	})
}

func TestPriceMatches(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name     string
		expected *int
		total    int
		want     bool
	}{
		{"nil expected always passes", nil, 6090, true},
		{"exact match", intPtr(6090), 6090, true},
		{"one rupee under", intPtr(6089), 6090, true},
		{"one rupee over", intPtr(6091), 6090, true},
		{"two rupees under", intPtr(6088), 6090, false},
		{"two rupees over", intPtr(6092), 6090, false},
		{"wildly off", intPtr(100), 6090, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PriceMatches(tt.expected, tt.total))
		})
	}
}

func TestSeasonalNightlyRate(t *testing.T) {
	r := NewResolver(nil)
	intPtr := func(v int) *int { return &v }

	t.Run("no seasonal config falls back to base", func(t *testing.T) {
		rate, label := r.SeasonalNightlyRate(Rates{BasePrice: 5000}, date(2025, time.June, 1))
		assert.Equal(t, 5000, rate)
		assert.Equal(t, SeasonNone, label)
	})

	t.Run("prices set but no boundaries falls back to base", func(t *testing.T) {
		rates := Rates{BasePrice: 5000, PeakPrice: intPtr(8000)}
		rate, label := r.SeasonalNightlyRate(rates, date(2025, time.June, 1))
		assert.Equal(t, 5000, rate)
		assert.Equal(t, SeasonNone, label)
	})

	t.Run("within peak season", func(t *testing.T) {
		rates := Rates{
			BasePrice:       5000,
			PeakPrice:       intPtr(8000),
			OffPeakPrice:    intPtr(4000),
			PeakSeasonStart: "04-01",
			PeakSeasonEnd:   "06-30",
		}

		rate, label := r.SeasonalNightlyRate(rates, date(2025, time.May, 15))
		assert.Equal(t, 8000, rate)
		assert.Equal(t, SeasonPeak, label)

		// Boundaries are inclusive.
		rate, _ = r.SeasonalNightlyRate(rates, date(2025, time.April, 1))
		assert.Equal(t, 8000, rate)
		rate, _ = r.SeasonalNightlyRate(rates, date(2025, time.June, 30))
		assert.Equal(t, 8000, rate)

		rate, label = r.SeasonalNightlyRate(rates, date(2025, time.July, 1))
		assert.Equal(t, 4000, rate)
		assert.Equal(t, SeasonOffPeak, label)
	})

	t.Run("peak season crossing year end", func(t *testing.T) {
		rates := Rates{
			BasePrice:       5000,
			PeakPrice:       intPtr(9000),
			OffPeakPrice:    intPtr(4000),
			PeakSeasonStart: "12-15",
			PeakSeasonEnd:   "01-15",
		}

		rate, label := r.SeasonalNightlyRate(rates, date(2025, time.December, 25))
		assert.Equal(t, 9000, rate)
		assert.Equal(t, SeasonPeak, label)

		rate, label = r.SeasonalNightlyRate(rates, date(2026, time.January, 10))
		assert.Equal(t, 9000, rate)
		assert.Equal(t, SeasonPeak, label)

		rate, label = r.SeasonalNightlyRate(rates, date(2026, time.February, 1))
		assert.Equal(t, 4000, rate)
		assert.Equal(t, SeasonOffPeak, label)
	})

	t.Run("missing off-peak price falls back to base outside peak", func(t *testing.T) {
		rates := Rates{
			BasePrice:       5000,
			PeakPrice:       intPtr(8000),
			PeakSeasonStart: "04-01",
			PeakSeasonEnd:   "06-30",
		}
		rate, label := r.SeasonalNightlyRate(rates, date(2025, time.August, 1))
		assert.Equal(t, 5000, rate)
		assert.Equal(t, SeasonOffPeak, label)
	})
}
