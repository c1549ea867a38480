package pricing

import "time"

// SeasonLabel describes which seasonal band a rate came from.
type SeasonLabel string

const (
	SeasonNone    SeasonLabel = ""
	SeasonPeak    SeasonLabel = "peak"
	SeasonOffPeak SeasonLabel = "off_peak"
)

// SeasonalNightlyRate returns the display nightly rate for a check-in date
// under the resort's peak/off-peak season settings, falling back to the base
// price when seasonal pricing is not configured. Season boundaries are "MM-DD"
// and may cross the year end (e.g. 12-15 to 01-15).
func (r *Resolver) SeasonalNightlyRate(rates Rates, checkIn time.Time) (int, SeasonLabel) {
	if rates.PeakPrice == nil && rates.OffPeakPrice == nil {
		return rates.BasePrice, SeasonNone
	}
	if rates.PeakSeasonStart == "" || rates.PeakSeasonEnd == "" {
		return rates.BasePrice, SeasonNone
	}

	current := checkIn.In(r.loc).Format("01-02")

	inPeak := false
	if rates.PeakSeasonStart > rates.PeakSeasonEnd {
		// Season crosses the year boundary.
		inPeak = current >= rates.PeakSeasonStart || current <= rates.PeakSeasonEnd
	} else {
		inPeak = current >= rates.PeakSeasonStart && current <= rates.PeakSeasonEnd
	}

	if inPeak {
		if rates.PeakPrice != nil {
			return *rates.PeakPrice, SeasonPeak
		}
		return rates.BasePrice, SeasonPeak
	}

	if rates.OffPeakPrice != nil {
		return *rates.OffPeakPrice, SeasonOffPeak
	}
	return rates.BasePrice, SeasonOffPeak
}
