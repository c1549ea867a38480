package pricing

// ReconcileTolerance is the absolute rupee allowance between a client-submitted
// total and the server-computed total. The slack absorbs rounding differences
// between client-side and server-side price computation.
const ReconcileTolerance = 1

// PriceMatches reports whether a client-submitted expected price agrees with
// the authoritative total within tolerance. A nil expected price passes
// unconditionally: reconciliation is opt-in for callers that pre-computed an
// estimate.
func PriceMatches(expected *int, authoritativeTotal int) bool {
	if expected == nil {
		return true
	}

	diff := *expected - authoritativeTotal
	if diff < 0 {
		diff = -diff
	}
	return diff <= ReconcileTolerance
}
