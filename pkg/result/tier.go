package result

// Tier is the severity bucket a confidence value falls into.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

const (
	highThreshold   = 0.9
	mediumThreshold = 0.7
)

// TierFor buckets v: >= 0.9 high, >= 0.7 medium, otherwise low.
func TierFor(v float64) Tier {
	switch {
	case v >= highThreshold:
		return TierHigh
	case v >= mediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	default:
		return "low"
	}
}
