package progress

import "math"

// Tier color-codes an accuracy percentage.
type Tier string

const (
	TierNone  Tier = "none"
	TierRed   Tier = "red"
	TierAmber Tier = "amber"
	TierBlue  Tier = "blue"
	TierGreen Tier = "green"
)

// AccuracyTier buckets an accuracy in [0, 100]. Zero and NaN mean no data.
func AccuracyTier(accuracy float64) Tier {
	switch {
	case accuracy == 0 || math.IsNaN(accuracy):
		return TierNone
	case accuracy < 50:
		return TierRed
	case accuracy < 75:
		return TierAmber
	case accuracy < 90:
		return TierBlue
	default:
		return TierGreen
	}
}

// Color returns the tier's hex color.
func (t Tier) Color() string {
	switch t {
	case TierRed:
		return "#e74c3c"
	case TierAmber:
		return "#f39c12"
	case TierBlue:
		return "#3498db"
	case TierGreen:
		return "#27ae60"
	default:
		return "#95a5a6"
	}
}
