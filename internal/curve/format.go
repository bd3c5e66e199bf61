package curve

import (
	"fmt"
	"math"
)

// FormatTotalTime renders minutes as "H hours and M minutes".
func FormatTotalTime(minutes int) string {
	hours, rest := minutes/60, minutes%60
	return fmt.Sprintf("%d hours and %d minutes", hours, rest)
}

// ToInt converts a number received at an outer boundary (JSON body, typed input)
// into a whole number, rejecting fractions and values that do not fit an int.
func ToInt(v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%v is not a number: %w", v, ErrInvalidValue)
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%v is not a whole number: %w", v, ErrInvalidValue)
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("%v is out of range: %w", v, ErrInvalidValue)
	}
	return int(v), nil
}
