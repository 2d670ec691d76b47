package foliotrack

import (
	"fmt"
	"math"
)

// Percent is a share of the portfolio, expressed as a fraction of 1
// (0.25 means 25%).
type Percent float64

// sharePrecision is the number of decimals kept on computed shares.
const sharePrecision = 4

// Equal compares two percents with the share precision.
func (p Percent) Equal(q Percent) bool {
	const precision = 1e-4
	diff := float64(p - q)
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// Round returns the percent rounded to the share precision.
func (p Percent) Round() Percent {
	const shift = 1e4 // 10^sharePrecision
	return Percent(math.Round(float64(p)*shift) / shift)
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", 100*float64(p))
}
