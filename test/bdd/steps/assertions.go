package steps

import (
	"fmt"
	"math"
)

// floatTolerance covers values written to four decimals in feature files
const floatTolerance = 0.001

func assertFloat(name string, want, got float64) error {
	if math.Abs(want-got) > floatTolerance {
		return fmt.Errorf("expected %s %.4f, got %.4f", name, want, got)
	}
	return nil
}
