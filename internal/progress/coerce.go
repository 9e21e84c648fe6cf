package progress

import (
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/interview-coach/internal/types"
)

// CoerceNumber turns a stored metric field into a number. Anything missing or
// non-numeric becomes 0; the dashboard prefers a value over an error, and
// stored data is never rejected here.
func CoerceNumber(v any) float64 {
	var n float64
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		n = x
	case *float64:
		if x == nil {
			return 0
		}
		n = *x
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		n = parsed
	case types.FlexValue:
		if num, ok := x.AsNumber(); ok {
			n = num
		} else if s, ok := x.AsString(); ok {
			return CoerceNumber(s)
		}
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// round2 rounds half away from zero to two decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
