package fields

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Int64 parses an optional integer column. Blank input is absent. Integral float
// literals such as "1500.0" are accepted since spreadsheet exports often write them.
func Int64(raw string) (*int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, fmt.Errorf("invalid integer %q", raw)
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return nil, fmt.Errorf("integer out of range %q", raw)
	}
	n := int64(f)
	return &n, nil
}

// Float64 parses an optional decimal column. Blank input is absent.
func Float64(raw string) (*float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("invalid number %q", raw)
	}
	return &f, nil
}
