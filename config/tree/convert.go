package tree

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrTypeMismatch is returned when a leaf cannot be converted to the requested type.
var ErrTypeMismatch = errors.New("type mismatch")

// String converts a string leaf.
func String(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a string", ErrTypeMismatch, KindOf(v))
	}

	return s, nil
}

// Bool converts a bool leaf.
func Bool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s is not a bool", ErrTypeMismatch, KindOf(v))
	}

	return b, nil
}

// Float64 converts any number leaf.
func Float64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %w", ErrTypeMismatch, n, err)
		}

		return f, nil
	default:
		return 0, fmt.Errorf("%w: %s is not a number", ErrTypeMismatch, KindOf(v))
	}
}

// Int converts a number leaf with no fractional part.
func Int(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		if n > math.MaxInt {
			return 0, fmt.Errorf("%w: %d overflows int", ErrTypeMismatch, n)
		}

		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err == nil {
			return int(i), nil
		}
	}

	f, err := Float64(v)
	if err != nil {
		return 0, err
	}

	// float64(math.MaxInt) rounds up to 2^63, which is out of range.
	if f != math.Trunc(f) || f >= -float64(math.MinInt) || f < math.MinInt {
		return 0, fmt.Errorf("%w: %v is not an integer", ErrTypeMismatch, v)
	}

	return int(f), nil
}

// Time converts an RFC 3339 string leaf.
func Time(v any) (time.Time, error) {
	s, err := String(v)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrTypeMismatch, err)
	}

	return t, nil
}

// Duration converts a duration string leaf such as "90s".
func Duration(v any) (time.Duration, error) {
	s, err := String(v)
	if err != nil {
		return 0, err
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTypeMismatch, err)
	}

	return d, nil
}
