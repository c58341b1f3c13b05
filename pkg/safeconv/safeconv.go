// Package safeconv provides checked numeric conversions into int.
// Every function reports ok=false instead of truncating or wrapping.
package safeconv

import "math"

// MaxInt is the maximum value for int type (platform-dependent).
const MaxInt = int(^uint(0) >> 1)

// MinInt is the minimum value for int type (platform-dependent).
const MinInt = -MaxInt - 1

// Int64ToInt converts v to int, failing when it does not fit on this platform.
func Int64ToInt(v int64) (int, bool) {
	if v < int64(MinInt) || v > int64(MaxInt) {
		return 0, false
	}

	return int(v), true
}

// Uint64ToInt converts v to int, failing on overflow.
func Uint64ToInt(v uint64) (int, bool) {
	if v > uint64(MaxInt) {
		return 0, false
	}

	return int(v), true
}

// FloatToInt converts f to int when it holds an exact integral value in range.
// NaN, infinities and fractional values fail.
func FloatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}

	// float64(MaxInt) rounds up to 2^63 on 64-bit platforms, already out of range.
	if f < float64(MinInt) || f >= float64(MaxInt) {
		return 0, false
	}

	return int(f), true
}
