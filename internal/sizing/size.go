// Package sizing provides checked conversions between Go lengths and the
// fixed-width integers used by the binary container.
package sizing

import "math"

// ToUint32 converts a non-negative length to uint32, returning overflowErr
// if it doesn't fit.
func ToUint32(n int, overflowErr error) (uint32, error) {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return 0, overflowErr
	}
	return uint32(n), nil
}

// AddUint32 adds two uint32 values, returning (result, false) on overflow.
func AddUint32(a, b uint32) (uint32, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// Align4 rounds n up to the next multiple of four.
func Align4(n int) int {
	return (n + 3) &^ 3
}

// Padding returns the number of bytes needed to align n to four.
func Padding(n int) int {
	return Align4(n) - n
}

// InRange reports whether [off, off+length) lies within [0, size).
// It is safe against integer overflow of off+length.
func InRange(off, length, size int) bool {
	if off < 0 || length < 0 || size < 0 {
		return false
	}
	return off <= size && length <= size-off
}
