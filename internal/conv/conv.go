// Package conv provides checked narrowing conversions for the engine's
// compact index types. The helpers panic on overflow: an out-of-range
// value means a caller bug (a program too large for its index width), not
// a runtime condition to recover from.
package conv

import "math"

// IntToUint32 converts n to uint32, panicking if it does not fit.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Compare as uint so the bound works on 32-bit platforms too.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("conv: int value out of uint32 range")
	}
	return uint32(n)
}
