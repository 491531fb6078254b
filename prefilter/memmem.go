package prefilter

import (
	"encoding/binary"
	"math/bits"
)

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present.
//
// The implementation uses SWAR (SIMD Within A Register): 8 haystack bytes
// are examined per iteration with uint64 bitwise operations. Matching bytes
// are turned into zero bytes by XOR against a broadcast mask, then located
// with the classic zero-byte detection formula.
func Memchr(haystack []byte, needle byte) int {
	n := len(haystack)
	if n == 0 {
		return -1
	}

	// Byte-by-byte is faster for tiny inputs; no setup overhead.
	if n < 8 {
		for i := 0; i < n; i++ {
			if haystack[i] == needle {
				return i
			}
		}
		return -1
	}

	// Broadcast needle into every byte of a uint64.
	mask := uint64(needle) * 0x0101010101010101

	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		x := chunk ^ mask
		// Zero-byte detection: a byte of x is zero iff the corresponding
		// high bit survives in (x - 0x01...) & ^x & 0x80...
		if z := (x - 0x0101010101010101) & ^x & 0x8080808080808080; z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < n; i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

// Memmem returns the index of the leftmost occurrence of needle in haystack,
// or -1 if needle is not present. An empty needle matches at offset 0.
//
// The search anchors on the needle's first byte with Memchr and verifies the
// remainder at each candidate. Worst case is O(len(haystack)*len(needle));
// the anchored scan makes the common case effectively linear. Leftmost-ness
// is guaranteed: candidates are visited strictly left to right.
func Memmem(haystack, needle []byte) int {
	switch {
	case len(needle) == 0:
		return 0
	case len(needle) > len(haystack):
		return -1
	case len(needle) == 1:
		return Memchr(haystack, needle[0])
	}

	first := needle[0]
	last := len(haystack) - len(needle)
	i := 0
	for i <= last {
		j := Memchr(haystack[i:last+1], first)
		if j < 0 {
			return -1
		}
		i += j
		if matchAt(haystack, needle, i) {
			return i
		}
		i++
	}
	return -1
}

// matchAt reports whether needle occurs in haystack at offset i.
// The caller guarantees i+len(needle) <= len(haystack) and that the first
// byte already matches.
func matchAt(haystack, needle []byte, i int) bool {
	for k := 1; k < len(needle); k++ {
		if haystack[i+k] != needle[k] {
			return false
		}
	}
	return true
}
