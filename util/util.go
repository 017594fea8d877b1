// Package util holds small helpers shared by the aspen tools.
package util

// Coalesce returns the first non-zero value, or the zero value if all are zero.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// MaskSecret keeps the first visible characters of s and hides the rest.
// Values no longer than visible are hidden entirely.
func MaskSecret(s string, visible int) string {
	if visible < 0 {
		visible = 0
	}
	if len(s) <= visible {
		return "***"
	}
	return s[:visible] + "***"
}
