package util

import "slices"

// Contains reports whether val is in slice.
func Contains[T comparable](slice []T, val T) bool {
	return slices.Contains(slice, val)
}

// Filter returns the elements for which keep is true. The result is never
// nil.
func Filter[T any](slice []T, keep func(T) bool) []T {
	out := []T{}
	for _, v := range slice {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Unique drops repeated values, keeping the first occurrence of each.
func Unique[T comparable](slice []T) []T {
	seen := make(map[T]bool, len(slice))
	out := make([]T, 0, len(slice))
	for _, v := range slice {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Coalesce returns the first non-zero value.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
