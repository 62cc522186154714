// Package collection holds the generic slice helpers shared by the models,
// the repositories and the cart service. Repositories use Map to turn stored
// documents and rows into models, the models use Reduce for their totals.
package collection

// Map returns fn applied to every element of s, in order. A nil s yields an
// empty, non-nil slice so callers can hand the result straight to encoders.
func Map[From, To any](s []From, fn func(From) To) []To {
	out := make([]To, 0, len(s))
	for _, v := range s {
		out = append(out, fn(v))
	}
	return out
}

// Filter returns the elements of s that keep accepts. The result never
// shares storage with s.
func Filter[T any](s []T, keep func(T) bool) []T {
	var out []T
	for _, v := range s {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// IndexOf reports the position of the first element match accepts, or -1.
func IndexOf[T any](s []T, match func(T) bool) int {
	for i := range s {
		if match(s[i]) {
			return i
		}
	}
	return -1
}

// First returns the first element match accepts.
func First[T any](s []T, match func(T) bool) (v T, ok bool) {
	i := IndexOf(s, match)
	if i < 0 {
		return v, false
	}
	return s[i], true
}

// Reduce folds s from the left, starting at acc.
func Reduce[T, Acc any](s []T, acc Acc, step func(Acc, T) Acc) Acc {
	for _, v := range s {
		acc = step(acc, v)
	}
	return acc
}
