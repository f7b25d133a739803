// Package math holds the integer helpers shared by the block and size
// arithmetic. They are generic over named integer types such as `Byte` and
// `Block`.
package math

type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// DivRoundUp divides `a` by `b`, rounding toward positive infinity. Both
// operands are expected to be non-negative.
func DivRoundUp[T Integer](a, b T) T {
	q := a / b
	if q*b != a {
		q++
	}
	return q
}

func Min[T Integer](a, b T) T {
	if b < a {
		return b
	}
	return a
}

func Max[T Integer](a, b T) T {
	if b > a {
		return b
	}
	return a
}
