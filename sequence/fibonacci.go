// Package sequence generates bounded numeric sequences.
package sequence

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// MaxUint64Terms is the longest Fibonacci prefix whose terms all fit in a
// uint64. The 94th term (index 93) is 12200160415121876738.
const MaxUint64Terms = 94

// ErrOverflow is returned when the requested prefix does not fit in uint64.
var ErrOverflow = errors.New("fibonacci term overflows uint64")

// Fibonacci returns the first n terms of 0, 1, 1, 2, 3, ... . n <= 0 yields
// an empty, non-nil slice. Past MaxUint64Terms it returns ErrOverflow; use
// FibonacciBig for longer prefixes.
func Fibonacci(n int) ([]uint64, error) {
	if n > MaxUint64Terms {
		return nil, fmt.Errorf("%w: %d terms requested, limit is %d", ErrOverflow, n, MaxUint64Terms)
	}
	switch {
	case n <= 0:
		return []uint64{}, nil
	case n == 1:
		return []uint64{0}, nil
	}
	seq := make([]uint64, n)
	seq[1] = 1
	for i := 2; i < n; i++ {
		seq[i] = seq[i-1] + seq[i-2]
	}
	return seq, nil
}

// FibonacciBig is Fibonacci without the uint64 bound.
func FibonacciBig(n int) []*big.Int {
	if n <= 0 {
		return []*big.Int{}
	}
	seq := make([]*big.Int, 0, n)
	seq = append(seq, big.NewInt(0))
	if n == 1 {
		return seq
	}
	seq = append(seq, big.NewInt(1))
	for i := 2; i < n; i++ {
		seq = append(seq, new(big.Int).Add(seq[i-1], seq[i-2]))
	}
	return seq
}

// Format renders a sequence as "[0, 1, 1, 2]".
func Format[T any](seq []T) string {
	parts := make([]string, len(seq))
	for i, v := range seq {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
