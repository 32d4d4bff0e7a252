// Package ring implements a fixed-capacity generic ring buffer. It
// backs widgets.ScrollLog's line history: once full, the oldest
// entries are silently overwritten by new Appends, which is exactly
// the "truncate the oldest lines" behavior the scroll wrapper needs.
package ring

import "golang.org/x/exp/constraints"

// Buffer is a fixed-capacity ring of T. Appending past capacity
// overwrites the oldest elements.
type Buffer[T any] struct {
	Data  []T
	Start int64
	Len   int64
	Cap   int64
}

// NewBuffer allocates a buffer with room for capacity elements.
func NewBuffer[T any](capacity uint64) *Buffer[T] {
	return &Buffer[T]{
		Data: make([]T, capacity),
		Cap:  int64(capacity),
	}
}

// Head returns the index one past the last written element.
func (b *Buffer[T]) Head() int64 {
	return (b.Start + b.Len) % b.Cap
}

// Append writes x to the buffer, wrapping and overwriting the oldest
// entries once Len reaches Cap.
func (b *Buffer[T]) Append(x ...T) {
	for len(x) > 0 {
		copied := copy(b.Data[b.Head():], x)
		x = x[copied:]

		if b.Len == b.Cap {
			b.Start = (b.Start + int64(copied)) % b.Cap
		} else {
			b.Len = clamp(b.Len+int64(copied), 0, b.Cap)
		}
	}
}

// Views returns the buffer's Len live elements as one or two slices
// (two iff the data wraps past the end of Data). Neither slice is a
// copy; mutating them mutates the buffer.
func (b *Buffer[T]) Views() (v1, v2 []T) {
	if b.Start+b.Len <= b.Cap {
		return b.Data[b.Start : b.Start+b.Len], nil
	}
	v1 = b.Data[b.Start:b.Cap]
	v2 = b.Data[:b.Start+b.Len-b.Cap]
	return
}

func clamp[T constraints.Ordered](x, min, max T) T {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
