package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is a growable slice-backed store. IDs handed out are 1-based so that
// zero stays the universal "absent" value across all node kinds.
type Arena[T any] struct {
	data []T
}

// NewArena creates an arena whose backing slice is preallocated to capHint.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate appends value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	id, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("ast: arena overflow: %w", err))
	}
	return id
}

// Get returns a pointer to the element at index, or nil for index 0.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || index > uint32(len(a.data)) {
		return nil
	}
	return &a.data[index-1]
}

// Slice exposes the backing storage. Callers must treat it as read-only.
func (a *Arena[T]) Slice() []T {
	return a.data
}

// Restore replaces the backing storage wholesale. It exists for snapshot
// decoding; IDs handed out before a Restore are void.
func (a *Arena[T]) Restore(data []T) {
	a.data = data
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}
