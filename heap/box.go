package heap

import (
	"context"
	"errors"
	"sync"
)

// Box owns one heap-allocated value. The value never leaves the Box: Get hands
// out copies and Do lends a scratch copy that is written back afterwards.
type Box[T any] struct {
	m     sync.Mutex
	heap  *Heap
	id    string
	value *T
}

// Alloc copies v into a new Box owned by the caller.
func Alloc[T any](ctx context.Context, h *Heap, v T) (*Box[T], error) {
	allocation, err := h.allocate(ctx, KindSingle, 1)
	if err != nil {
		return nil, err
	}
	return &Box[T]{heap: h, id: allocation.ID, value: &v}, nil
}

func (b *Box[T]) ID() string {
	return b.id
}

// Get returns a copy of the owned value.
func (b *Box[T]) Get() (T, error) {
	b.m.Lock()
	defer b.m.Unlock()
	if b.value == nil {
		var zero T
		return zero, ErrReleased
	}
	return *b.value, nil
}

// Do lends the value to fn and stores fn's changes when it returns nil.
// The pointer is only valid during fn; writes through a retained pointer are lost.
func (b *Box[T]) Do(fn func(*T) error) error {
	v, err := b.Get()
	if err != nil {
		return err
	}
	if err := fn(&v); err != nil {
		return err
	}
	b.m.Lock()
	defer b.m.Unlock()
	if b.value == nil {
		return ErrReleased
	}
	*b.value = v
	return nil
}

// Release frees the value and clears the handle.
func (b *Box[T]) Release(ctx context.Context) error {
	b.m.Lock()
	defer b.m.Unlock()
	if b.value == nil {
		return ErrDoubleRelease
	}
	if err := b.heap.release(ctx, b.id); err != nil {
		return err
	}
	b.value = nil
	return nil
}

// WithBox allocates v, lends it to fn and releases it when fn returns.
func WithBox[T any](ctx context.Context, h *Heap, v T, fn func(*T) error) (err error) {
	box, err := Alloc(ctx, h, v)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, box.Release(ctx))
	}()
	return box.Do(fn)
}
