package heap

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Array owns a fixed-length heap-allocated sequence. Like Box, elements leave it
// only as copies or as scratch loans inside Update and Each.
type Array[T any] struct {
	m      sync.Mutex
	heap   *Heap
	id     string
	values []T
}

// AllocArray allocates n elements, building element i with build(i).
func AllocArray[T any](ctx context.Context, h *Heap, n int, build func(i int) T) (*Array[T], error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	values := make([]T, n)
	for i := range values {
		values[i] = build(i)
	}
	allocation, err := h.allocate(ctx, KindArray, n)
	if err != nil {
		return nil, err
	}
	return &Array[T]{heap: h, id: allocation.ID, values: values}, nil
}

func (a *Array[T]) ID() string {
	return a.id
}

// Len is zero once the array is released.
func (a *Array[T]) Len() int {
	a.m.Lock()
	defer a.m.Unlock()
	return len(a.values)
}

// check must be called with a.m held.
func (a *Array[T]) check(i int) error {
	if a.values == nil {
		return ErrReleased
	}
	if i < 0 || i >= len(a.values) {
		return fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, len(a.values))
	}
	return nil
}

// At returns a copy of element i.
func (a *Array[T]) At(i int) (T, error) {
	a.m.Lock()
	defer a.m.Unlock()
	if err := a.check(i); err != nil {
		var zero T
		return zero, err
	}
	return a.values[i], nil
}

func (a *Array[T]) Set(i int, v T) error {
	a.m.Lock()
	defer a.m.Unlock()
	if err := a.check(i); err != nil {
		return err
	}
	a.values[i] = v
	return nil
}

// Update lends element i to fn and stores fn's changes when it returns nil.
func (a *Array[T]) Update(i int, fn func(*T) error) error {
	v, err := a.At(i)
	if err != nil {
		return err
	}
	if err := fn(&v); err != nil {
		return err
	}
	return a.Set(i, v)
}

// Each calls Update for every element in index order, stopping at the first error.
func (a *Array[T]) Each(fn func(i int, v *T) error) error {
	for i, n := 0, a.Len(); i < n; i++ {
		err := a.Update(i, func(v *T) error {
			return fn(i, v)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Cursor starts a forward traversal positioned before the first element.
func (a *Array[T]) Cursor() *Cursor[T] {
	return &Cursor[T]{array: a, pos: -1}
}

func (a *Array[T]) Release(ctx context.Context) error {
	a.m.Lock()
	defer a.m.Unlock()
	if a.values == nil {
		return ErrDoubleRelease
	}
	if err := a.heap.release(ctx, a.id); err != nil {
		return err
	}
	a.values = nil
	return nil
}

// WithArray allocates an array, hands it to fn and releases it when fn returns.
func WithArray[T any](ctx context.Context, h *Heap, n int, build func(i int) T, fn func(*Array[T]) error) (err error) {
	array, err := AllocArray(ctx, h, n, build)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, array.Release(ctx))
	}()
	return fn(array)
}
