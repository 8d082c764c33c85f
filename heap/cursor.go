package heap

// Cursor walks an Array one element at a time.
//
//	c := movies.Cursor()
//	for c.Next() {
//		use(c.Value())
//	}
//	if err := c.Err(); err != nil { ... }
type Cursor[T any] struct {
	array *Array[T]
	pos   int
	value T
	ok    bool
	err   error
}

func (c *Cursor[T]) Next() bool {
	var zero T
	c.value, c.ok = zero, false
	if c.err != nil {
		return false
	}
	n := c.array.Len()
	if n == 0 {
		c.err = ErrReleased
		return false
	}
	if c.pos+1 >= n {
		c.pos = n
		return false
	}
	value, err := c.array.At(c.pos + 1)
	if err != nil {
		c.err = err
		return false
	}
	c.pos++
	c.value, c.ok = value, true
	return true
}

// Value is a copy of the current element, the zero value before the first Next
// or after the end.
func (c *Cursor[T]) Value() T {
	return c.value
}

// Valid reports whether Value holds an element.
func (c *Cursor[T]) Valid() bool {
	return c.ok
}

func (c *Cursor[T]) Index() int {
	return c.pos
}

func (c *Cursor[T]) Err() error {
	return c.err
}
