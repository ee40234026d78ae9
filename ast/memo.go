package ast

import "sync"

// cell holds a value computed at most once. The model is immutable after
// parsing, so cached results never need invalidation.
type cell[T any] struct {
	once sync.Once
	v    T
	err  error
}

func (c *cell[T]) get(fn func() (T, error)) (T, error) {
	c.once.Do(func() {
		c.v, c.err = fn()
	})
	return c.v, c.err
}
