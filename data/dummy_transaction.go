package data

import (
	"context"

	"github.com/google/uuid"
)

// DummyTransactionManager has nothing to commit. It only labels the work done
// inside one Do with a shared id so log lines can be grouped.
type DummyTransactionManager struct {
}

func NewDummyTransactionManager() *DummyTransactionManager {
	return &DummyTransactionManager{}
}

type dummyTransactionKey struct{}

func (d *DummyTransactionManager) Do(ctx context.Context, f func(ctx context.Context) error) error {
	if _, ok := ctx.Value(dummyTransactionKey{}).(uuid.UUID); ok {
		return f(ctx)
	}
	return f(context.WithValue(ctx, dummyTransactionKey{}, uuid.New()))
}

// Get returns the id of the enclosing Do, or uuid.Nil outside one.
func (d *DummyTransactionManager) Get(ctx context.Context) any {
	if id, ok := ctx.Value(dummyTransactionKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
