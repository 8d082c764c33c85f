package data

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

type InMemoryRepository[T any, ID comparable] struct {
	mu                 sync.RWMutex
	database           map[ID]T
	transactionManager TransactionManager
}

func NewInMemoryRepository[T any, ID comparable](transactionManager TransactionManager) *InMemoryRepository[T, ID] {
	return &InMemoryRepository[T, ID]{
		database:           make(map[ID]T),
		transactionManager: transactionManager,
	}
}

func (u *InMemoryRepository[T, ID]) logger(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(logrus.StandardLogger())
	if u.transactionManager != nil {
		entry = entry.WithField("transaction", u.transactionManager.Get(ctx))
	}
	return entry
}

func (u *InMemoryRepository[T, ID]) FindOne(ctx context.Context, id ID) (T, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if v, ok := u.database[id]; ok {
		return v, nil
	}
	var zero T
	return zero, NotFoundError
}

func (u *InMemoryRepository[T, ID]) FindAll(ctx context.Context) ([]T, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	entities := make([]T, 0, len(u.database))
	for _, v := range u.database {
		entities = append(entities, v)
	}
	return entities, nil
}

func (u *InMemoryRepository[T, ID]) Create(ctx context.Context, entity T) (T, error) {
	var created T
	id, err := entityID[T, ID](entity)
	if err != nil {
		return created, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.database[id]; ok {
		return created, DuplicateError
	}
	u.database[id] = entity
	u.logger(ctx).Debugf("InMemoryRepository.Create: %+v", entity)
	return entity, nil
}

func (u *InMemoryRepository[T, ID]) Update(ctx context.Context, entity T) (T, error) {
	var updated T
	id, err := entityID[T, ID](entity)
	if err != nil {
		return updated, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.database[id]; !ok {
		return updated, NotFoundError
	}
	u.database[id] = entity
	u.logger(ctx).Debugf("InMemoryRepository.Update: %+v", entity)
	return entity, nil
}
