package data

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type GormRepository[T any, ID comparable] struct {
	transactionManager TransactionManager
}

func NewGormRepository[T any, ID comparable](transactionManager TransactionManager) *GormRepository[T, ID] {
	return &GormRepository[T, ID]{transactionManager: transactionManager}
}

// db returns the session bound to ctx by the transaction manager.
func (u *GormRepository[T, ID]) db(ctx context.Context) *gorm.DB {
	return u.transactionManager.Get(ctx).(*gorm.DB)
}

func (u *GormRepository[T, ID]) FindOne(ctx context.Context, id ID) (T, error) {
	var entity T
	if err := u.db(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity, NotFoundError
		}
		return entity, err
	}
	return entity, nil
}

func (u *GormRepository[T, ID]) FindAll(ctx context.Context) ([]T, error) {
	var entities []T
	if err := u.db(ctx).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Create inserts entity. An existing row with the same ID is a DuplicateError,
// matching InMemoryRepository instead of surfacing the driver's constraint error.
func (u *GormRepository[T, ID]) Create(ctx context.Context, entity T) (T, error) {
	var created T
	id, err := entityID[T, ID](entity)
	if err != nil {
		return created, err
	}
	db := u.db(ctx)
	var count int64
	if err := db.Model(&created).Where("id = ?", id).Count(&count).Error; err != nil {
		return created, err
	}
	if count > 0 {
		return created, DuplicateError
	}
	if err := db.Create(&entity).Error; err != nil {
		return created, fmt.Errorf("create %v: %w", id, err)
	}
	created = entity
	return created, nil
}

func (u *GormRepository[T, ID]) Update(ctx context.Context, entity T) (T, error) {
	var updated T
	if _, err := entityID[T, ID](entity); err != nil {
		return updated, err
	}
	result := u.db(ctx).Model(&entity).Select("*").Updates(&entity)
	if result.Error != nil {
		return updated, result.Error
	}
	if result.RowsAffected == 0 {
		return updated, NotFoundError
	}
	updated = entity
	return updated, nil
}
