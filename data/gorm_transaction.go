package data

import (
	"context"

	"gorm.io/gorm"
)

// GormTransactionManager runs each Do in a gorm transaction that commits when f
// returns nil and rolls back on error or panic.
type GormTransactionManager struct {
	db *gorm.DB
}

func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

type gormTransactionKey struct{}

func (g *GormTransactionManager) Do(ctx context.Context, f func(ctx context.Context) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(context.WithValue(ctx, gormTransactionKey{}, tx))
	})
}

// Get returns the transaction bound to ctx, or a plain session outside Do.
func (g *GormTransactionManager) Get(ctx context.Context) any {
	if tx, ok := ctx.Value(gormTransactionKey{}).(*gorm.DB); ok {
		return tx
	}
	return g.db.WithContext(ctx)
}
