package heap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/reuben-baek/go-structs/config"
	"github.com/reuben-baek/go-structs/data"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrReleased      = errors.New("heap: use after release")
	ErrDoubleRelease = errors.New("heap: double release")
	ErrOutOfRange    = errors.New("heap: index out of range")
	ErrInvalidLength = errors.New("heap: invalid length")
)

type Heap struct {
	allocations        data.Repository[Allocation, string]
	transactionManager data.TransactionManager
}

func New(allocations data.Repository[Allocation, string], transactionManager data.TransactionManager) *Heap {
	return &Heap{
		allocations:        allocations,
		transactionManager: transactionManager,
	}
}

// NewInMemory returns a Heap whose ledger lives in a map.
func NewInMemory() *Heap {
	transactionManager := data.NewDummyTransactionManager()
	return New(data.NewInMemoryRepository[Allocation, string](transactionManager), transactionManager)
}

// NewGorm returns a Heap whose ledger is the allocations table of db.
func NewGorm(db *gorm.DB) (*Heap, error) {
	if err := db.AutoMigrate(&Allocation{}); err != nil {
		return nil, fmt.Errorf("migrate allocations: %w", err)
	}
	transactionManager := data.NewGormTransactionManager(db)
	return New(data.NewGormRepository[Allocation, string](transactionManager), transactionManager), nil
}

// Open builds the Heap whose ledger cfg selects.
func Open(cfg config.Config) (*Heap, error) {
	switch cfg.Ledger {
	case config.LedgerMemory:
		return NewInMemory(), nil
	case config.LedgerSQLite:
		level, err := cfg.Level()
		if err != nil {
			return nil, err
		}
		logrus.WithField("dsn", cfg.SQLiteDSN).Debug("heap: opening sqlite ledger")
		db, err := data.OpenSQLite(cfg.SQLiteDSN, level)
		if err != nil {
			return nil, err
		}
		return NewGorm(db)
	default:
		return nil, fmt.Errorf("heap: unknown ledger %q", cfg.Ledger)
	}
}

func (h *Heap) allocate(ctx context.Context, kind Kind, length int) (Allocation, error) {
	allocation := Allocation{
		ID:        uuid.NewString(),
		Kind:      kind,
		Length:    length,
		CreatedAt: time.Now().UTC(),
	}
	var created Allocation
	err := h.transactionManager.Do(ctx, func(ctx context.Context) error {
		var err error
		if created, err = h.allocations.Create(ctx, allocation); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"allocation": created.ID,
			"kind":       created.Kind,
			"length":     created.Length,
		}).Debug("heap: allocated")
		return nil
	})
	if err != nil {
		return Allocation{}, fmt.Errorf("allocate %s: %w", kind, err)
	}
	return created, nil
}

func (h *Heap) release(ctx context.Context, id string) error {
	err := h.transactionManager.Do(ctx, func(ctx context.Context) error {
		allocation, err := h.allocations.FindOne(ctx, id)
		if err != nil {
			return err
		}
		if allocation.Released {
			return ErrDoubleRelease
		}
		now := time.Now().UTC()
		allocation.Released = true
		allocation.ReleasedAt = &now
		if _, err = h.allocations.Update(ctx, allocation); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"allocation": id,
			"kind":       allocation.Kind,
			"lived":      now.Sub(allocation.CreatedAt),
		}).Debug("heap: released")
		return nil
	})
	if err != nil {
		return fmt.Errorf("release %s: %w", id, err)
	}
	return nil
}

// Stats reads allocation counts back from the ledger.
func (h *Heap) Stats(ctx context.Context) (Stats, error) {
	allocations, err := h.allocations.FindAll(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("heap stats: %w", err)
	}
	var stats Stats
	for _, a := range allocations {
		stats.Allocated++
		if a.Released {
			stats.Released++
		} else {
			stats.Live++
		}
	}
	return stats, nil
}
